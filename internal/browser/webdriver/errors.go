// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package webdriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/constable"
)

// errorCodes maps W3C WebDriver error codes onto the browser sentinels.
//
//nolint:gochecknoglobals
var errorCodes = []struct {
	code     string
	sentinel error
}{
	{code: "no such element", sentinel: browser.ErrNoSuchElement},
	{code: "stale element reference", sentinel: browser.ErrStaleElement},
	{code: "element not interactable", sentinel: browser.ErrNotInteractable},
	{code: "element click intercepted", sentinel: browser.ErrNotInteractable},
	{code: "no such window", sentinel: browser.ErrNoSuchWindow},
	{code: "no such frame", sentinel: browser.ErrNoSuchFrame},
}

// classify keeps err in the chain and adds the matching sentinel. Older servers only put the
// code into the message, so that is checked too. An err that already carries a sentinel is
// returned as is.
func classify(err error) error {
	if err == nil {
		return nil
	}

	for _, c := range errorCodes {
		if errors.Is(err, c.sentinel) {
			return err
		}
	}

	code := strings.ToLower(err.Error())
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) && wdErr.Err != "" {
		code = wdErr.Err
	}

	for _, c := range errorCodes {
		if strings.Contains(code, c.code) {
			return fmt.Errorf("%w: %w", c.sentinel, err)
		}
	}
	return err
}

// isNoSuchAttribute reports whether a legacy server refused to read an absent attribute.
func isNoSuchAttribute(err error) bool {
	return err != nil && strings.Contains(err.Error(), "nil return value")
}

const errMissingServer = constable.Error("the webdriver backend needs the URL of a webdriver server")
