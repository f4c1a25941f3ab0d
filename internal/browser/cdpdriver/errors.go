// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cdpdriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/runtime"

	"go.tabsync.dev/internal/browser"
)

//nolint:gochecknoglobals
var errorMessages = []struct {
	message  string
	sentinel error
}{
	{message: "stale element reference", sentinel: browser.ErrStaleElement},
	{message: "could not find object with given id", sentinel: browser.ErrStaleElement},
	{message: "cannot find context with specified id", sentinel: browser.ErrStaleElement},
	{message: "element not interactable", sentinel: browser.ErrNotInteractable},
	{message: "no such frame", sentinel: browser.ErrNoSuchFrame},
	{message: "no target with given id", sentinel: browser.ErrNoSuchWindow},
	{message: "no such window", sentinel: browser.ErrNoSuchWindow},
}

// classify adds the matching browser sentinel to protocol errors and to exceptions thrown by
// our scripts.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range errorMessages {
		if errors.Is(err, m.sentinel) {
			return err
		}
	}

	text := err.Error()
	var exception *runtime.ExceptionDetails
	if errors.As(err, &exception) && exception.Exception != nil {
		text += " " + exception.Exception.Description
	}
	text = strings.ToLower(text)

	for _, m := range errorMessages {
		if strings.Contains(text, m.message) {
			return fmt.Errorf("%w: %w", m.sentinel, err)
		}
	}
	return err
}
