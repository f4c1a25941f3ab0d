// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package roddriver

import (
	"errors"
	"fmt"
	"strings"

	"go.tabsync.dev/internal/browser"
)

//nolint:gochecknoglobals
var sentinels = []error{
	browser.ErrNoSuchElement,
	browser.ErrStaleElement,
	browser.ErrNotInteractable,
	browser.ErrNoSuchWindow,
	browser.ErrNoSuchFrame,
}

//nolint:gochecknoglobals
var errorMessages = []struct {
	message  string
	sentinel error
}{
	{message: "stale element reference", sentinel: browser.ErrStaleElement},
	{message: "could not find object with given id", sentinel: browser.ErrStaleElement},
	{message: "cannot find context with specified id", sentinel: browser.ErrStaleElement},
	{message: "node with given id does not belong to the document", sentinel: browser.ErrStaleElement},
	{message: "element not interactable", sentinel: browser.ErrNotInteractable},
	{message: "not cursor interactable", sentinel: browser.ErrNotInteractable},
	{message: "no visible shape", sentinel: browser.ErrNotInteractable},
	{message: "no such frame", sentinel: browser.ErrNoSuchFrame},
	{message: "no target with given id", sentinel: browser.ErrNoSuchWindow},
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}

	text := strings.ToLower(err.Error())
	for _, m := range errorMessages {
		if strings.Contains(text, m.message) {
			return fmt.Errorf("%w: %w", m.sentinel, err)
		}
	}
	return err
}
