// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cdpdriver

import (
	"strings"

	"github.com/chromedp/chromedp/kb"

	"go.tabsync.dev/internal/browser"
)

//nolint:gochecknoglobals
var specialKeys = strings.NewReplacer(
	browser.KeyReturn, kb.Enter,
	browser.KeyEnter, kb.Enter,
	browser.KeyTab, kb.Tab,
	browser.KeyBackspace, kb.Backspace,
)

// translateKeys maps the WebDriver code points onto what chromedp.KeyEvent dispatches.
func translateKeys(keys string) string {
	return specialKeys.Replace(keys)
}
