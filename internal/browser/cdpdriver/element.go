// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cdpdriver

import (
	"context"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/domscript"
)

var _ browser.Element = &element{}

type element struct {
	d      *Driver
	window string
	id     runtime.RemoteObjectID
}

// call runs script on the element. Handles only resolve in the window they were found in.
func (e *element) call(ctx context.Context, script string, res any, args ...any) error {
	return e.d.exec(ctx, func(runCtx context.Context) error {
		if e.window != e.d.current {
			return browser.ErrStaleElement
		}
		return chromedp.Run(runCtx, chromedp.CallFunctionOn(script, res, on(e.id), args...))
	})
}

func (e *element) Click(ctx context.Context) error {
	return e.call(ctx, domscript.Click, nil)
}

func (e *element) SendKeys(ctx context.Context, keys string) error {
	return e.d.exec(ctx, func(runCtx context.Context) error {
		if e.window != e.d.current {
			return browser.ErrStaleElement
		}
		return chromedp.Run(runCtx,
			chromedp.CallFunctionOn(domscript.Focus, nil, on(e.id)),
			chromedp.KeyEvent(translateKeys(keys)),
		)
	})
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.call(ctx, domscript.Text, &text)
	return text, err
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := e.call(ctx, domscript.Attribute, &value, name)
	return value, err
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	var displayed bool
	err := e.call(ctx, domscript.Displayed, &displayed)
	return displayed, err
}

func (e *element) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found *element
	err := e.d.exec(ctx, func(runCtx context.Context) error {
		if e.window != e.d.current {
			return browser.ErrStaleElement
		}
		var err error
		found, err = e.d.find(runCtx, e.id, loc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
