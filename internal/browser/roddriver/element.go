// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package roddriver

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/domscript"
)

var _ browser.Element = &element{}

type element struct {
	d      *Driver
	window string
	el     *rod.Element
}

// do runs f on the element. Rod reports an element that never became interactable as not found,
// which is wrong for an element that was already found.
func (e *element) do(ctx context.Context, f func(el *rod.Element) error) error {
	return e.d.do(ctx, func() error {
		if e.window != e.d.current {
			return browser.ErrStaleElement
		}
		err := f(e.el.Context(ctx))
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %w", browser.ErrNotInteractable, err)
		}
		return err
	})
}

func (e *element) Click(ctx context.Context) error {
	return e.do(ctx, func(el *rod.Element) error {
		tag, err := el.Eval(domscript.TagName)
		if err != nil {
			return err
		}
		// options have no box to click, they are picked from their select
		if tag.Value.Str() == "OPTION" {
			_, err := el.Eval(domscript.Click)
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

func (e *element) SendKeys(ctx context.Context, keys string) error {
	chunks, err := splitKeys(keys)
	if err != nil {
		return err
	}
	return e.do(ctx, func(el *rod.Element) error {
		for _, c := range chunks {
			if c.text != "" {
				if err := el.Input(c.text); err != nil {
					return err
				}
				continue
			}
			if err := el.Type(c.key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.do(ctx, func(el *rod.Element) error {
		var err error
		text, err = el.Text()
		return err
	})
	return text, err
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := e.do(ctx, func(el *rod.Element) error {
		obj, err := el.Eval(domscript.Attribute, name)
		if err != nil {
			return err
		}
		value = obj.Value.Str()
		return nil
	})
	return value, err
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	var displayed bool
	err := e.do(ctx, func(el *rod.Element) error {
		var err error
		displayed, err = el.Visible()
		return err
	})
	return displayed, err
}

func (e *element) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found *element
	err := e.d.do(ctx, func() error {
		if e.window != e.d.current {
			return browser.ErrStaleElement
		}
		el := e.el.Context(ctx)
		var err error
		found, err = e.d.find(loc, el.Element, el.ElementX)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// keyChunk is either literal text or one special key.
type keyChunk struct {
	text string
	key  input.Key
}

//nolint:gochecknoglobals
var specialKeys = map[rune]input.Key{
	[]rune(browser.KeyReturn)[0]:    input.Enter,
	[]rune(browser.KeyEnter)[0]:     input.Enter,
	[]rune(browser.KeyTab)[0]:       input.Tab,
	[]rune(browser.KeyBackspace)[0]: input.Backspace,
}

func splitKeys(keys string) ([]keyChunk, error) {
	var chunks []keyChunk
	var text []rune
	flush := func() {
		if len(text) > 0 {
			chunks = append(chunks, keyChunk{text: string(text)})
			text = nil
		}
	}
	for _, r := range keys {
		if !browser.IsSpecialKey(r) {
			text = append(text, r)
			continue
		}
		key, ok := specialKeys[r]
		if !ok {
			return nil, fmt.Errorf("unsupported special key %U", r)
		}
		flush()
		chunks = append(chunks, keyChunk{key: key})
	}
	flush()
	return chunks, nil
}
