// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"unicode/utf8"

	"go.tabsync.dev/internal/backoff"
	"go.tabsync.dev/internal/browser"
)

// InjectText sends text to target one rune at a time, pausing Options.KeyDelay after each rune.
// A failure part way through leaves the runes sent so far in the field.
func (s *Session) InjectText(ctx context.Context, target browser.Element, text string) error {
	return s.injectText(ctx, target, browser.Locator{}, text)
}

// TypeInto finds loc and injects text into it.
func (s *Session) TypeInto(ctx context.Context, loc browser.Locator, text string) error {
	el, err := s.Find(ctx, loc)
	if err != nil {
		return err
	}
	return s.injectText(ctx, el, loc, text)
}

// PressKey sends a single key, such as browser.KeyReturn, without any pause.
func (s *Session) PressKey(ctx context.Context, target browser.Element, key string) error {
	if err := target.SendKeys(ctx, key); err != nil {
		return &ElementInteractionError{Op: "press key", Err: err}
	}
	return nil
}

func (s *Session) injectText(ctx context.Context, target browser.Element, loc browser.Locator, text string) error {
	// only the length is logged, the text may be a password
	s.log.Trace("injecting text", "locator", loc.String(), "runes", utf8.RuneCountInString(text), "delay", s.opts.KeyDelay)

	sent := 0
	for _, r := range text {
		if err := target.SendKeys(ctx, string(r)); err != nil {
			return &ElementInteractionError{Op: "inject text", Locator: loc, Sent: sent, Err: err}
		}
		sent++

		if err := backoff.Sleep(ctx, s.clock, s.opts.KeyDelay); err != nil {
			return err
		}
	}
	return nil
}
