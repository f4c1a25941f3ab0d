// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.tabsync.dev/internal/backoff"
	"go.tabsync.dev/internal/browser"
)

// Find resolves loc in the active frame, retrying for up to Options.ImplicitWait while the element is missing.
func (s *Session) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	return s.find(ctx, loc, func(ctx context.Context) (browser.Element, error) {
		return s.driver.FindElement(ctx, loc)
	})
}

// FindWithin is Find relative to parent.
func (s *Session) FindWithin(ctx context.Context, parent browser.Element, loc browser.Locator) (browser.Element, error) {
	return s.find(ctx, loc, func(ctx context.Context) (browser.Element, error) {
		return parent.FindElement(ctx, loc)
	})
}

func (s *Session) find(ctx context.Context, loc browser.Locator, lookup func(context.Context) (browser.Element, error)) (browser.Element, error) {
	var (
		el      browser.Element
		lastErr error
	)
	err := backoff.Bounded(ctx, s.clock, lookupBackoff(), s.opts.ImplicitWait, func(ctx context.Context) (bool, error) {
		found, err := lookup(ctx)
		switch {
		case err == nil:
			el = found
			return true, nil
		case errors.Is(err, browser.ErrNoSuchElement):
			lastErr = err
			return false, nil
		default:
			return false, err
		}
	})
	if errors.Is(err, backoff.ErrTimedOut) {
		err = lastErr
	}
	if err != nil {
		return nil, &ElementInteractionError{Op: "find", Locator: loc, Err: err}
	}
	return el, nil
}

func lookupBackoff() backoff.Stepper {
	return &backoff.InfiniteBackoff{
		Duration:    50 * time.Millisecond,
		Factor:      2,
		MaxDuration: 500 * time.Millisecond,
	}
}

// WaitVisible polls until loc is present and displayed in the active frame.
// A zero timeout means Options.VisibleTimeout.
func (s *Session) WaitVisible(ctx context.Context, loc browser.Locator, timeout time.Duration) (browser.Element, error) {
	if timeout == 0 {
		timeout = s.opts.VisibleTimeout
	}
	start := s.clock.Now()

	var el browser.Element
	err := backoff.Bounded(ctx, s.clock, backoff.Constant(s.opts.VisiblePollInterval), timeout, func(ctx context.Context) (bool, error) {
		found, err := s.driver.FindElement(ctx, loc)
		if isTransient(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		displayed, err := found.IsDisplayed(ctx)
		if isTransient(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		el = found
		return displayed, nil
	})
	if errors.Is(err, backoff.ErrTimedOut) {
		err = fmt.Errorf("not visible after %s: %w", s.clock.Since(start), err)
	}
	if err != nil {
		return nil, &ElementInteractionError{Op: "wait visible", Locator: loc, Err: err}
	}
	return el, nil
}

// an element can be missing or replaced while the page renders
func isTransient(err error) bool {
	return errors.Is(err, browser.ErrNoSuchElement) || errors.Is(err, browser.ErrStaleElement)
}

// EnterFrame switches into the frame element at loc, relative to the active frame.
func (s *Session) EnterFrame(ctx context.Context, loc browser.Locator) error {
	el, err := s.Find(ctx, loc)
	if err != nil {
		return err
	}
	if err := s.driver.SwitchToFrame(ctx, el); err != nil {
		return &ElementInteractionError{Op: "enter frame", Locator: loc, Err: err}
	}
	s.frame = s.frame.enter(loc)
	s.log.Debug("entered frame", "frame", s.frame.String())
	return nil
}

// ReturnToTop switches to the top-level document of the active window.
func (s *Session) ReturnToTop(ctx context.Context) error {
	if err := s.driver.SwitchToDefaultContent(ctx); err != nil {
		return fmt.Errorf("switching to top-level document: %w", err)
	}
	s.frame = TopLevel
	return nil
}

func (s *Session) Click(ctx context.Context, loc browser.Locator) error {
	el, err := s.Find(ctx, loc)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return &ElementInteractionError{Op: "click", Locator: loc, Err: err}
	}
	return nil
}

func (s *Session) Text(ctx context.Context, loc browser.Locator) (string, error) {
	el, err := s.Find(ctx, loc)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", &ElementInteractionError{Op: "read text", Locator: loc, Err: err}
	}
	return text, nil
}

func (s *Session) Attribute(ctx context.Context, loc browser.Locator, name string) (string, error) {
	el, err := s.Find(ctx, loc)
	if err != nil {
		return "", err
	}
	value, err := el.Attribute(ctx, name)
	if err != nil {
		return "", &ElementInteractionError{Op: "read attribute " + name, Locator: loc, Err: err}
	}
	return value, nil
}

// SelectByValue clicks the option of the select element at loc whose value attribute is exactly value.
func (s *Session) SelectByValue(ctx context.Context, loc browser.Locator, value string) error {
	sel, err := s.Find(ctx, loc)
	if err != nil {
		return err
	}
	optionLoc := browser.XPath(".//option[@value=" + xpathLiteral(value) + "]")
	option, err := sel.FindElement(ctx, optionLoc)
	if err != nil {
		return &ElementInteractionError{Op: "select " + value, Locator: loc, Err: err}
	}
	if err := option.Click(ctx); err != nil {
		return &ElementInteractionError{Op: "select " + value, Locator: loc, Err: err}
	}
	return nil
}

// xpathLiteral quotes s for use in an XPath 1.0 expression, which has no escape sequences.
func xpathLiteral(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
