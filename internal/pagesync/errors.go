// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.tabsync.dev/internal/backoff"
	"go.tabsync.dev/internal/browser"
)

// ElementInteractionError is a failure to find or use an element. Err is the capability's error.
type ElementInteractionError struct {
	Op      string
	Locator browser.Locator
	// Sent is how many characters InjectText delivered before failing.
	Sent int
	Err  error
}

func (e *ElementInteractionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Locator != (browser.Locator{}) {
		b.WriteString(" ")
		b.WriteString(e.Locator.String())
	}
	if e.Sent > 0 {
		fmt.Fprintf(&b, " (after %d characters)", e.Sent)
	}
	b.WriteString(": ")
	b.WriteString(errString(e.Err))
	return b.String()
}

func (e *ElementInteractionError) Unwrap() error {
	return e.Err
}

// NoNewWindowError means no window outside of Known appeared within the bound.
type NoNewWindowError struct {
	Known  WindowHandleSet
	Waited time.Duration
}

func (e *NoNewWindowError) Error() string {
	return fmt.Sprintf("no new window appeared within %s (known windows: %s)", e.Waited, strings.Join(e.Known.handles, ", "))
}

// PageLoadTimeoutError means the title never equalled Expected within the bound.
type PageLoadTimeoutError struct {
	Expected     string
	LastObserved string
	Waited       time.Duration
}

func (e *PageLoadTimeoutError) Error() string {
	return fmt.Sprintf("title did not become %q within %s, last observed %q", e.Expected, e.Waited, e.LastObserved)
}

// IsTimeout reports whether err ended a bounded wait, as opposed to an interaction failure.
func IsTimeout(err error) bool {
	var windowErr *NoNewWindowError
	var titleErr *PageLoadTimeoutError
	return errors.As(err, &windowErr) || errors.As(err, &titleErr) || errors.Is(err, backoff.ErrTimedOut)
}

func IsElementInteraction(err error) bool {
	var interactionErr *ElementInteractionError
	return errors.As(err, &interactionErr)
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
