// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.tabsync.dev/internal/backoff"
)

// WindowHandleSet is a snapshot of the open top-level windows, in enumeration order.
type WindowHandleSet struct {
	handles []string
}

func NewWindowHandleSet(handles ...string) WindowHandleSet {
	return WindowHandleSet{handles: slices.Clone(handles)}
}

func (w WindowHandleSet) Contains(handle string) bool {
	return slices.Contains(w.handles, handle)
}

func (w WindowHandleSet) Len() int {
	return len(w.handles)
}

func (w WindowHandleSet) Handles() []string {
	return slices.Clone(w.handles)
}

// CaptureHandles snapshots the open windows. Call it before the action that opens a new one.
func (s *Session) CaptureHandles(ctx context.Context) (WindowHandleSet, error) {
	handles, err := s.driver.WindowHandles(ctx)
	if err != nil {
		return WindowHandleSet{}, fmt.Errorf("listing window handles: %w", err)
	}
	return NewWindowHandleSet(handles...), nil
}

// FollowNewWindow waits for a window that is not in known and switches to it.
// When several new windows appear, the first one the browser enumerates wins.
func (s *Session) FollowNewWindow(ctx context.Context, known WindowHandleSet) (string, error) {
	start := s.clock.Now()

	var handle string
	err := backoff.Bounded(ctx, s.clock, backoff.Constant(s.opts.WindowPollInterval), s.opts.NewWindowTimeout,
		func(ctx context.Context) (bool, error) {
			live, err := s.driver.WindowHandles(ctx)
			if err != nil {
				return false, fmt.Errorf("listing window handles: %w", err)
			}

			var fresh []string
			for _, h := range live {
				if !known.Contains(h) {
					fresh = append(fresh, h)
				}
			}
			if len(fresh) == 0 {
				return false, nil
			}
			if len(fresh) > 1 {
				s.log.Debug("more than one new window appeared, following the first", "handle", fresh[0], "ignored", fresh[1:])
			}
			handle = fresh[0]
			return true, nil
		},
	)
	switch {
	case errors.Is(err, backoff.ErrTimedOut):
		return "", &NoNewWindowError{Known: known, Waited: s.clock.Since(start)}
	case err != nil:
		return "", err
	}

	if err := s.driver.SwitchToWindow(ctx, handle); err != nil {
		return "", fmt.Errorf("switching to new window %s: %w", handle, err)
	}
	s.frame = TopLevel

	s.log.Debug("followed new window", "handle", handle, "waited", s.clock.Since(start))
	return handle, nil
}

// FollowNewWindowAfter captures the open windows, runs action and follows the window it opened.
func (s *Session) FollowNewWindowAfter(ctx context.Context, action func(ctx context.Context) error) (string, error) {
	known, err := s.CaptureHandles(ctx)
	if err != nil {
		return "", err
	}
	if err := action(ctx); err != nil {
		return "", err
	}
	return s.FollowNewWindow(ctx, known)
}
