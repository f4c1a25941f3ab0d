// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.tabsync.dev/internal/backoff"
)

// AwaitTitle waits up to Options.TitleTimeout for the top-level title to equal expected.
func (s *Session) AwaitTitle(ctx context.Context, expected string) error {
	return s.AwaitTitleWithin(ctx, expected, s.opts.TitleTimeout)
}

// AwaitTitleWithin polls every Options.TitlePollInterval until the title of the top-level document
// equals expected exactly. Every poll first leaves any frame, and on success the session is at the
// top-level document.
//
// An empty expected title only matches a document whose title is empty. It does not mean "any title".
func (s *Session) AwaitTitleWithin(ctx context.Context, expected string, timeout time.Duration) error {
	start := s.clock.Now()

	if expected == "" {
		s.log.Warning("waiting for an empty title, this only matches a document whose title is empty")
	}

	var lastObserved string
	polls := 0
	err := backoff.Bounded(ctx, s.clock, backoff.Constant(s.opts.TitlePollInterval), timeout,
		func(ctx context.Context) (bool, error) {
			polls++
			if err := s.ReturnToTop(ctx); err != nil {
				return false, err
			}
			title, err := s.driver.Title(ctx)
			if err != nil {
				return false, fmt.Errorf("reading title: %w", err)
			}
			lastObserved = title
			return title == expected, nil
		},
	)
	switch {
	case errors.Is(err, backoff.ErrTimedOut):
		waited := s.clock.Since(start)
		s.log.Debug("title did not match in time", "expected", expected, "lastObserved", lastObserved, "waited", waited, "polls", polls)
		return &PageLoadTimeoutError{Expected: expected, LastObserved: lastObserved, Waited: waited}
	case err != nil:
		return err
	}

	s.log.Debug("title matched", "title", expected, "waited", s.clock.Since(start), "polls", polls)
	return nil
}
