// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/testutil/fakebrowser"
)

func TestAwaitTitle(t *testing.T) {
	tests := []struct {
		name         string
		initialTitle string
		changeAfter  time.Duration
		changedTitle string
		expected     string
		wantErr      string
		wantElapsed  time.Duration
	}{
		{
			name:         "already matching",
			initialTitle: "Anmeldung",
			expected:     "Anmeldung",
			wantElapsed:  0,
		},
		{
			name:         "matches on a poll boundary",
			initialTitle: "Evolution",
			changeAfter:  400 * time.Millisecond,
			changedTitle: "Dashboard ⋅ Evolution",
			expected:     "Dashboard ⋅ Evolution",
			wantElapsed:  400 * time.Millisecond,
		},
		{
			name:         "matches on the poll after the change",
			initialTitle: "Evolution",
			changeAfter:  730 * time.Millisecond,
			changedTitle: "Dashboard ⋅ Evolution",
			expected:     "Dashboard ⋅ Evolution",
			wantElapsed:  750 * time.Millisecond,
		},
		{
			name:         "comparison is exact",
			initialTitle: "dashboard ⋅ evolution",
			expected:     "Dashboard ⋅ Evolution",
			wantErr:      `title did not become "Dashboard ⋅ Evolution" within 15s, last observed "dashboard ⋅ evolution"`,
			wantElapsed:  15 * time.Second,
		},
		{
			name:         "a change after the timeout is not seen",
			initialTitle: "Evolution",
			changeAfter:  16 * time.Second,
			changedTitle: "Dashboard ⋅ Evolution",
			expected:     "Dashboard ⋅ Evolution",
			wantErr:      `title did not become "Dashboard ⋅ Evolution" within 15s, last observed "Evolution"`,
			wantElapsed:  15 * time.Second,
		},
		{
			name:         "empty expected title matches an empty title",
			initialTitle: "",
			expected:     "",
			wantElapsed:  0,
		},
		{
			name:         "empty expected title does not match any other title",
			initialTitle: "hausInvest",
			expected:     "",
			wantErr:      `title did not become "" within 15s, last observed "hausInvest"`,
			wantElapsed:  15 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
				doc := fakebrowser.NewDocument(b, tt.initialTitle)
				if tt.changedTitle != "" {
					doc.TitleAfter(tt.changeAfter, tt.changedTitle)
				}
				return doc
			})

			err := f.session.AwaitTitle(context.Background(), tt.expected)

			require.Equal(t, tt.wantElapsed, f.clock.Elapsed())
			require.True(t, f.session.Frame().IsTopLevel())
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
			var timeoutErr *PageLoadTimeoutError
			require.ErrorAs(t, err, &timeoutErr)
			require.Equal(t, tt.expected, timeoutErr.Expected)
			require.Equal(t, tt.wantElapsed, timeoutErr.Waited)
			require.True(t, IsTimeout(err))
			require.False(t, IsElementInteraction(err))
		})
	}
}

func TestAwaitTitleTimeoutBounds(t *testing.T) {
	for _, timeout := range []time.Duration{time.Second, 1234 * time.Millisecond, 15 * time.Second} {
		for _, interval := range []time.Duration{10 * time.Millisecond, 50 * time.Millisecond, 333 * time.Millisecond} {
			t.Run(fmt.Sprintf("never ready timeout=%s interval=%s", timeout, interval), func(t *testing.T) {
				opts := DefaultOptions()
				opts.TitlePollInterval = interval
				f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
					return fakebrowser.NewDocument(b, "Evolution")
				}, WithOptions(opts))

				err := f.session.AwaitTitleWithin(context.Background(), "Dashboard ⋅ Evolution", timeout)

				var timeoutErr *PageLoadTimeoutError
				require.ErrorAs(t, err, &timeoutErr)
				require.Equal(t, "Evolution", timeoutErr.LastObserved)
				require.GreaterOrEqual(t, f.clock.Elapsed(), timeout)
				require.LessOrEqual(t, f.clock.Elapsed(), timeout+interval)
			})

			for _, readyAt := range []time.Duration{0, interval / 2, timeout / 3, timeout - time.Millisecond} {
				t.Run(fmt.Sprintf("ready at %s timeout=%s interval=%s", readyAt, timeout, interval), func(t *testing.T) {
					opts := DefaultOptions()
					opts.TitlePollInterval = interval
					f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
						return fakebrowser.NewDocument(b, "Evolution").TitleAfter(readyAt, "Dashboard ⋅ Evolution")
					}, WithOptions(opts))

					require.NoError(t, f.session.AwaitTitleWithin(context.Background(), "Dashboard ⋅ Evolution", timeout))
					require.GreaterOrEqual(t, f.clock.Elapsed(), readyAt)
					require.LessOrEqual(t, f.clock.Elapsed(), readyAt+interval)
					require.True(t, f.session.Frame().IsTopLevel())
				})
			}
		}
	}
}

func TestAwaitTitleLeavesFrameBeforeEveryPoll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		legacy := fakebrowser.NewDocument(b, "fonds_topperformer.php")
		doc := fakebrowser.NewDocument(b, "Evolution").TitleAfter(200*time.Millisecond, "Top-Performer ⋅ Evolution")
		doc.Add(browser.XPath("//iframe[@name='spa-legacy-iframe']"), b.NewElement("spa-legacy-iframe").AsFrame(legacy))
		return doc
	})

	require.NoError(t, f.session.EnterFrame(ctx, browser.XPath("//iframe[@name='spa-legacy-iframe']")))
	require.True(t, f.browser.InFrame())

	require.NoError(t, f.session.AwaitTitle(ctx, "Top-Performer ⋅ Evolution"))
	require.False(t, f.browser.InFrame())
	require.True(t, f.session.Frame().IsTopLevel())
	require.Equal(t, 200*time.Millisecond, f.clock.Elapsed())

	// polls at 0, 50, 100, 150 and 200ms
	require.Equal(t, 5, f.browser.DefaultContentSwitches())
	var titleReads int
	for i, cmd := range f.browser.Commands() {
		if cmd == "title" {
			titleReads++
			require.Equal(t, "switch default content", f.browser.Commands()[i-1], "title read without leaving the frame first")
		}
	}
	require.Equal(t, 5, titleReads)
}

func TestAwaitTitleDriverErrorsAbort(t *testing.T) {
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		return fakebrowser.NewDocument(b, "Evolution")
	})
	f.browser.FailTitle(errors.New("websocket closed"))

	err := f.session.AwaitTitle(context.Background(), "Dashboard ⋅ Evolution")
	require.EqualError(t, err, "reading title: websocket closed")
	require.False(t, IsTimeout(err))
	require.Zero(t, f.clock.Elapsed(), "driver errors are not retried")
}

func TestAwaitTitleWarnsAboutEmptyTitle(t *testing.T) {
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		return fakebrowser.NewDocument(b, "")
	})

	require.NoError(t, f.session.AwaitTitle(context.Background(), ""))
	require.Contains(t, f.log.String(), `"message":"waiting for an empty title, this only matches a document whose title is empty","warning":true`)
}
