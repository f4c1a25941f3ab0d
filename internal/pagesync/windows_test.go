// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pagesync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/testutil/fakebrowser"
)

func TestWindowHandleSet(t *testing.T) {
	handles := []string{"tab-1", "tab-2"}
	set := NewWindowHandleSet(handles...)
	handles[0] = "changed"

	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("tab-1"))
	require.False(t, set.Contains("changed"))
	require.Equal(t, []string{"tab-1", "tab-2"}, set.Handles())

	copied := set.Handles()
	copied[1] = "changed"
	require.True(t, set.Contains("tab-2"), "snapshots are immutable")
}

func TestFollowNewWindow(t *testing.T) {
	ctx := context.Background()
	var login *fakebrowser.Element
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		doc := fakebrowser.NewDocument(b, "FONDSNET - Service. Kompetenz. Innovation.")
		login = doc.Add(browser.ClassName("login-widget__link"), b.NewElement("login").OnClick(func() {
			b.OpenWindowAfter(320*time.Millisecond, "tab-2", fakebrowser.NewDocument(b, "Anmeldung"))
		}))
		return doc
	})

	known, err := f.session.CaptureHandles(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"tab-1"}, known.Handles())

	require.NoError(t, login.Click(ctx))

	handle, err := f.session.FollowNewWindow(ctx, known)
	require.NoError(t, err)
	require.Equal(t, "tab-2", handle)
	require.Equal(t, "tab-2", f.browser.ActiveHandle())
	require.Equal(t, 350*time.Millisecond, f.clock.Elapsed())
	require.True(t, f.session.Frame().IsTopLevel())

	title, err := f.session.Title(ctx)
	require.NoError(t, err)
	require.Equal(t, "Anmeldung", title)
}

func TestFollowNewWindowTieBreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		return fakebrowser.NewDocument(b, "Schnellsuche ⋅ Evolution")
	})
	known, err := f.session.CaptureHandles(ctx)
	require.NoError(t, err)

	f.browser.OpenWindowAfter(100*time.Millisecond, "tab-b", fakebrowser.NewDocument(f.browser, "B"))
	f.browser.OpenWindowAfter(100*time.Millisecond, "tab-a", fakebrowser.NewDocument(f.browser, "A"))

	handle, err := f.session.FollowNewWindow(ctx, known)
	require.NoError(t, err)
	require.Equal(t, "tab-b", handle, "the first enumerated new handle wins")
	require.Contains(t, f.log.String(), `"message":"more than one new window appeared, following the first","handle":"tab-b","ignored":["tab-a"]`)
}

func TestFollowNewWindowIgnoresEveryKnownHandle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		return fakebrowser.NewDocument(b, "Dashboard ⋅ Evolution")
	})
	f.browser.OpenWindow("tab-2", fakebrowser.NewDocument(f.browser, "Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution"))

	known, err := f.session.CaptureHandles(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, known.Len())

	f.browser.OpenWindowAfter(time.Second, "tab-3", fakebrowser.NewDocument(f.browser, "hausInvest"))

	handle, err := f.session.FollowNewWindow(ctx, known)
	require.NoError(t, err)
	require.Equal(t, "tab-3", handle)
}

func TestFollowNewWindowWithoutNewWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		return fakebrowser.NewDocument(b, "Dashboard ⋅ Evolution")
	})

	// capturing and following right away must never hand back a window that was already open
	known, err := f.session.CaptureHandles(ctx)
	require.NoError(t, err)

	_, firstErr := f.session.FollowNewWindow(ctx, known)
	require.Equal(t, 10*time.Second, f.clock.Elapsed())

	_, secondErr := f.session.FollowNewWindow(ctx, known)
	require.Equal(t, 20*time.Second, f.clock.Elapsed())

	var noNewWindowErr *NoNewWindowError
	require.ErrorAs(t, firstErr, &noNewWindowErr)
	require.Equal(t, known, noNewWindowErr.Known)
	require.Equal(t, 10*time.Second, noNewWindowErr.Waited)
	require.EqualError(t, firstErr, "no new window appeared within 10s (known windows: tab-1)")
	require.Equal(t, firstErr, secondErr, "following the same snapshot twice fails the same way")
	require.True(t, IsTimeout(firstErr))

	require.Equal(t, "tab-1", f.browser.ActiveHandle())
}

func TestFollowNewWindowAfter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(b *fakebrowser.Browser) *fakebrowser.Document {
		doc := fakebrowser.NewDocument(b, "Schnellsuche ⋅ Evolution")
		doc.Add(browser.PartialLinkText("Mustermann, Maximiliane"), b.NewElement("customer link").OnClick(func() {
			b.OpenWindowAfter(0, "tab-2", fakebrowser.NewDocument(b, "Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution"))
		}))
		return doc
	})

	handle, err := f.session.FollowNewWindowAfter(ctx, func(ctx context.Context) error {
		return f.session.Click(ctx, browser.PartialLinkText("Mustermann, Maximiliane"))
	})
	require.NoError(t, err)
	require.Equal(t, "tab-2", handle)
	require.Zero(t, f.clock.Elapsed())

	actionErr := errors.New("click failed")
	_, err = f.session.FollowNewWindowAfter(ctx, func(context.Context) error { return actionErr })
	require.Equal(t, actionErr, err)
	require.Zero(t, f.clock.Elapsed(), "a failed action is not followed by a wait")
}
