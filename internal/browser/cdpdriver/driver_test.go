// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cdpdriver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp/kb"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/plog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name: "exception thrown by a script on a detached element",
			err: &runtime.ExceptionDetails{
				Text:      "Uncaught",
				Exception: &runtime.RemoteObject{Description: "Error: stale element reference\n    at <anonymous>:2:36"},
			},
			sentinel: browser.ErrStaleElement,
		},
		{
			name:     "object handle from a replaced document",
			err:      errors.New("Could not find object with given id (-32000)"),
			sentinel: browser.ErrStaleElement,
		},
		{
			name:     "execution context of a replaced document",
			err:      errors.New("Cannot find context with specified id (-32000)"),
			sentinel: browser.ErrStaleElement,
		},
		{
			name: "hidden element",
			err: &runtime.ExceptionDetails{
				Text:      "Uncaught",
				Exception: &runtime.RemoteObject{Description: "Error: element not interactable"},
			},
			sentinel: browser.ErrNotInteractable,
		},
		{
			name: "cross-origin frame",
			err: &runtime.ExceptionDetails{
				Text:      "Uncaught",
				Exception: &runtime.RemoteObject{Description: "Error: no such frame"},
			},
			sentinel: browser.ErrNoSuchFrame,
		},
		{
			name:     "closed tab",
			err:      errors.New("No target with given id found (-32602)"),
			sentinel: browser.ErrNoSuchWindow,
		},
		{
			name: "unrelated",
			err:  errors.New("websocket: close 1006 (abnormal closure)"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			require.ErrorIs(t, got, tt.err)
			if tt.sentinel == nil {
				require.Equal(t, tt.err, got)
				return
			}
			require.ErrorIs(t, got, tt.sentinel)
		})
	}
}

func TestClassifyKeepsExistingSentinels(t *testing.T) {
	err := fmt.Errorf("%w: %s", browser.ErrNoSuchWindow, "E3B0C442")
	require.Equal(t, err, classify(err))
	require.Equal(t, browser.ErrStaleElement, classify(browser.ErrStaleElement))
	require.NoError(t, classify(nil))
}

func TestTranslateKeys(t *testing.T) {
	require.Equal(t, "Mustermann"+kb.Enter, translateKeys("Mustermann"+browser.KeyReturn))
	require.Equal(t, kb.Tab+"x"+kb.Backspace+kb.Enter, translateKeys(browser.KeyTab+"x"+browser.KeyBackspace+browser.KeyEnter))
	require.Equal(t, "Übersicht", translateKeys("Übersicht"))
}

func TestPageHandles(t *testing.T) {
	infos := []*target.Info{
		{TargetID: "A1", Type: "page"},
		{TargetID: "W1", Type: "service_worker"},
		{TargetID: "B2", Type: "page"},
		{TargetID: "I1", Type: "iframe"},
	}
	if diff := cmp.Diff([]string{"A1", "B2"}, pageHandles(infos)); diff != "" {
		t.Errorf("pageHandles() mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, pageHandles(nil))
}

func TestAllocatorOptions(t *testing.T) {
	plain := allocatorOptions(browser.Options{Headless: true})
	full := allocatorOptions(browser.Options{UserAgent: "tabsync", Incognito: true, Proxy: "http://proxy.internal:3128"})

	// headful, user agent, incognito and proxy each add one option
	require.Len(t, full, len(plain)+4)
}

func TestLaunchFailsWithoutABrowser(t *testing.T) {
	log, _ := plog.TestLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Launch(ctx, browser.Options{RemoteURL: "ws://127.0.0.1:1/devtools/browser/none"}, log)
	require.ErrorIs(t, err, context.Canceled)
}
