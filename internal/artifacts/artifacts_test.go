// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
	"go.tabsync.dev/internal/scenario"
	"go.tabsync.dev/internal/testutil/fakebrowser"
	"go.tabsync.dev/internal/testutil/testclock"
)

func failedResult(runID string) scenario.Result {
	return scenario.Result{
		RunID:    runID,
		Scenario: "locate-customer",
		State: scenario.State{Phase: scenario.Failed, Step: 8, Err: &scenario.StepError{
			Scenario: "locate-customer",
			Index:    8,
			Name:     "check for error marker",
			Err:      &scenario.AssertionFailure{What: "page text", Relation: "not contain", Expected: "Fehler-ID", Actual: "Fehler-ID: 8f3c2a"},
		}},
	}
}

func newSession(clk *testclock.SteppingClock) *pagesync.Session {
	b := fakebrowser.New(clk)
	b.OpenWindow("tab-customer", fakebrowser.NewDocument(b, "Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution").
		Body("Verträge konnten nicht geladen werden. Fehler-ID: 8f3c2a"))
	return pagesync.NewSession(b, pagesync.WithClock(clk))
}

func TestDump(t *testing.T) {
	clk := testclock.New()
	logger, _ := plog.TestLogger(t)
	root := filepath.Join(t.TempDir(), "target")
	d := New(root, logger, clk)

	dir, err := d.Dump(context.Background(), failedResult("run/1"), newSession(clk))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "locate-customer-run_1"), dir)

	png, err := os.ReadFile(filepath.Join(dir, "screenshot.png"))
	require.NoError(t, err)
	require.Equal(t, "\x89PNG\r\n\x1a\ntab-customer", string(png))

	page, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<title>Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution</title>")

	summaryYAML, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	require.NoError(t, err)
	var sum Summary
	require.NoError(t, yaml.Unmarshal(summaryYAML, &sum))
	require.True(t, sum.CapturedAt.Equal(&metav1.Time{Time: testclock.Epoch}))
	sum.CapturedAt = metav1.Time{}
	require.Equal(t, Summary{
		RunID:    "run/1",
		Scenario: "locate-customer",
		Step:     8,
		StepName: "check for error marker",
		Error:    `scenario locate-customer: step 8 (check for error marker): page text: expected "Fehler-ID: 8f3c2a" to not contain "Fehler-ID"`,
		Window:   "tab-customer",
		Frame:    "top-level",
		Page: &PageSummary{
			Title:    "Übersicht ⋅ Maximiliane Mustermann ⋅ Evolution",
			ErrorIDs: []string{"8f3c2a"},
		},
	}, sum)

	clk.Step(time.Minute)
	_, err = d.Dump(context.Background(), failedResult("run-2"), newSession(clk))
	require.NoError(t, err)

	entries, err := ReadIndex(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "locate-customer-run_1", entries[0].Directory)
	require.Equal(t, "locate-customer-run-2", entries[1].Directory)
	require.Equal(t, "run-2", entries[1].RunID)
	require.True(t, entries[1].CapturedAt.Equal(&metav1.Time{Time: testclock.Epoch.Add(time.Minute)}))
}

func TestDumpCapturesWhatItCan(t *testing.T) {
	clk := testclock.New()
	logger, _ := plog.TestLogger(t)
	root := t.TempDir()
	d := New(root, logger, clk)

	// a browser without windows fails every capture
	s := pagesync.NewSession(fakebrowser.New(clk), pagesync.WithClock(clk))

	dir, err := d.Dump(context.Background(), failedResult("run-1"), s)
	require.EqualError(t, err, "3 error(s):\n- window handle: no such window\n- screenshot: no such window\n- page source: no such window")
	require.ErrorIs(t, err, browser.ErrNoSuchWindow)

	require.NoFileExists(t, filepath.Join(dir, "screenshot.png"))
	require.FileExists(t, filepath.Join(dir, "summary.yaml"))

	entries, err := ReadIndex(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDumpIndexLocking(t *testing.T) {
	tests := []struct {
		name        string
		trylockFunc func(*testing.T) error
		unlockFunc  func(*testing.T) error
		wantErr     string
		wantEntries int
	}{
		{
			name:        "lock error",
			trylockFunc: func(*testing.T) error { return fmt.Errorf("some lock error") },
			unlockFunc:  func(t *testing.T) error { require.Fail(t, "should not be called"); return nil },
			wantErr:     "could not lock artifacts index: some lock error",
		},
		{
			name:        "unlock error",
			trylockFunc: func(*testing.T) error { return nil },
			unlockFunc:  func(*testing.T) error { return fmt.Errorf("some unlock error") },
			wantErr:     "could not unlock artifacts index: some unlock error",
			wantEntries: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := testclock.New()
			logger, _ := plog.TestLogger(t)
			root := t.TempDir()
			d := New(root, logger, clk)
			d.trylockFunc = func(context.Context) error { return tt.trylockFunc(t) }
			d.unlockFunc = func() error { return tt.unlockFunc(t) }

			dir, err := d.Dump(context.Background(), failedResult("run-1"), newSession(clk))
			require.EqualError(t, err, tt.wantErr)
			require.FileExists(t, filepath.Join(dir, "screenshot.png"), "the run's own files do not need the lock")

			entries, err := ReadIndex(root)
			require.NoError(t, err)
			require.Len(t, entries, tt.wantEntries)
		})
	}
}

func TestDumpResetsACorruptIndex(t *testing.T) {
	clk := testclock.New()
	logger, log := plog.TestLogger(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.yaml"), []byte("invalid"), 0o600))

	_, err := New(root, logger, clk).Dump(context.Background(), failedResult("run-1"), newSession(clk))
	require.NoError(t, err)

	entries, err := ReadIndex(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Contains(t, log.String(), `"message":"failed to read artifacts index, resetting"`)
}

func TestReadIndexRejectsOtherVersions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.yaml"), []byte("apiVersion: artifacts.tabsync.dev/v2\nkind: FailureIndex\n"), 0o600))

	_, err := ReadIndex(root)
	require.ErrorIs(t, err, errUnsupportedVersion)
}

func TestIndexNormalized(t *testing.T) {
	idx := emptyIndex()
	for i := maxEntries + 5; i > 0; i-- {
		idx.Entries = append(idx.Entries, Entry{
			RunID:      fmt.Sprintf("run-%d", i),
			CapturedAt: metav1.NewTime(testclock.Epoch.Add(time.Duration(i) * time.Second)),
		})
	}

	got := idx.normalized()
	require.Len(t, got.Entries, maxEntries)
	require.Equal(t, "run-6", got.Entries[0].RunID)
	require.Equal(t, fmt.Sprintf("run-%d", maxEntries+5), got.Entries[maxEntries-1].RunID)
	require.Len(t, idx.Entries, maxEntries+5, "the original is left alone")
}

func TestHook(t *testing.T) {
	clk := testclock.New()
	logger, log := plog.TestLogger(t)
	root := t.TempDir()

	New(root, logger, clk).Hook()(context.Background(), failedResult("run-1"), newSession(clk))
	require.Contains(t, log.String(), `"message":"captured failure artifacts"`)
	require.DirExists(t, filepath.Join(root, "locate-customer-run-1"))

	log.Reset()
	d := New(root, logger, clk)
	d.trylockFunc = func(context.Context) error { return errors.New("busy") }
	d.Hook()(context.Background(), failedResult("run-2"), newSession(clk))
	require.Contains(t, log.String(), `"message":"could not capture all failure artifacts"`)
	require.Contains(t, log.String(), `"error":"could not lock artifacts index: busy"`)
}
