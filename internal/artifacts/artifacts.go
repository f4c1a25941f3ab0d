// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package artifacts saves what the browser showed when a scenario failed.
//
// Every failed run gets its own directory holding a screenshot, the page source and a summary.
// An index file in the artifacts root lists all captured failures. It is guarded by a file lock
// so concurrent tabsync processes can share one artifacts directory.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/clock"
	"sigs.k8s.io/yaml"

	"go.tabsync.dev/internal/multierror"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
	"go.tabsync.dev/internal/scenario"
)

const (
	// defaultFileLockTimeout is how long we wait for the index lock before giving up.
	defaultFileLockTimeout = 10 * time.Second

	// defaultFileLockRetryInterval is how often we poll while waiting for the index lock.
	defaultFileLockRetryInterval = 10 * time.Millisecond

	// captureTimeout bounds the browser calls of one capture, which may run after the scenario's context ended.
	captureTimeout = 30 * time.Second

	indexFileName      = "index.yaml"
	screenshotFileName = "screenshot.png"
	pageFileName       = "page.html"
	summaryFileName    = "summary.yaml"
)

type Dumper struct {
	dir   string
	clock clock.PassiveClock
	log   plog.Logger

	trylockFunc func(ctx context.Context) error
	unlockFunc  func() error
}

func New(dir string, log plog.Logger, clk clock.PassiveClock) *Dumper {
	lock := flock.New(filepath.Join(dir, indexFileName+".lock"))
	return &Dumper{
		dir:   dir,
		clock: clk,
		log:   log.WithName("artifacts"),
		trylockFunc: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, defaultFileLockTimeout)
			defer cancel()
			locked, err := lock.TryLockContext(ctx, defaultFileLockRetryInterval)
			if err == nil && !locked {
				err = fmt.Errorf("lock %s is held by another process", lock.Path())
			}
			return err
		},
		unlockFunc: lock.Unlock,
	}
}

// Dir is the artifacts root.
func (d *Dumper) Dir() string {
	return d.dir
}

// Hook captures artifacts for every failed scenario and logs capture problems instead of returning them.
func (d *Dumper) Hook() scenario.FailureHook {
	return func(ctx context.Context, result scenario.Result, s *pagesync.Session) {
		dir, err := d.Dump(ctx, result, s)
		if err != nil {
			d.log.WarningErr("could not capture all failure artifacts", err, "scenario", result.Scenario, "runID", result.RunID, "directory", dir)
			return
		}
		d.log.Info("captured failure artifacts", "scenario", result.Scenario, "runID", result.RunID, "directory", dir)
	}
}

// Dump captures the current state of s for result and returns the directory it wrote to.
// It captures as much as it can and reports every part that failed.
func (d *Dumper) Dump(ctx context.Context, result scenario.Result, s *pagesync.Session) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), captureTimeout)
	defer cancel()

	dir := filepath.Join(d.dir, runDirName(result))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("could not create artifacts directory: %w", err)
	}

	now := metav1.NewTime(d.clock.Now())
	sum := Summary{
		RunID:      result.RunID,
		Scenario:   result.Scenario,
		Step:       result.State.Step,
		Frame:      s.Frame().String(),
		CapturedAt: now,
	}
	if err := result.Err(); err != nil {
		sum.Error = err.Error()
	}
	var stepErr *scenario.StepError
	if errors.As(result.Err(), &stepErr) {
		sum.StepName = stepErr.Name
	}

	errs := multierror.New()
	driver := s.Driver()

	if handle, err := driver.CurrentWindowHandle(ctx); err != nil {
		errs.Add(fmt.Errorf("window handle: %w", err))
	} else {
		sum.Window = handle
	}

	if png, err := driver.Screenshot(ctx); err != nil {
		errs.Add(fmt.Errorf("screenshot: %w", err))
	} else {
		errs.Add(writeFile(dir, screenshotFileName, png))
	}

	if html, err := driver.PageSource(ctx); err != nil {
		errs.Add(fmt.Errorf("page source: %w", err))
	} else {
		errs.Add(writeFile(dir, pageFileName, []byte(html)))
		page, err := Summarize(html)
		if err != nil {
			errs.Add(fmt.Errorf("page summary: %w", err))
		}
		sum.Page = page
	}

	summaryYAML, err := yaml.Marshal(sum)
	if err != nil {
		errs.Add(fmt.Errorf("summary: %w", err))
	} else {
		errs.Add(writeFile(dir, summaryFileName, summaryYAML))
	}

	errs.Add(d.withIndex(ctx, func(idx *index) {
		idx.Entries = append(idx.Entries, Entry{
			RunID:      result.RunID,
			Scenario:   result.Scenario,
			Directory:  filepath.Base(dir),
			Error:      sum.Error,
			CapturedAt: now,
		})
	}))

	return dir, errs.ErrOrNil()
}

// withIndex locks the index, reads it, lets transact change it and writes it back.
// An unreadable index is replaced by an empty one.
func (d *Dumper) withIndex(ctx context.Context, transact func(*index)) (err error) {
	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return fmt.Errorf("could not create artifacts directory: %w", err)
	}

	if err := d.trylockFunc(ctx); err != nil {
		return fmt.Errorf("could not lock artifacts index: %w", err)
	}
	defer func() {
		if unlockErr := d.unlockFunc(); unlockErr != nil && err == nil {
			err = fmt.Errorf("could not unlock artifacts index: %w", unlockErr)
		}
	}()

	path := filepath.Join(d.dir, indexFileName)
	idx, err := readIndex(path)
	if err != nil {
		d.log.WarningErr("failed to read artifacts index, resetting", err, "path", path)
		idx = emptyIndex()
	}

	transact(idx)

	if err := idx.normalized().writeTo(path); err != nil {
		return fmt.Errorf("could not write artifacts index: %w", err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func runDirName(result scenario.Result) string {
	return unsafeChars.ReplaceAllString(result.Scenario, "_") + "-" + unsafeChars.ReplaceAllString(result.RunID, "_")
}

func writeFile(dir, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
