// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scenario runs named, linear workflows of steps against a pagesync.Session.
//
// A scenario has no branches and no recovery: the first step that returns an error ends it.
package scenario

import (
	"context"
	"fmt"
	"time"

	"go.tabsync.dev/internal/pagesync"
)

type Step struct {
	Name string
	Run  func(ctx context.Context, s *pagesync.Session) error
}

type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

type Phase int

const (
	NotStarted Phase = iota
	Running
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a point in NotStarted -> Running(i) -> Completed | Failed(err, i).
// Step is only meaningful while Running or Failed. It is -1 when the run failed before its first step.
type State struct {
	Phase Phase
	Step  int
	Err   error
}

func (s State) String() string {
	switch s.Phase {
	case Running:
		return fmt.Sprintf("Running(%d)", s.Step)
	case Failed:
		return fmt.Sprintf("Failed(%d: %v)", s.Step, s.Err)
	default:
		return s.Phase.String()
	}
}

func (s State) Terminal() bool {
	return s.Phase == Completed || s.Phase == Failed
}

// Result is the outcome of one scenario run.
type Result struct {
	RunID    string
	Scenario string
	State    State
	// History holds every state the run went through, starting with NotStarted.
	History  []State
	Started  time.Time
	Finished time.Time
}

func (r Result) Passed() bool {
	return r.State.Phase == Completed
}

func (r Result) Err() error {
	return r.State.Err
}

func (r Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// StepError ends a run. Err is whatever the step returned, so errors.As still finds the typed
// pagesync errors and AssertionFailure underneath.
type StepError struct {
	Scenario string
	Index    int
	Name     string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("scenario %s: step %d (%s): %v", e.Scenario, e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
