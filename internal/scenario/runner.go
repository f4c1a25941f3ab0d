// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
)

// SessionFactory provides the browsing sessions scenarios run in.
type SessionFactory interface {
	NewSession(ctx context.Context) (*pagesync.Session, error)
}

type SessionFactoryFunc func(ctx context.Context) (*pagesync.Session, error)

func (f SessionFactoryFunc) NewSession(ctx context.Context) (*pagesync.Session, error) {
	return f(ctx)
}

// FailureHook is called with the still open session of a failed run, for example to save a screenshot.
type FailureHook func(ctx context.Context, result Result, s *pagesync.Session)

type Runner struct {
	// FreshSessionPerScenario makes RunAll start a new session for every scenario and close it
	// afterwards, so a failed scenario cannot leave state behind for the next one. When false,
	// all scenarios share one session.
	FreshSessionPerScenario bool
	OnFailure               FailureHook

	clock clock.PassiveClock
	log   plog.Logger
	newID func() string
}

func NewRunner(log plog.Logger, clk clock.PassiveClock) *Runner {
	return &Runner{
		FreshSessionPerScenario: true,
		clock:                   clk,
		log:                     log.WithName("scenario"),
		newID:                   func() string { return uuid.New().String() },
	}
}

// Run executes the steps of sc in order and stops at the first error.
func (r *Runner) Run(ctx context.Context, sc Scenario, s *pagesync.Session) Result {
	result := r.start(sc)
	log := r.log.WithValues("scenario", sc.Name, "runID", result.RunID)

	for i, step := range sc.Steps {
		r.transition(&result, State{Phase: Running, Step: i})
		log.Debug("running step", "index", i, "step", step.Name)

		if err := step.Run(ctx, s); err != nil {
			r.finish(&result, State{Phase: Failed, Step: i, Err: &StepError{Scenario: sc.Name, Index: i, Name: step.Name, Err: err}})
			log.InfoErr("scenario failed", err, "index", i, "step", step.Name, "duration", result.Duration())
			return result
		}
	}

	r.finish(&result, State{Phase: Completed})
	log.Info("scenario completed", "steps", len(sc.Steps), "duration", result.Duration())
	return result
}

// RunAll runs the scenarios one after the other and returns one result per scenario.
// A failing scenario never stops the ones after it.
func (r *Runner) RunAll(ctx context.Context, factory SessionFactory, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))

	var shared *pagesync.Session
	defer func() {
		if shared != nil {
			r.closeSession(shared)
		}
	}()

	for _, sc := range scenarios {
		var s *pagesync.Session
		switch {
		case r.FreshSessionPerScenario || shared == nil:
			var err error
			s, err = factory.NewSession(ctx)
			if err != nil {
				results = append(results, r.failBeforeStart(sc, fmt.Errorf("starting browser session: %w", err)))
				continue
			}
			if !r.FreshSessionPerScenario {
				shared = s
			}
		default:
			s = shared
		}

		result := r.Run(ctx, sc, s)
		if !result.Passed() && r.OnFailure != nil {
			r.OnFailure(ctx, result, s)
		}
		if r.FreshSessionPerScenario {
			r.closeSession(s)
		}
		results = append(results, result)
	}

	return results
}

func (r *Runner) start(sc Scenario) Result {
	now := r.clock.Now()
	return Result{
		RunID:    r.newID(),
		Scenario: sc.Name,
		State:    State{Phase: NotStarted},
		History:  []State{{Phase: NotStarted}},
		Started:  now,
		Finished: now,
	}
}

func (r *Runner) transition(result *Result, next State) {
	result.State = next
	result.History = append(result.History, next)
}

func (r *Runner) finish(result *Result, final State) {
	r.transition(result, final)
	result.Finished = r.clock.Now()
}

func (r *Runner) failBeforeStart(sc Scenario, err error) Result {
	result := r.start(sc)
	r.finish(&result, State{Phase: Failed, Step: -1, Err: &StepError{Scenario: sc.Name, Index: -1, Name: "start session", Err: err}})
	r.log.InfoErr("scenario failed before its first step", err, "scenario", sc.Name, "runID", result.RunID)
	return result
}

func (r *Runner) closeSession(s *pagesync.Session) {
	if err := s.Close(); err != nil {
		r.log.WarningErr("could not close browser session", err)
	}
}
