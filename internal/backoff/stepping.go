// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/clock"

	"go.tabsync.dev/internal/constable"
)

// ErrTimedOut is returned by Bounded when the timeout elapses before the condition is done.
const ErrTimedOut = constable.Error("timed out waiting for the condition")

type Stepper interface {
	Step() time.Duration
}

func wrapConditionWithNoPanics(ctx context.Context, condition wait.ConditionWithContextFunc) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if err2, ok := r.(error); ok {
				err = err2
				return
			}
			err = fmt.Errorf("condition panicked: %v", r)
		}
	}()

	return condition(ctx)
}

// WithContext runs condition until it is done, returns an error or ctx is cancelled.
// Waits between attempts are measured on clk.
func WithContext(ctx context.Context, clk clock.Clock, backoff Stepper, condition wait.ConditionWithContextFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Allow cancellation during the attempt if the condition function respects the ctx.
		if ok, err := wrapConditionWithNoPanics(ctx, condition); err != nil || ok {
			return err
		}

		if err := Sleep(ctx, clk, backoff.Step()); err != nil {
			return err
		}
	}
}

// Bounded is WithContext with a deadline measured on clk from the moment it is called.
// The condition always runs at least once, and it runs once more after the last wait, so a
// condition that never becomes done fails no earlier than timeout and no later than timeout
// plus the last step.
func Bounded(ctx context.Context, clk clock.Clock, backoff Stepper, timeout time.Duration, condition wait.ConditionWithContextFunc) error {
	start := clk.Now()

	return WithContext(ctx, clk, backoff, func(ctx context.Context) (bool, error) {
		done, err := condition(ctx)
		if err != nil || done {
			return done, err
		}
		if clk.Since(start) >= timeout {
			return false, ErrTimedOut
		}
		return false, nil
	})
}

// Sleep waits for d on clk, returning early with the context error when ctx is cancelled.
func Sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	timer := clk.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}
