// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testclock provides a fake clock whose time moves forward whenever somebody waits on it.
// Code that polls with clock.NewTimer or clock.After runs to completion in a test without any
// real sleeping, and the elapsed fake time equals the sum of all waits.
package testclock

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
	clocktesting "k8s.io/utils/clock/testing"
)

// Epoch is the fake time every SteppingClock starts at unless told otherwise.
var Epoch = time.Date(2099, time.August, 8, 13, 57, 36, 0, time.UTC) //nolint:gochecknoglobals

var _ clock.WithTicker = &SteppingClock{}

type SteppingClock struct {
	*clocktesting.FakeClock

	start time.Time

	mu    sync.Mutex
	waits []time.Duration
}

func New() *SteppingClock {
	return NewAt(Epoch)
}

func NewAt(t time.Time) *SteppingClock {
	return &SteppingClock{FakeClock: clocktesting.NewFakeClock(t), start: t}
}

// NewTimer returns a timer that has already fired.
func (c *SteppingClock) NewTimer(d time.Duration) clock.Timer {
	timer := c.FakeClock.NewTimer(d)
	c.advance(d)
	return timer
}

func (c *SteppingClock) After(d time.Duration) <-chan time.Time {
	ch := c.FakeClock.After(d)
	c.advance(d)
	return ch
}

func (c *SteppingClock) Sleep(d time.Duration) {
	c.advance(d)
}

// Elapsed is how far the clock has moved since it was created.
func (c *SteppingClock) Elapsed() time.Duration {
	return c.Since(c.start)
}

// Waits returns every duration somebody waited for, in order.
func (c *SteppingClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

func (c *SteppingClock) advance(d time.Duration) {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.mu.Unlock()

	c.Step(d)
}
