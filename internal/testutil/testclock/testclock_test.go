// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSteppingClock(t *testing.T) {
	c := New()
	require.Equal(t, Epoch, c.Now())

	timer := c.NewTimer(50 * time.Millisecond)
	select {
	case <-timer.C():
	default:
		t.Fatal("timer should have fired already")
	}

	<-c.After(20 * time.Millisecond)
	c.Sleep(time.Second)

	require.Equal(t, time.Second+70*time.Millisecond, c.Elapsed())
	require.Equal(t, []time.Duration{50 * time.Millisecond, 20 * time.Millisecond, time.Second}, c.Waits())

	zero := c.NewTimer(0)
	select {
	case <-zero.C():
	default:
		t.Fatal("zero duration timer should have fired already")
	}
}
