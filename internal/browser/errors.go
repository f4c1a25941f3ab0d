// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package browser

import "go.tabsync.dev/internal/constable"

// Backends wrap these so callers can classify failures with errors.Is.
const (
	ErrNoSuchElement   = constable.Error("no such element")
	ErrStaleElement    = constable.Error("stale element reference")
	ErrNotInteractable = constable.Error("element not interactable")
	ErrNoSuchWindow    = constable.Error("no such window")
	ErrNoSuchFrame     = constable.Error("no such frame")
)
