// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plog implements a thin layer over logr/zap to help enforce tabsync's logging convention.
// Logs are always structured as a constant message with key and value pairs of related metadata.
//
// The logging levels in order of increasing verbosity are:
// error, warning, info, debug, trace and all.
//
// error and warning logs are always emitted (there is no way for the end user to disable them),
// and thus should be used sparingly.  Ideally, logs at these levels should be actionable,
// for example a scenario that failed or a browser that could not be started.
//
// info is for the progress of a run: which scenario started, which step is executing, how it ended.
//
// debug is for the synchronization layer: every title poll, every new window handle that was
// noticed, every frame switch.  Care must be taken at this level to not leak credentials into
// the log stream.  Typed text is only ever logged by its length.
//
// trace is for timing information, such as the time spent in each individual driver call.
//
// all is reserved for the most verbose output, such as whole page sources.  It is unfit for
// anything but local debugging.
package plog
