// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package pagesync turns an asynchronous browser into a sequence of checkpoints that a scenario can
assert against.

A Session wraps one browser.Driver and adds the waiting that the driver does not do:

  - InjectText types one character at a time with a pause after each, because the application's
    input components drop characters that arrive faster than they can re-render.
  - CaptureHandles and FollowNewWindow find the tab that an action opened. Capture before the
    action, follow after it.
  - AwaitTitle polls the title of the top-level document until it matches exactly. It leaves any
    frame before every poll because the title of the top-level document cannot be seen from
    inside a frame.
  - Find retries a lookup for a bounded time, and EnterFrame and ReturnToTop move between the
    top-level document and nested frames.

Every wait is bounded and every failure is returned as a typed error (ElementInteractionError,
NoNewWindowError or PageLoadTimeoutError). Nothing in this package retries on failure beyond the
bounded polls listed above.

All waiting happens on the Session's clock.Clock, so tests can replace time entirely.
A Session is not safe for concurrent use.
*/
package pagesync
