// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"fmt"
	"strings"
)

// AssertionFailure means observed content did not match the expectation of a verification step.
type AssertionFailure struct {
	What     string
	Relation string
	Expected string
	Actual   string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("%s: expected %q to %s %q", e.What, e.Actual, e.Relation, e.Expected)
}

func AssertEqual(what, expected, actual string) error {
	if actual == expected {
		return nil
	}
	return &AssertionFailure{What: what, Relation: "equal", Expected: expected, Actual: actual}
}

func AssertContains(what, expected, actual string) error {
	if strings.Contains(actual, expected) {
		return nil
	}
	return &AssertionFailure{What: what, Relation: "contain", Expected: expected, Actual: actual}
}

func AssertNotContains(what, unexpected, actual string) error {
	if !strings.Contains(actual, unexpected) {
		return nil
	}
	return &AssertionFailure{What: what, Relation: "not contain", Expected: unexpected, Actual: actual}
}
