// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package constable provides an error type that can be declared as a const,
// so sentinel errors such as browser.ErrNoSuchElement cannot be reassigned.
package constable

var _ error = Error("")

type Error string

func (e Error) Error() string {
	return string(e)
}
