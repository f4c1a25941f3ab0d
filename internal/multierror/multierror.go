// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package multierror collects several errors into one.
//
//	errs := multierror.New()
//	for _, artifact := range artifacts {
//		errs.Add(capture(artifact))
//	}
//	return errs.ErrOrNil()
package multierror

import (
	"fmt"
	"strings"
)

// MultiError holds a list of errors, which may be empty. Use New to create one.
type MultiError []error

func New() MultiError {
	return make([]error, 0)
}

// Add appends err. A nil err is ignored.
func (m *MultiError) Add(err error) {
	if err == nil {
		return
	}
	*m = append(*m, err)
}

func (m MultiError) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	sb := strings.Builder{}
	_, _ = fmt.Fprintf(&sb, "%d error(s):", len(m))
	for _, err := range m {
		_, _ = fmt.Fprintf(&sb, "\n- %s", err.Error())
	}
	return sb.String()
}

// Unwrap lets errors.Is and errors.As look at every collected error.
func (m MultiError) Unwrap() []error {
	return m
}

// ErrOrNil returns nil when no errors were added, and m otherwise.
func (m MultiError) ErrOrNil() error {
	if len(m) > 0 {
		return m
	}
	return nil
}
