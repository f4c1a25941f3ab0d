// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package multierror

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultierror(t *testing.T) {
	errs := New()

	require.Nil(t, errs.ErrOrNil())

	errs.Add(nil)
	require.Nil(t, errs.ErrOrNil())

	errs.Add(errors.New("screenshot: no such window"))
	require.EqualError(t, errs.ErrOrNil(), "screenshot: no such window")

	errs.Add(fs.ErrPermission)
	err := errs.ErrOrNil()
	require.EqualError(t, err, "2 error(s):\n- screenshot: no such window\n- permission denied")
	require.ErrorIs(t, err, fs.ErrPermission)
}
