// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/pkg/browser"

	"go.tabsync.dev/cmd/tabsync/cmd"
	"go.tabsync.dev/internal/plog"
)

//nolint:gochecknoinits
func init() {
	// keep our stdout for result lines, whatever the opened file viewer prints goes to stderr
	browser.Stdout = os.Stderr
}

func main() {
	flush := plog.Setup()
	err := cmd.Execute()
	flush()
	if err != nil {
		os.Exit(1)
	}
}
