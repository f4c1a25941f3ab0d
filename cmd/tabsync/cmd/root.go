// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Use:          "tabsync",
	Short:        "tabsync",
	Long:         "tabsync drives a browser through multi-tab scenarios and waits for every page the way a person would.",
	SilenceUsage: true, // do not print usage message when commands fail
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
