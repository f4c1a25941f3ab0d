// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.tabsync.dev/internal/scenario/fondsnet"
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newListCommand())
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := fondsnet.NewRegistry(fondsnet.DefaultConfig())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTEPS\tDESCRIPTION")
			for _, sc := range registry.All() {
				fmt.Fprintf(w, "%s\t%d\t%s\n", sc.Name, len(sc.Steps), sc.Description)
			}
			return w.Flush()
		},
		Args:  cobra.NoArgs, // do not accept positional arguments for this command
		Use:   "list",
		Short: "List the scenarios tabsync knows",
	}
}
