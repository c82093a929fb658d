package main

import (
	"fmt"

	"github.com/aura-studio/smoke/meta"
	"github.com/spf13/cobra"
)

// newMetaCmd creates the 'meta' subcommand, which prints the dependency
// report of this binary and fails when a bundled library is missing.
func newMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta",
		Short: "Print the bundled dependency report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := meta.Collect()
			fmt.Fprintln(cmd.OutOrStdout(), m.Generate(""))
			return m.Verify(meta.Required...)
		},
	}
}
