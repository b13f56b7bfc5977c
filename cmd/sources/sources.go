// Package sources implements the sources command group for inspecting
// configured sources.
package sources

import (
	"github.com/spf13/cobra"
)

// Command returns the sources command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	return cmd
}
