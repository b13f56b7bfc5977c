package sources

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pagefeed/cmd/common"
)

// listCommand returns the sources list command, which displays all
// configured sources in a table.
func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "URL", "Items Rule", "Paginated", "Output"})

			for i := range deps.Sources {
				src := &deps.Sources[i]
				itemsRule := src.Rules.Items.Selector
				if src.Rules.Items.Func != "" {
					itemsRule = "func:" + src.Rules.Items.Func
				}
				t.AppendRow(table.Row{
					src.ID,
					src.Name,
					src.URL,
					itemsRule,
					!src.Rules.NextPage.IsZero(),
					src.OutputPath,
				})
			}

			t.Render()
			return nil
		},
	}
}
