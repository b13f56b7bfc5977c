// Package sync implements the sync command, which runs the
// crawl-and-sync engine over one source or the whole batch.
package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagefeed/cmd/common"
	"pagefeed/internal/app"
	"pagefeed/internal/sources"
)

// Command returns the sync command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [source]",
		Short: "Fetch sources and regenerate their feeds",
		Long: `Crawl each configured source's page sequence, starting where the last
successful run left off, and regenerate the feed documents.

With a source ID argument only that source is synced and a failure
exits non-zero. Without arguments all sources are processed; a broken
source is logged and skipped so healthy sources still get their feeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			store, err := common.NewCursorStore(deps.Config)
			if err != nil {
				return err
			}

			runner := app.New(deps.Config, store, deps.Logger)

			if len(args) == 1 {
				src := sources.FindByID(deps.Sources, args[0])
				if src == nil {
					return fmt.Errorf("unknown source %q", args[0])
				}
				summary, err := runner.RunSource(cmd.Context(), src)
				if err != nil {
					return fmt.Errorf("sync %s: %w", src.ID, err)
				}
				deps.Logger.WithSource(src.ID).Info("Source synced",
					"items", summary.Items,
					"pages", summary.PagesRead,
					"stop_reason", string(summary.StopReason))
				return nil
			}

			return runner.RunAll(cmd.Context(), deps.Sources)
		},
	}
}
