// Package schedule implements the schedule command, which runs sync
// batches on a cron schedule until interrupted.
package schedule

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"pagefeed/cmd/common"
	"pagefeed/internal/app"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run sync on a cron schedule",
		Long: `Run the sync batch on the configured cron schedule (cron_schedule,
default "@every 30m") until interrupted with Ctrl+C. Each tick resumes
every source from its committed cursor, so missed or failed ticks are
caught up naturally on the next one.`,
		Args: cobra.NoArgs,
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
			ctx := cmd.Context()

			c := cron.New()
			_, err = c.AddFunc(deps.Config.CronSchedule, func() {
				if runErr := runner.RunAll(ctx, deps.Sources); runErr != nil {
					deps.Logger.WithError(runErr).Error("Scheduled sync finished with failures")
				}
			})
			if err != nil {
				return fmt.Errorf("parse cron schedule %q: %w", deps.Config.CronSchedule, err)
			}

			deps.Logger.Info("Scheduler started",
				"schedule", deps.Config.CronSchedule,
				"sources", len(deps.Sources))
			c.Start()
			defer c.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case sig := <-sigChan:
				deps.Logger.Info("Shutdown signal received", "signal", sig.String())
			case <-ctx.Done():
			}
			return nil
		},
	}
}
