// Package cmd implements the command-line interface for pagefeed.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pagefeed/cmd/common"
	"pagefeed/cmd/schedule"
	"pagefeed/cmd/serve"
	cmdsources "pagefeed/cmd/sources"
	"pagefeed/cmd/sync"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pagefeed",
	Short: "Harvest paginated web pages into RSS feeds",
	Long: `pagefeed incrementally harvests list-style content from paginated web
pages and emits deduplicated, bounded, time-windowed RSS feed documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&common.CfgFile, "config", "",
		"config file (default is ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&common.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&common.FullResync, "full-resync", false,
		"ignore stored cursors for this run without overwriting them")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "pagefeed version %s\n", version)
		},
	})

	rootCmd.AddCommand(sync.Command())
	rootCmd.AddCommand(cmdsources.Command())
	rootCmd.AddCommand(schedule.Command())
	rootCmd.AddCommand(serve.Command())
}
