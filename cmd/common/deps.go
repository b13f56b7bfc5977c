// Package common provides shared dependency construction for commands.
package common

import (
	"fmt"

	"pagefeed/internal/config"
	"pagefeed/internal/cursor"
	"pagefeed/internal/logger"
	"pagefeed/internal/sources"
)

// Flag values bound by the root command.
var (
	// CfgFile is the --config flag value.
	CfgFile string
	// Debug is the --debug flag value.
	Debug bool
	// FullResync is the --full-resync flag value.
	FullResync bool
)

// CommandDeps bundles the dependencies every command needs.
type CommandDeps struct {
	Config  *config.Config
	Logger  logger.Interface
	Sources []sources.Config
}

// NewCommandDeps loads configuration, creates the logger and loads the
// sources file.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(CfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if FullResync {
		cfg.FullResync = true
	}

	level := cfg.LogLevel
	if Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Development: Debug})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	srcs, err := sources.NewLoader(cfg.SourcesFile).LoadSources()
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	return &CommandDeps{Config: cfg, Logger: log, Sources: srcs}, nil
}

// NewCursorStore constructs the cursor store backend selected by the
// configuration.
func NewCursorStore(cfg *config.Config) (cursor.Store, error) {
	switch cfg.StateBackend {
	case "postgres":
		store, err := cursor.OpenPostgresStore(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("create postgres cursor store: %w", err)
		}
		return store, nil
	default:
		return cursor.NewFileStore(cfg.StateDir), nil
	}
}
