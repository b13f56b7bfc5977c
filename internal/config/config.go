// Package config loads process-wide configuration from config files and
// the environment. All values are explicit: the crawl loop, cursor store
// and commands receive a *Config rather than reading ambient state, so a
// single process can run multiple sources with independent overrides and
// tests can inject deterministic values.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultItemCap bounds the number of items in any run's output.
	DefaultItemCap = 40
	// DefaultMaxItemAge is the age cutoff for backfilled content.
	DefaultMaxItemAge = 7 * 24 * time.Hour
	// DefaultRequestTimeout bounds a single page fetch.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultUserAgent identifies the crawler to origin servers.
	DefaultUserAgent = "pagefeed/1.0"

	defaultSourcesFile   = "sources.yml"
	defaultStateBackend  = "file"
	defaultStateDir      = "state"
	defaultOutputDir     = "feeds"
	defaultLogLevel      = "info"
	defaultCronSchedule  = "@every 30m"
	defaultServerAddress = ":8080"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. PAGEFEED_FULL_RESYNC=true.
const envPrefix = "PAGEFEED"

// Config holds the process configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// SourcesFile is the path to the sources YAML file.
	SourcesFile string `mapstructure:"sources_file"`
	// StateBackend selects the cursor store: "file" or "postgres".
	StateBackend string `mapstructure:"state_backend"`
	// StateDir is the directory for per-source cursor files.
	StateDir string `mapstructure:"state_dir"`
	// DatabaseDSN is the Postgres DSN for the postgres state backend.
	DatabaseDSN string `mapstructure:"database_dsn"`
	// OutputDir is the directory feed documents default into when a
	// source does not set an absolute output path.
	OutputDir string `mapstructure:"output_dir"`
	// ItemCap is the hard ceiling on items per run.
	ItemCap int `mapstructure:"item_cap"`
	// MaxItemAge is the recency window for backfilled content.
	MaxItemAge time.Duration `mapstructure:"max_item_age"`
	// RequestTimeout is the default per-page fetch timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// UserAgent is the default User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// FullResync forces cursor-ignoring behavior for this invocation
	// without mutating persisted cursor state.
	FullResync bool `mapstructure:"full_resync"`
	// CronSchedule drives the schedule command.
	CronSchedule string `mapstructure:"cron_schedule"`
	// ServerAddress is the listen address for the serve command.
	ServerAddress string `mapstructure:"server_address"`
}

// Load reads configuration from the given file (optional), the
// environment and defaults, in descending precedence: environment,
// file, defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The config file is optional; environment variables and defaults
	// cover every key.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.ItemCap <= 0 {
		return fmt.Errorf("item_cap must be positive, got %d", c.ItemCap)
	}
	if c.MaxItemAge <= 0 {
		return fmt.Errorf("max_item_age must be positive, got %s", c.MaxItemAge)
	}
	if c.StateBackend != "file" && c.StateBackend != "postgres" {
		return fmt.Errorf("unknown state_backend %q", c.StateBackend)
	}
	if c.StateBackend == "postgres" && c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn is required for the postgres state backend")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("sources_file", defaultSourcesFile)
	v.SetDefault("state_backend", defaultStateBackend)
	v.SetDefault("state_dir", defaultStateDir)
	v.SetDefault("output_dir", defaultOutputDir)
	v.SetDefault("item_cap", DefaultItemCap)
	v.SetDefault("max_item_age", DefaultMaxItemAge)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("full_resync", false)
	v.SetDefault("cron_schedule", defaultCronSchedule)
	v.SetDefault("server_address", defaultServerAddress)
}
