package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagefeed/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultItemCap, cfg.ItemCap)
	assert.Equal(t, config.DefaultMaxItemAge, cfg.MaxItemAge)
	assert.Equal(t, config.DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, config.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.False(t, cfg.FullResync)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
item_cap: 25
max_item_age: 72h
request_timeout: 10s
sources_file: /etc/pagefeed/sources.yml
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.ItemCap)
	assert.Equal(t, 72*time.Hour, cfg.MaxItemAge)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/etc/pagefeed/sources.yml", cfg.SourcesFile)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PAGEFEED_FULL_RESYNC", "true")
	t.Setenv("PAGEFEED_ITEM_CAP", "10")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.True(t, cfg.FullResync, "the full-resync override comes from the environment")
	assert.Equal(t, 10, cfg.ItemCap)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() *config.Config {
		return &config.Config{
			ItemCap:      40,
			MaxItemAge:   7 * 24 * time.Hour,
			StateBackend: "file",
		}
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, base().Validate())
	})

	t.Run("non-positive cap", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.ItemCap = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.StateBackend = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.StateBackend = "postgres"
		assert.Error(t, cfg.Validate())

		cfg.DatabaseDSN = "postgres://localhost/pagefeed"
		assert.NoError(t, cfg.Validate())
	})
}
