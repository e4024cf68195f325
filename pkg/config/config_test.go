package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 1e-6, cfg.Search.RelevanceTolerance)
	assert.Equal(t, 100, cfg.Search.AccumulatorShards)
	assert.Equal(t, 1440, cfg.Requests.Window)
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.ConnectAttempts)
	assert.Equal(t, 5, cfg.Redis.BreakerThreshold)
	assert.Equal(t, 30*time.Second, cfg.Redis.BreakerReset)
	assert.Equal(t, 5*time.Second, cfg.Metrics.RequestTimeout)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  stopWords: [and, in, on]
  maxResults: 10
  workers: 4
pagination:
  pageSize: 3
redis:
  cacheTTL: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SS_SEARCH_MAX_RESULTS", "7")
	t.Setenv("SS_LOGGING_LEVEL", "debug")
	t.Setenv("SS_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"and", "in", "on"}, cfg.Search.StopWords)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 3, cfg.Pagination.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.CacheTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep defaults
	assert.Equal(t, 1440, cfg.Requests.Window)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  maxResults: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxResults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative tolerance", func(c *Config) { c.Search.RelevanceTolerance = -1 }},
		{"zero shards", func(c *Config) { c.Search.AccumulatorShards = 0 }},
		{"negative workers", func(c *Config) { c.Search.Workers = -2 }},
		{"zero window", func(c *Config) { c.Requests.Window = 0 }},
		{"zero page size", func(c *Config) { c.Pagination.PageSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
