// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for the search
// engine core and its collaborators (request tracking, pagination, result
// cache, logging, metrics).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Requests   RequestsConfig   `yaml:"requests"`
	Pagination PaginationConfig `yaml:"pagination"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// SearchConfig controls indexing and ranking behaviour.
type SearchConfig struct {
	StopWords          []string `yaml:"stopWords"`
	MaxResults         int      `yaml:"maxResults"`
	RelevanceTolerance float64  `yaml:"relevanceTolerance"`
	AccumulatorShards  int      `yaml:"accumulatorShards"`
	// Workers bounds the goroutines used by one parallel operation. Zero
	// means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// RequestsConfig sizes the sliding window of the request tracker.
type RequestsConfig struct {
	Window int `yaml:"window"`
}

// PaginationConfig holds the page size used when printing results.
type PaginationConfig struct {
	PageSize int `yaml:"pageSize"`
}

// RedisConfig holds Redis connection and result-cache parameters.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
	// ConnectAttempts is how many times the initial PING is tried.
	ConnectAttempts int `yaml:"connectAttempts"`
	// After BreakerThreshold consecutive failures the cache stops calling
	// Redis for BreakerReset and answers from the engine.
	BreakerThreshold int           `yaml:"breakerThreshold"`
	BreakerReset     time.Duration `yaml:"breakerReset"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults:         5,
			RelevanceTolerance: 1e-6,
			AccumulatorShards:  100,
		},
		Requests: RequestsConfig{
			Window: 1440,
		},
		Pagination: PaginationConfig{
			PageSize: 2,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			CacheTTL: 60 * time.Second,

			ConnectAttempts:  3,
			BreakerThreshold: 5,
			BreakerReset:     30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port:           9090,
			RequestTimeout: 5 * time.Second,
		},
	}
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.maxResults must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.RelevanceTolerance < 0 {
		return fmt.Errorf("search.relevanceTolerance must not be negative, got %g", c.Search.RelevanceTolerance)
	}
	if c.Search.AccumulatorShards <= 0 {
		return fmt.Errorf("search.accumulatorShards must be positive, got %d", c.Search.AccumulatorShards)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must not be negative, got %d", c.Search.Workers)
	}
	if c.Requests.Window <= 0 {
		return fmt.Errorf("requests.window must be positive, got %d", c.Requests.Window)
	}
	if c.Pagination.PageSize <= 0 {
		return fmt.Errorf("pagination.pageSize must be positive, got %d", c.Pagination.PageSize)
	}
	return nil
}

// applyEnvOverrides reads SS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SS_SEARCH_STOP_WORDS"); v != "" {
		cfg.Search.StopWords = strings.Fields(v)
	}
	if v := os.Getenv("SS_SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = n
		}
	}
	if v := os.Getenv("SS_SEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Workers = n
		}
	}
	if v := os.Getenv("SS_REQUESTS_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Requests.Window = n
		}
	}
	if v := os.Getenv("SS_PAGINATION_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pagination.PageSize = n
		}
	}
	if v := os.Getenv("SS_REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = b
		}
	}
	if v := os.Getenv("SS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SS_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("SS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
