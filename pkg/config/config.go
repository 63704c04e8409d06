// Package config loads the Stratum configuration from the environment, with
// an optional YAML file overlay named by STRATUM_CONFIG. Precedence is
// defaults, then file, then environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage kv.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds runtime configuration for the bootstrap process
type ServerConfig struct {
	// Health/metrics listener (separate from any API surface)
	HealthPort      string
	ShutdownTimeout time.Duration

	// SeedOnStart inserts default content types and users on first run
	SeedOnStart bool

	// DefaultPageLimit is the page size used when callers pass none
	DefaultPageLimit int

	// SearchResultLimit caps global search results
	SearchResultLimit int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from the environment and the optional YAML
// file named by STRATUM_CONFIG
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HealthPort:        "9090",
			ShutdownTimeout:   30 * time.Second,
			SeedOnStart:       true,
			DefaultPageLimit:  20,
			SearchResultLimit: 10,
		},
		Storage: kv.DefaultConfig(),
		Observability: ObservabilityConfig{
			LogLevel:       observability.InfoLevel,
			MetricsEnabled: true,
		},
	}

	if path := os.Getenv("STRATUM_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// fileConfig mirrors Config for YAML decoding; pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Server struct {
		HealthPort        string         `yaml:"health_port"`
		ShutdownTimeout   *time.Duration `yaml:"shutdown_timeout"`
		SeedOnStart       *bool          `yaml:"seed_on_start"`
		DefaultPageLimit  *int           `yaml:"default_page_limit"`
		SearchResultLimit *int           `yaml:"search_result_limit"`
	} `yaml:"server"`
	Storage struct {
		Type         string `yaml:"type"`
		RedisURL     string `yaml:"redis_url"`
		SQLitePath   string `yaml:"sqlite_path"`
		PostgresURL  string `yaml:"postgres_url"`
		CacheEnabled *bool  `yaml:"cache_enabled"`
		CacheSize    *int   `yaml:"cache_size"`
	} `yaml:"storage"`
	Observability struct {
		LogLevel       string `yaml:"log_level"`
		MetricsEnabled *bool  `yaml:"metrics_enabled"`
	} `yaml:"observability"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Server.HealthPort != "" {
		c.Server.HealthPort = fc.Server.HealthPort
	}
	if fc.Server.ShutdownTimeout != nil {
		c.Server.ShutdownTimeout = *fc.Server.ShutdownTimeout
	}
	if fc.Server.SeedOnStart != nil {
		c.Server.SeedOnStart = *fc.Server.SeedOnStart
	}
	if fc.Server.DefaultPageLimit != nil {
		c.Server.DefaultPageLimit = *fc.Server.DefaultPageLimit
	}
	if fc.Server.SearchResultLimit != nil {
		c.Server.SearchResultLimit = *fc.Server.SearchResultLimit
	}
	if fc.Storage.Type != "" {
		c.Storage.Type = fc.Storage.Type
	}
	if fc.Storage.RedisURL != "" {
		c.Storage.RedisURL = fc.Storage.RedisURL
	}
	if fc.Storage.SQLitePath != "" {
		c.Storage.SQLitePath = fc.Storage.SQLitePath
	}
	if fc.Storage.PostgresURL != "" {
		c.Storage.PostgresURL = fc.Storage.PostgresURL
	}
	if fc.Storage.CacheEnabled != nil {
		c.Storage.CacheEnabled = *fc.Storage.CacheEnabled
	}
	if fc.Storage.CacheSize != nil {
		c.Storage.CacheSize = *fc.Storage.CacheSize
	}
	if fc.Observability.LogLevel != "" {
		c.Observability.LogLevel = observability.ParseLevel(fc.Observability.LogLevel)
	}
	if fc.Observability.MetricsEnabled != nil {
		c.Observability.MetricsEnabled = *fc.Observability.MetricsEnabled
	}
	return nil
}

func (c *Config) applyEnv() {
	// Server
	if port := getEnv("STRATUM_HEALTH_PORT", ""); port != "" {
		c.Server.HealthPort = port
	}
	if timeout := getEnvDuration("STRATUM_SHUTDOWN_TIMEOUT", 0); timeout > 0 {
		c.Server.ShutdownTimeout = timeout
	}
	if seed := getEnv("STRATUM_SEED_ON_START", ""); seed != "" {
		c.Server.SeedOnStart = isTruthy(seed)
	}
	if limit := getEnvInt("STRATUM_DEFAULT_PAGE_LIMIT", 0); limit > 0 {
		c.Server.DefaultPageLimit = limit
	}
	if limit := getEnvInt("STRATUM_SEARCH_RESULT_LIMIT", 0); limit > 0 {
		c.Server.SearchResultLimit = limit
	}

	// Storage
	if storageType := getEnv("STRATUM_STORAGE_TYPE", ""); storageType != "" {
		c.Storage.Type = storageType
	}
	if redisURL := getEnv("STRATUM_REDIS_URL", ""); redisURL != "" {
		c.Storage.RedisURL = redisURL
	}
	if redisPassword := getEnv("STRATUM_REDIS_PASSWORD", ""); redisPassword != "" {
		c.Storage.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("STRATUM_REDIS_DB", -1); redisDB >= 0 {
		c.Storage.RedisDB = redisDB
	}
	if maxRetries := getEnvInt("STRATUM_REDIS_MAX_RETRIES", 0); maxRetries > 0 {
		c.Storage.RedisMaxRetries = maxRetries
	}
	if poolSize := getEnvInt("STRATUM_REDIS_POOL_SIZE", 0); poolSize > 0 {
		c.Storage.RedisPoolSize = poolSize
	}
	if sqlitePath := getEnv("STRATUM_SQLITE_PATH", ""); sqlitePath != "" {
		c.Storage.SQLitePath = sqlitePath
	}
	if pgURL := getEnv("STRATUM_POSTGRES_URL", ""); pgURL != "" {
		c.Storage.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("STRATUM_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		c.Storage.PostgresMaxConns = maxConns
	}
	if timeout := getEnvDuration("STRATUM_POSTGRES_TIMEOUT", 0); timeout > 0 {
		c.Storage.PostgresTimeout = timeout
	}
	if cacheEnabled := getEnv("STRATUM_CACHE_ENABLED", ""); cacheEnabled != "" {
		c.Storage.CacheEnabled = isTruthy(cacheEnabled)
	}
	if cacheSize := getEnvInt("STRATUM_CACHE_SIZE", 0); cacheSize > 0 {
		c.Storage.CacheSize = cacheSize
	}

	// Observability
	if level := getEnv("STRATUM_LOG_LEVEL", ""); level != "" {
		c.Observability.LogLevel = observability.ParseLevel(level)
	}
	if enabled := getEnv("STRATUM_METRICS_ENABLED", ""); enabled != "" {
		c.Observability.MetricsEnabled = isTruthy(enabled)
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}

	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis storage")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage")
		}
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("invalid storage type: %s (must be memory, redis, sqlite, or postgres)", c.Storage.Type)
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func isTruthy(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}
