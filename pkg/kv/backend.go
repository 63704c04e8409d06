package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("key not found")

// Backend is durable storage addressed by string key. Values are opaque
// serialized bytes. Implementations must serialize concurrent writers to the
// same key.
type Backend interface {
	// Get retrieves the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key and reports whether a value was deleted.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// Config for key-value backends
type Config struct {
	Type string // "memory", "redis", "sqlite", "postgres"

	// Redis config
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisMaxRetries int
	RedisPoolSize   int

	// SQLite config
	SQLitePath string

	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresTimeout  time.Duration

	// Cache config
	CacheEnabled bool
	CacheSize    int // entries
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:             "memory",
		RedisDB:          0,
		RedisMaxRetries:  3,
		RedisPoolSize:    10,
		PostgresMaxConns: 20,
		PostgresTimeout:  10 * time.Second,
		CacheEnabled:     true,
		CacheSize:        4096,
	}
}
