package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)`

// PostgresBackend implements Backend on a PostgreSQL database
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend connects to the database at url and ensures the kv
// table exists
func NewPostgresBackend(config Config) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if config.PostgresMaxConns > 0 {
		db.SetMaxOpenConns(config.PostgresMaxConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	timeout := config.PostgresTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	backend, err := NewPostgresBackendFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return backend, nil
}

// NewPostgresBackendFromDB wraps an existing database handle. The caller
// keeps ownership of lifecycle concerns it set up (pool sizing, TLS).
func NewPostgresBackendFromDB(db *sql.DB) (*PostgresBackend, error) {
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &PostgresBackend{db: db}, nil
}

// Get implements Backend.Get
func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = $1", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("postgres get failed: %w", err)
	}
	return value, nil
}

// Put implements Backend.Put
func (b *PostgresBackend) Put(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		key, value)
	if err != nil {
		return fmt.Errorf("postgres put failed: %w", err)
	}
	return nil
}

// Delete implements Backend.Delete
func (b *PostgresBackend) Delete(ctx context.Context, key string) (bool, error) {
	result, err := b.db.ExecContext(ctx, "DELETE FROM kv WHERE key = $1", key)
	if err != nil {
		return false, fmt.Errorf("postgres delete failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("postgres delete failed: %w", err)
	}
	return affected > 0, nil
}

// Ping implements Backend.Ping
func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close implements Backend.Close
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}

// Stats returns connection pool statistics
func (b *PostgresBackend) Stats() sql.DBStats {
	return b.db.Stats()
}
