package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisBackendTest creates a miniredis instance and returns the backend
// and a cleanup function
func setupRedisBackendTest(t *testing.T) (*RedisBackend, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	config := DefaultConfig()
	config.Type = "redis"
	config.RedisURL = "redis://" + mr.Addr()

	backend, err := NewRedisBackend(config)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis backend: %v", err)
	}

	cleanup := func() {
		backend.Close()
		mr.Close()
	}
	return backend, mr, cleanup
}

func TestNewRedisBackend_InvalidURL(t *testing.T) {
	config := DefaultConfig()
	config.RedisURL = "invalid://url"

	_, err := NewRedisBackend(config)
	assert.Error(t, err)
}

func TestNewRedisBackend_ConnectionFailure(t *testing.T) {
	config := DefaultConfig()
	config.RedisURL = "redis://localhost:1" // nothing listens here

	_, err := NewRedisBackend(config)
	assert.Error(t, err)
}

func TestRedisBackend_PutGet(t *testing.T) {
	backend, _, cleanup := setupRedisBackendTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, "cms-type:blog-post", []byte(`{"id":"blog-post"}`)))

	value, err := backend.Get(ctx, "cms-type:blog-post")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"blog-post"}`), value)
}

func TestRedisBackend_GetMissing(t *testing.T) {
	backend, _, cleanup := setupRedisBackendTest(t)
	defer cleanup()

	_, err := backend.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBackend_Delete(t *testing.T) {
	backend, mr, cleanup := setupRedisBackendTest(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	deleted, err := backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists("a"))

	deleted, err = backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRedisBackend_Ping(t *testing.T) {
	backend, mr, cleanup := setupRedisBackendTest(t)
	defer cleanup()

	ctx := context.Background()
	assert.NoError(t, backend.Ping(ctx))

	mr.Close()
	assert.Error(t, backend.Ping(ctx))
}
