package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteBackendTest(t *testing.T) *SQLiteBackend {
	t.Helper()

	backend, err := NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestSQLiteBackend_PutGet(t *testing.T) {
	backend := setupSQLiteBackendTest(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	value, err := backend.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), value)

	// Upsert replaces
	require.NoError(t, backend.Put(ctx, "a", []byte("two")))
	value, err = backend.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value)
}

func TestSQLiteBackend_GetMissing(t *testing.T) {
	backend := setupSQLiteBackendTest(t)

	_, err := backend.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteBackend_Delete(t *testing.T) {
	backend := setupSQLiteBackendTest(t)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	deleted, err := backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSQLiteBackend_Ping(t *testing.T) {
	backend := setupSQLiteBackendTest(t)
	assert.NoError(t, backend.Ping(context.Background()))
}
