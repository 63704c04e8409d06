package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_PutGet(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	value, err := backend.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), value)

	require.NoError(t, backend.Put(ctx, "a", []byte("two")))
	value, err = backend.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value)
}

func TestMemoryBackend_GetMissing(t *testing.T) {
	backend := NewMemoryBackend()

	_, err := backend.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend_Delete(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	deleted, err := backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = backend.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = backend.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	require.NoError(t, backend.Put(ctx, "a", []byte("one")))

	value, err := backend.Get(ctx, "a")
	require.NoError(t, err)
	value[0] = 'X'

	again, err := backend.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), again)
}

func TestMemoryBackend_Ping(t *testing.T) {
	backend := NewMemoryBackend()
	assert.NoError(t, backend.Ping(context.Background()))
	assert.NoError(t, backend.Close())
}
