package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratumcms/stratum/pkg/kv"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func (n note) EntityID() string { return n.ID }

func newTestRecord(backend kv.Backend, id string) *Record[note] {
	return NewRecord(backend, "note", id, note{})
}

func TestRecord_ReadMissingReturnsInitial(t *testing.T) {
	backend := kv.NewMemoryBackend()
	record := newTestRecord(backend, "n1")

	state, err := record.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, note{}, state)
}

func TestRecord_WriteRead(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	record := newTestRecord(backend, "n1")

	require.NoError(t, record.Write(ctx, note{ID: "n1", Body: "hello"}))

	state, err := record.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, note{ID: "n1", Body: "hello"}, state)

	// Key naming: {kind}:{id}
	assert.Equal(t, "note:n1", record.Key())
}

func TestRecord_Exists(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	record := newTestRecord(backend, "n1")

	exists, err := record.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, record.Write(ctx, note{ID: "n1"}))

	exists, err = record.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecord_Erase(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	record := newTestRecord(backend, "n1")

	deleted, err := record.Erase(ctx)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, record.Write(ctx, note{ID: "n1"}))

	deleted, err = record.Erase(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)

	state, err := record.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, note{}, state)
}

func TestRecord_Update(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	record := newTestRecord(backend, "n1")

	// fn receives the initial value when nothing was written
	next, err := record.Update(ctx, func(n note) note {
		assert.Equal(t, note{}, n)
		n.ID = "n1"
		n.Body = "first"
		return n
	})
	require.NoError(t, err)
	assert.Equal(t, "first", next.Body)

	next, err = record.Update(ctx, func(n note) note {
		n.Body = n.Body + "!"
		return n
	})
	require.NoError(t, err)
	assert.Equal(t, "first!", next.Body)

	state, err := record.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first!", state.Body)
}

func TestRecord_CorruptValue(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, "note:n1", []byte("not json")))

	_, err := newTestRecord(backend, "n1").Read(ctx)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "decode", storageErr.Op)
}
