package kv

import (
	"context"
	"sync"
)

// MemoryBackend implements Backend with an in-process map. It is the test
// backend and serves ephemeral deployments; nothing survives a restart.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Get implements Backend.Get
func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put implements Backend.Put
func (b *MemoryBackend) Put(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = stored
	return nil
}

// Delete implements Backend.Delete
func (b *MemoryBackend) Delete(ctx context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.data[key]
	delete(b.data, key)
	return ok, nil
}

// Ping implements Backend.Ping
func (b *MemoryBackend) Ping(ctx context.Context) error {
	return nil
}

// Close implements Backend.Close
func (b *MemoryBackend) Close() error {
	return nil
}

// Len reports the number of stored keys. Test helper.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}
