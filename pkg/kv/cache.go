package kv

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/stratumcms/stratum/pkg/observability"
)

// CachedBackend wraps a Backend with a read-through LRU cache. Writes go
// through to the inner backend and update the cache; deletes invalidate it.
// The cache is per-process and only stays coherent when all writers share
// the process.
type CachedBackend struct {
	inner   Backend
	cache   *lru.Cache[string, []byte]
	metrics *observability.Metrics
}

// NewCachedBackend creates a cache of up to size entries in front of inner.
// metrics may be nil.
func NewCachedBackend(inner Backend, size int, metrics *observability.Metrics) (*CachedBackend, error) {
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &CachedBackend{inner: inner, cache: cache, metrics: metrics}, nil
}

// Get implements Backend.Get
func (b *CachedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := b.cache.Get(key); ok {
		if b.metrics != nil {
			b.metrics.CacheHitsTotal.Inc()
		}
		out := make([]byte, len(value))
		copy(out, value)
		return out, nil
	}
	if b.metrics != nil {
		b.metrics.CacheMissesTotal.Inc()
	}

	value, err := b.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	b.cache.Add(key, value)
	return value, nil
}

// Put implements Backend.Put
func (b *CachedBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := b.inner.Put(ctx, key, value); err != nil {
		// Inner state is unknown after a failed write; drop the cached value.
		b.cache.Remove(key)
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	b.cache.Add(key, stored)
	return nil
}

// Delete implements Backend.Delete
func (b *CachedBackend) Delete(ctx context.Context, key string) (bool, error) {
	b.cache.Remove(key)
	return b.inner.Delete(ctx, key)
}

// Ping implements Backend.Ping
func (b *CachedBackend) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

// Close implements Backend.Close
func (b *CachedBackend) Close() error {
	b.cache.Purge()
	return b.inner.Close()
}
