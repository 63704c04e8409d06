package kv

import (
	"context"
	"time"

	"github.com/stratumcms/stratum/pkg/observability"
)

// InstrumentedBackend wraps a Backend with Prometheus metrics: an operation
// counter, a latency histogram, and an error counter, all labeled by backend
// name and operation. ErrNotFound is not counted as an error.
type InstrumentedBackend struct {
	inner   Backend
	name    string
	metrics *observability.Metrics
}

// NewInstrumentedBackend wraps inner, reporting metrics under the given
// backend name (usually the configured storage type)
func NewInstrumentedBackend(inner Backend, name string, metrics *observability.Metrics) *InstrumentedBackend {
	return &InstrumentedBackend{inner: inner, name: name, metrics: metrics}
}

func (b *InstrumentedBackend) observe(op string, start time.Time, err error) {
	b.metrics.StorageOperationsTotal.WithLabelValues(b.name, op).Inc()
	b.metrics.StorageOperationDuration.WithLabelValues(b.name, op).Observe(time.Since(start).Seconds())
	if err != nil && err != ErrNotFound {
		b.metrics.StorageErrorsTotal.WithLabelValues(b.name, op).Inc()
	}
}

// Get implements Backend.Get
func (b *InstrumentedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := b.inner.Get(ctx, key)
	b.observe("get", start, err)
	return value, err
}

// Put implements Backend.Put
func (b *InstrumentedBackend) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := b.inner.Put(ctx, key, value)
	b.observe("put", start, err)
	return err
}

// Delete implements Backend.Delete
func (b *InstrumentedBackend) Delete(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	deleted, err := b.inner.Delete(ctx, key)
	b.observe("delete", start, err)
	return deleted, err
}

// Ping implements Backend.Ping
func (b *InstrumentedBackend) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

// Close implements Backend.Close
func (b *InstrumentedBackend) Close() error {
	return b.inner.Close()
}
