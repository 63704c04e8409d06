package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Storage metrics
	StorageOperationsTotal   *prometheus.CounterVec
	StorageOperationDuration *prometheus.HistogramVec
	StorageErrorsTotal       *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Business metrics
	ContentItemsWritten  prometheus.Counter
	ContentItemsDeleted  prometheus.Counter
	PartialIndexFailures prometheus.Counter
	AuditEntriesTotal    prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		StorageOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratum_storage_operations_total",
				Help: "Total number of key-value storage operations",
			},
			[]string{"backend", "operation"},
		),
		StorageOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stratum_storage_operation_duration_seconds",
				Help:    "Key-value storage operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
		StorageErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratum_storage_errors_total",
				Help: "Total number of key-value storage errors",
			},
			[]string{"backend", "operation"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_cache_hits_total",
				Help: "Total number of read cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_cache_misses_total",
				Help: "Total number of read cache misses",
			},
		),
		ContentItemsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_content_items_written_total",
				Help: "Total number of content item upserts",
			},
		),
		ContentItemsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_content_items_deleted_total",
				Help: "Total number of content item deletions",
			},
		),
		PartialIndexFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_partial_index_failures_total",
				Help: "Total number of writes where a secondary index or search artifact failed",
			},
		),
		AuditEntriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stratum_audit_entries_total",
				Help: "Total number of audit log entries appended",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.StorageOperationsTotal,
		m.StorageOperationDuration,
		m.StorageErrorsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ContentItemsWritten,
		m.ContentItemsDeleted,
		m.PartialIndexFailures,
		m.AuditEntriesTotal,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
