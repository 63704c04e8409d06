// Package observability provides structured logging, Prometheus metrics, and
// health checks for the Stratum persistence core.
//
// The Logger emits JSON via log/slog. Metrics covers storage operation
// counts, latencies, errors, and cache hit rates; the registry is exposed
// through Handler for the metrics listener. HealthChecker serves liveness and
// readiness probes, with readiness gated on backend connectivity.
package observability
