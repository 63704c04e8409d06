package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stratumcms/stratum/pkg/cms"
	"github.com/stratumcms/stratum/pkg/config"
	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	metrics := observability.NewMetrics(prometheus.NewRegistry())

	backend, err := openBackend(cfg.Storage)
	if err != nil {
		logger.WithError(err).Errorf("failed to open %s backend", cfg.Storage.Type)
		os.Exit(1)
	}
	logger.WithField("backend", cfg.Storage.Type).Info("storage backend ready")

	var store kv.Backend = kv.NewInstrumentedBackend(backend, cfg.Storage.Type, metrics)
	if cfg.Storage.CacheEnabled {
		cached, err := kv.NewCachedBackend(store, cfg.Storage.CacheSize, metrics)
		if err != nil {
			logger.WithError(err).Error("failed to create read cache")
			os.Exit(1)
		}
		store = cached
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.SeedOnStart {
		if err := cms.NewContentTypeStore(store, logger).EnsureSeed(ctx); err != nil {
			logger.WithError(err).Error("failed to seed content types")
			os.Exit(1)
		}
		if err := cms.NewUserStore(store, logger).EnsureSeed(ctx); err != nil {
			logger.WithError(err).Error("failed to seed users")
			os.Exit(1)
		}
	}

	health := observability.NewHealthChecker(store)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", health.Liveness)
	mux.HandleFunc("/readyz", health.Readiness)
	if cfg.Observability.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.HealthPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		logger.WithField("port", cfg.Server.HealthPort).Info("health/metrics listener started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("health/metrics listener failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("health/metrics listener shutdown failed")
	}
}

func openBackend(cfg kv.Config) (kv.Backend, error) {
	switch cfg.Type {
	case "memory":
		return kv.NewMemoryBackend(), nil
	case "redis":
		return kv.NewRedisBackend(cfg)
	case "sqlite":
		return kv.NewSQLiteBackend(cfg.SQLitePath)
	case "postgres":
		return kv.NewPostgresBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
