// Package kv provides the key-value backends the persistence core runs on.
//
// Every higher layer (records, index sets, the content and audit stores)
// addresses durable storage exclusively through the Backend interface: opaque
// byte values under string keys, with Get returning ErrNotFound for absent
// keys. Backends are expected to serialize concurrent writers to the same
// key; the core implements no locking of its own.
//
// # Backends
//
// Four implementations ship with the core:
//
//   - MemoryBackend: in-process map, used by tests and ephemeral deployments
//   - RedisBackend: the production default
//   - SQLiteBackend: embedded single-file storage
//   - PostgresBackend: shared relational storage
//
// Two wrappers compose over any Backend:
//
//   - CachedBackend: read-through LRU cache, invalidated on writes
//   - InstrumentedBackend: Prometheus counters and latency histograms
//
// # Usage
//
//	backend, err := kv.NewRedisBackend(cfg)
//	if err != nil {
//		return err
//	}
//	defer backend.Close()
//
//	value, err := backend.Get(ctx, "cms-type:blog-post")
//	if errors.Is(err, kv.ErrNotFound) {
//		// key absent
//	}
package kv
