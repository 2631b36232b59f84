// Package store defines the key-value surface the instrumentation layer is
// built on and provides its two backends.
//
// # Overview
//
// The package exports one interface and two implementations:
//
//   - Store: string values, integer counters, and append-only lists with
//     inclusive range windows, plus TTL expiry and a destructive flush
//   - NewRedisStore: the production backend over a Redis server
//   - NewMemoryStore: an in-process backend with identical observable
//     semantics, used by tests and demos
//
// Absence is a value, not an error: Get reports a missing key through its
// boolean result and reserves the error for transport or backend failures.
//
// # Basic Usage
//
// The Redis backend is configured through Config, which validates before any
// client is constructed:
//
//	cfg := store.DefaultConfig()
//	cfg.Addr = "cache.internal:6379"
//	s, err := store.NewRedisStore(cfg)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	err = s.Set(ctx, "greeting", []byte("hello"))
//	val, found, err := s.Get(ctx, "greeting")
//
// # Range Semantics
//
// ListRange follows Redis LRANGE conventions: start and stop are inclusive,
// negative indices count from the tail, and windows that fall outside the
// list yield an empty result rather than an error. (0, -1) returns the whole
// list.
//
// # Choosing a Backend
//
// Both backends satisfy the same contract, so components that accept a Store
// can run against Redis in production and the memory store in tests. The
// memory store additionally accepts WithClock for deterministic TTL tests.
package store
