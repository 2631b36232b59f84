package store

import (
	"context"
	"time"
)

// Store is the narrow key-value surface the instrumentation layer is built on.
// String operations (Set, Get, Incr) and list operations (ListAppend,
// ListRange, ListLen) address disjoint key populations; mixing them on one key
// is a caller error and backends are free to reject it.
type Store interface {
	// Set stores value under key with no expiry, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetWithTTL stores value under key and expires it after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value stored under key. Absence is reported through the
	// boolean, not through the error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Incr atomically increments the integer stored under key and returns the
	// new value. A missing key counts up from zero; a non-integer value is an
	// error.
	Incr(ctx context.Context, key string) (int64, error)

	// ListAppend appends value to the tail of the list stored under key,
	// creating the list if needed.
	ListAppend(ctx context.Context, key string, value []byte) error

	// ListRange returns the list elements between start and stop inclusive.
	// Negative indices count from the tail, so (0, -1) is the whole list.
	// Out-of-range windows yield an empty result, never an error.
	ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// ListLen returns the length of the list stored under key; a missing key
	// has length zero.
	ListLen(ctx context.Context, key string) (int64, error)

	// FlushAll removes every key in the store's namespace. Destructive.
	FlushAll(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
