package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Interface assertion to ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// memoryValue is a stored string value with an optional expiry deadline.
// A zero deadline means the value never expires.
type memoryValue struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store backend with the same observable
// semantics as the Redis adapter: absence as a boolean, integer counters,
// tail-appended lists with inclusive range windows, lazy TTL expiry.
// It is safe for concurrent use and intended for tests and demos.
type MemoryStore struct {
	mu     sync.Mutex
	now    func() time.Time
	values map[string]memoryValue
	lists  map[string][][]byte
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces the time source used for TTL expiry. Tests use this to
// advance time deterministically instead of sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		now:    time.Now,
		values: make(map[string]memoryValue),
		lists:  make(map[string][][]byte),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set stores value under key with no expiry.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	return m.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores value under key, expiring it after ttl. A ttl of zero or
// less stores the value without expiry.
func (m *MemoryStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deadline time.Time
	if ttl > 0 {
		deadline = m.now().Add(ttl)
	}
	m.values[key] = memoryValue{data: cloneBytes(value), expiresAt: deadline}
	return nil
}

// Get returns the value stored under key, reporting absence through the
// boolean. Expired values are dropped on access.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.loadValue(key)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(val.data), true, nil
}

// Incr increments the integer stored under key and returns the new value.
// Missing keys count up from zero. The expiry deadline of an existing value
// is preserved across increments.
func (m *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.loadValue(key)
	var current int64
	if ok {
		parsed, err := strconv.ParseInt(string(val.data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("memory incr %q: value is not an integer", key)
		}
		current = parsed
	}

	current++
	m.values[key] = memoryValue{
		data:      []byte(strconv.FormatInt(current, 10)),
		expiresAt: val.expiresAt,
	}
	return current, nil
}

// ListAppend appends value to the tail of the list stored under key.
func (m *MemoryStore) ListAppend(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[key] = append(m.lists[key], cloneBytes(value))
	return nil
}

// ListRange returns the inclusive window [start, stop] of the list stored
// under key, with negative indices counted from the tail.
func (m *MemoryStore) ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	n := int64(len(list))

	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop = n + stop
	}
	if stop >= n {
		stop = n - 1
	}
	if start >= n || start > stop {
		return nil, nil
	}

	out := make([][]byte, 0, stop-start+1)
	for _, elem := range list[start : stop+1] {
		out = append(out, cloneBytes(elem))
	}
	return out, nil
}

// ListLen returns the length of the list stored under key.
func (m *MemoryStore) ListLen(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.lists[key])), nil
}

// FlushAll removes every value and list.
func (m *MemoryStore) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]memoryValue)
	m.lists = make(map[string][][]byte)
	return nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryStore) Close() error {
	return nil
}

// loadValue returns the live value for key, expiring it if its deadline has
// passed. Callers must hold m.mu.
func (m *MemoryStore) loadValue(key string) (memoryValue, bool) {
	val, ok := m.values[key]
	if !ok {
		return memoryValue{}, false
	}
	if !val.expiresAt.IsZero() && !m.now().Before(val.expiresAt) {
		delete(m.values, key)
		return memoryValue{}, false
	}
	return val, true
}

// cloneBytes copies b so callers cannot alias the store's internal buffers.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
