package tracecache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/calltrace"
	"github.com/goliatone/go-cache-trace/store"
)

// StoreIdentity is the identity under which the cache's store operation is
// counted and recorded.
const StoreIdentity = "store"

// KeyGenerator produces the key a stored value is filed under. The default
// generator returns random UUIDs.
type KeyGenerator func() string

// Cache files arbitrary byte payloads in a store under generated keys and
// instruments the store operation with a call counter and a call recorder.
// Reads are uninstrumented.
type Cache struct {
	store    store.Store
	encoder  calltrace.Encoder
	registry *calltrace.Registry
	logger   *zap.Logger
	newKey   KeyGenerator
	storeOp  calltrace.Operation[[]byte, string]
}

// Option configures a Cache.
type Option func(*Cache)

// WithKeyGenerator replaces the UUID key generator.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(c *Cache) {
		if gen != nil {
			c.newKey = gen
		}
	}
}

// WithEncoder sets the encoder used when recording store calls.
func WithEncoder(enc calltrace.Encoder) Option {
	return func(c *Cache) {
		if enc != nil {
			c.encoder = enc
		}
	}
}

// WithRegistry sets the registry the cache claims its identity in. Sharing
// one registry across components surfaces identity collisions.
func WithRegistry(reg *calltrace.Registry) Option {
	return func(c *Cache) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithLogger sets the cache's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Cache over s. Initialization flushes every key in the
// backing store's database, matching a fresh-start contract: counters,
// histories, and previously stored values are all gone afterwards.
func New(ctx context.Context, s store.Store, opts ...Option) (*Cache, error) {
	c := &Cache{
		store:    s,
		encoder:  calltrace.NewEncoder(),
		registry: calltrace.NewRegistry(),
		logger:   zap.NewNop(),
		newKey:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := s.FlushAll(ctx); err != nil {
		return nil, fmt.Errorf("flush store: %w", err)
	}
	c.logger.Warn("flushed backing store on init")

	if err := c.registry.Register(StoreIdentity, "stores a value under a generated key"); err != nil {
		return nil, err
	}

	base := func(ctx context.Context, data []byte) (string, error) {
		key := c.newKey()
		if err := s.Set(ctx, key, data); err != nil {
			return "", fmt.Errorf("set %q: %w", key, err)
		}
		return key, nil
	}
	c.storeOp = calltrace.Counted(s, StoreIdentity,
		calltrace.Recorded(s, StoreIdentity, c.encoder, base))

	return c, nil
}

// Store files data under a freshly generated key and returns that key. Every
// call is counted and recorded under StoreIdentity.
func (c *Cache) Store(ctx context.Context, data []byte) (string, error) {
	return c.storeOp(ctx, data)
}

// StoreString files s and returns its key.
func (c *Cache) StoreString(ctx context.Context, s string) (string, error) {
	return c.Store(ctx, []byte(s))
}

// StoreInt files n in decimal text form and returns its key.
func (c *Cache) StoreInt(ctx context.Context, n int64) (string, error) {
	return c.Store(ctx, []byte(formatInt(n)))
}

// StoreFloat files f in compact text form and returns its key.
func (c *Cache) StoreFloat(ctx context.Context, f float64) (string, error) {
	return c.Store(ctx, []byte(formatFloat(f)))
}

// Get returns the raw bytes stored under identifier. A key that was never
// stored reports absence, not an error.
func (c *Cache) Get(ctx context.Context, identifier string) ([]byte, bool, error) {
	return c.store.Get(ctx, identifier)
}

// GetString reads the value under identifier as text.
func (c *Cache) GetString(ctx context.Context, identifier string) (string, bool, error) {
	return GetAs(ctx, c, identifier, AsString)
}

// GetInt reads the value under identifier as a decimal integer.
func (c *Cache) GetInt(ctx context.Context, identifier string) (int64, bool, error) {
	return GetAs(ctx, c, identifier, AsInt)
}

// GetFloat reads the value under identifier as a floating point number.
func (c *Cache) GetFloat(ctx context.Context, identifier string) (float64, bool, error) {
	return GetAs(ctx, c, identifier, AsFloat)
}

// StoreCallCount reports how many times Store has run against the backing
// store, across every process that shares it.
func (c *Cache) StoreCallCount(ctx context.Context) (int64, error) {
	return calltrace.CallCount(ctx, c.store, StoreIdentity)
}

// Registry returns the registry holding the cache's identity claims.
func (c *Cache) Registry() *calltrace.Registry {
	return c.registry
}
