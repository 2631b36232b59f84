package storeinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds the configuration for the Redis store adapter.
// It encapsulates the client options needed for store initialization.
type Config struct {
	// Addr is the host:port of the Redis server.
	// Must be non-empty.
	Addr string

	// Password authenticates against the server.
	// Empty means no authentication.
	Password string

	// DB selects the logical database the adapter operates on. FlushAll is
	// scoped to this database. Must be non-negative. Default: 0
	DB int

	// DialTimeout bounds how long establishing a connection may take.
	// Must be non-negative. Zero uses the client default.
	DialTimeout time.Duration

	// ReadTimeout bounds socket reads per command.
	// Must be non-negative. Zero uses the client default.
	ReadTimeout time.Duration

	// WriteTimeout bounds socket writes per command.
	// Must be non-negative. Zero uses the client default.
	WriteTimeout time.Duration

	// PoolSize sets the maximum number of socket connections.
	// Must be non-negative. Zero uses the client default.
	PoolSize int

	// Logger receives adapter lifecycle events. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	}
}

// ToRedisOptions converts the Config to the go-redis client options.
// Note: Logger is consumed by the adapter itself and is not part of the
// client options.
func (c Config) ToRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		PoolSize:     c.PoolSize,
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Addr == "" {
		return &ConfigError{Field: "Addr", Message: "must not be empty"}
	}

	if c.DB < 0 {
		return &ConfigError{Field: "DB", Message: "must be non-negative"}
	}

	if c.DialTimeout < 0 {
		return &ConfigError{Field: "DialTimeout", Message: "must be non-negative"}
	}

	if c.ReadTimeout < 0 {
		return &ConfigError{Field: "ReadTimeout", Message: "must be non-negative"}
	}

	if c.WriteTimeout < 0 {
		return &ConfigError{Field: "WriteTimeout", Message: "must be non-negative"}
	}

	if c.PoolSize < 0 {
		return &ConfigError{Field: "PoolSize", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// redisStore implements the store contract over a go-redis client.
type redisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a new Redis store adapter.
// It validates the configuration and initializes a go-redis client with the
// provided settings. The client connects lazily: an unreachable server is
// reported by the first operation, not by this constructor.
func NewRedisStore(cfg Config) (*redisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(cfg.ToRedisOptions())
	logger.Debug("redis store ready",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	return &redisStore{client: client, logger: logger}, nil
}

// Set stores value under key with no expiry.
func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores value under key, expiring it after ttl. A ttl of zero or
// less stores the value without expiry.
func (s *redisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, mapping the client's missing-key
// sentinel to an absent result.
func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

// Incr increments the integer stored under key and returns the new value.
func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %q: %w", key, err)
	}
	return n, nil
}

// ListAppend appends value to the tail of the list stored under key.
func (s *redisStore) ListAppend(ctx context.Context, key string, value []byte) error {
	if err := s.client.RPush(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("redis rpush %q: %w", key, err)
	}
	return nil
}

// ListRange returns the inclusive window [start, stop] of the list stored
// under key.
func (s *redisStore) ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	vals, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %q: %w", key, err)
	}

	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

// ListLen returns the length of the list stored under key.
func (s *redisStore) ListLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen %q: %w", key, err)
	}
	return n, nil
}

// FlushAll removes every key in the adapter's selected database. It issues
// FLUSHDB rather than FLUSHALL so other logical databases on the same server
// are untouched.
func (s *redisStore) FlushAll(ctx context.Context) error {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("redis flushdb: %w", err)
	}
	s.logger.Debug("redis database flushed")
	return nil
}

// Close releases the client's connection pool.
func (s *redisStore) Close() error {
	return s.client.Close()
}
