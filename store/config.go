package store

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/internal/storeinfra"
)

// Config exposes the Redis backend configuration for consumers of the store
// package.
type Config struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	Logger       *zap.Logger
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(storeinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewRedisStore constructs the Redis-backed Store implementation using the
// provided configuration. The client connects lazily, so an unreachable
// server surfaces on the first operation rather than here.
func NewRedisStore(cfg Config) (Store, error) {
	return storeinfra.NewRedisStore(cfg.toInternal())
}

func (c Config) toInternal() storeinfra.Config {
	return storeinfra.Config{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		PoolSize:     c.PoolSize,
		Logger:       c.Logger,
	}
}

func convertFromInternal(cfg storeinfra.Config) Config {
	return Config{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		Logger:       cfg.Logger,
	}
}
