package webcache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// Config holds the configuration for the web cache client.
type Config struct {
	// TTL is how long a fetched page stays cached. Default: 10s
	TTL time.Duration

	// HTTPTimeout bounds a single page fetch when the default HTTP fetcher
	// is used. Default: 30s
	HTTPTimeout time.Duration

	// Logger receives cache hit and miss events. If nil, logging is
	// disabled.
	Logger *zap.Logger

	// Fetcher retrieves pages on cache misses. If nil, an HTTP fetcher
	// with HTTPTimeout is used.
	Fetcher Fetcher
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		TTL:         10 * time.Second,
		HTTPTimeout: 30 * time.Second,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TTL == 0 {
		c.TTL = def.TTL
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = def.HTTPTimeout
	}
	return c
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
	)
}
