package di

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/calltrace"
	"github.com/goliatone/go-cache-trace/store"
	"github.com/goliatone/go-cache-trace/tracecache"
	"github.com/goliatone/go-cache-trace/webcache"
)

// Container provides dependency injection for instrumentation components.
// It manages singleton instances of the store, encoder, and registry, and
// provides factory methods for the facades built on top of them.
type Container struct {
	store    store.Store
	encoder  calltrace.Encoder
	registry *calltrace.Registry
	logger   *zap.Logger
	config   store.Config
}

// NewContainer creates a new DI container with the provided store
// configuration. It connects the Redis-backed store and sets up the default
// transcript encoder and a fresh registry.
func NewContainer(config store.Config) (*Container, error) {
	s, err := store.NewRedisStore(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Container{
		store:    s,
		encoder:  calltrace.NewEncoder(),
		registry: calltrace.NewRegistry(),
		logger:   logger,
		config:   config,
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default
// configuration. This is a convenience constructor for typical use cases
// where custom configuration is not required.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(store.DefaultConfig())
}

// NewContainerWithStore creates a container around an existing store. Useful
// for tests and tools that run against the in-process MemoryStore. A nil
// logger disables logging.
func NewContainerWithStore(s store.Store, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Container{
		store:    s,
		encoder:  calltrace.NewEncoder(),
		registry: calltrace.NewRegistry(),
		logger:   logger,
	}
}

// Store returns the singleton store instance.
func (c *Container) Store() store.Store {
	return c.store
}

// Encoder returns the singleton transcript encoder instance.
func (c *Container) Encoder() calltrace.Encoder {
	return c.encoder
}

// Registry returns the singleton identity registry instance.
func (c *Container) Registry() *calltrace.Registry {
	return c.registry
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns a copy of the store configuration used by this container.
// Containers built with NewContainerWithStore report a zero Config.
func (c *Container) Config() store.Config {
	return c.config
}

// Close releases the store's resources.
func (c *Container) Close() error {
	return c.store.Close()
}

// NewCache creates a tracecache.Cache wired to the container's store,
// encoder, registry, and logger. Options passed by the caller are applied
// after the container's, so they can override any of them. Initialization
// flushes the backing store, and the shared registry admits only one cache
// per container.
func (c *Container) NewCache(ctx context.Context, opts ...tracecache.Option) (*tracecache.Cache, error) {
	wired := []tracecache.Option{
		tracecache.WithEncoder(c.encoder),
		tracecache.WithRegistry(c.registry),
		tracecache.WithLogger(c.logger),
	}
	return tracecache.New(ctx, c.store, append(wired, opts...)...)
}

// NewWebClient creates a webcache.Client over the container's store. The
// container's logger fills in when cfg carries none.
func (c *Container) NewWebClient(cfg webcache.Config) (*webcache.Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = c.logger
	}
	return webcache.New(c.store, cfg)
}

// NewReplayer creates a calltrace.Replayer reading from the container's
// store.
func (c *Container) NewReplayer() *calltrace.Replayer {
	return calltrace.NewReplayer(c.store, calltrace.WithLogger(c.logger))
}

// NewTracedOperation wraps op with the container's counting and recording
// decorators and claims identity in the container's registry.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function.
// Example: NewTracedOperation[string, string](container, "greet", "greets people", op)
func NewTracedOperation[A, R any](c *Container, identity, description string, op calltrace.Operation[A, R]) (calltrace.Operation[A, R], error) {
	if err := c.registry.Register(identity, description); err != nil {
		return nil, err
	}
	return calltrace.Counted(c.store, identity,
		calltrace.Recorded(c.store, identity, c.encoder, op)), nil
}
