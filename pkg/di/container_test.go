package di

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-cache-trace/store"
)

func TestNewContainer(t *testing.T) {
	config := store.Config{
		Addr:         "localhost:6390",
		DB:           3,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     5,
	}

	container, err := NewContainer(config)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	if container == nil {
		t.Fatal("NewContainer() returned nil container")
	}
	defer container.Close()

	// Verify that dependencies are properly initialized
	if container.Store() == nil {
		t.Error("Container should have a non-nil store")
	}

	if container.Encoder() == nil {
		t.Error("Container should have a non-nil encoder")
	}

	if container.Registry() == nil {
		t.Error("Container should have a non-nil registry")
	}

	if container.Logger() == nil {
		t.Error("Container should have a non-nil logger")
	}

	// Verify config is stored correctly
	storedConfig := container.Config()
	if storedConfig.Addr != config.Addr {
		t.Errorf("Expected addr %q, got %q", config.Addr, storedConfig.Addr)
	}

	if storedConfig.DB != config.DB {
		t.Errorf("Expected db %d, got %d", config.DB, storedConfig.DB)
	}

	if storedConfig.DialTimeout != config.DialTimeout {
		t.Errorf("Expected dial timeout %v, got %v", config.DialTimeout, storedConfig.DialTimeout)
	}
}

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	if container == nil {
		t.Fatal("NewContainerWithDefaults() returned nil container")
	}
	defer container.Close()

	// Verify that default configuration is used
	config := container.Config()
	defaultConfig := store.DefaultConfig()

	if config.Addr != defaultConfig.Addr {
		t.Errorf("Expected default addr %q, got %q", defaultConfig.Addr, config.Addr)
	}

	if config.DialTimeout != defaultConfig.DialTimeout {
		t.Errorf("Expected default dial timeout %v, got %v", defaultConfig.DialTimeout, config.DialTimeout)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	invalidConfig := store.Config{
		Addr: "", // Invalid: must not be empty
		DB:   0,
	}

	_, err := NewContainer(invalidConfig)
	if err == nil {
		t.Error("NewContainer() should fail with invalid config")
	}
}

func TestContainerSingletonBehavior(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}
	defer container.Close()

	// Call getters multiple times to ensure they return the same instances
	store1 := container.Store()
	store2 := container.Store()

	if store1 != store2 {
		t.Error("Store() should return the same instance (singleton behavior)")
	}

	encoder1 := container.Encoder()
	encoder2 := container.Encoder()

	if encoder1 != encoder2 {
		t.Error("Encoder() should return the same instance (singleton behavior)")
	}

	registry1 := container.Registry()
	registry2 := container.Registry()

	if registry1 != registry2 {
		t.Error("Registry() should return the same instance (singleton behavior)")
	}
}

func TestNewContainerWithStore(t *testing.T) {
	s := store.NewMemoryStore()
	container := NewContainerWithStore(s, zaptest.NewLogger(t))

	if container.Store() != s {
		t.Error("Container should hand back the store it was built with")
	}

	if container.Logger() == nil {
		t.Error("Container should have a non-nil logger")
	}

	// Containers built around an existing store carry no connection config
	if container.Config() != (store.Config{}) {
		t.Errorf("Expected zero config, got %+v", container.Config())
	}
}

func TestNewContainerWithStore_NilLogger(t *testing.T) {
	container := NewContainerWithStore(store.NewMemoryStore(), nil)

	if container.Logger() == nil {
		t.Error("Expected a fallback logger when none is provided")
	}
}

func TestContainerClose(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
