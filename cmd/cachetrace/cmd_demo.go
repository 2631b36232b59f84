package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/pkg/di"
	"github.com/goliatone/go-cache-trace/store"
	"github.com/goliatone/go-cache-trace/tracecache"
)

var demoMemory bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canonical store, read, and replay scenario",
	Long: `Run a short scenario against the cache facade: store three values, read
them back through typed getters, then replay the recorded history as a call
transcript.

By default the demo runs against an in-process store, so it works without a
Redis server. Pass --memory=false to run against the configured Redis
database instead; cache initialization flushes that database.`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoMemory, "memory", true, "use an in-process store instead of Redis")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	container, err := demoContainer(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := runScenario(cmd.Context(), container); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func demoContainer(logger *zap.Logger) (*di.Container, error) {
	if demoMemory {
		return di.NewContainerWithStore(store.NewMemoryStore(), logger), nil
	}
	return newContainer(logger)
}

func runScenario(ctx context.Context, container *di.Container) error {
	cache, err := container.NewCache(ctx)
	if err != nil {
		return err
	}

	textID, err := cache.StoreString(ctx, "hello world")
	if err != nil {
		return err
	}
	numID, err := cache.StoreInt(ctx, 42)
	if err != nil {
		return err
	}
	rawID, err := cache.Store(ctx, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	if err != nil {
		return err
	}

	text, _, err := cache.GetString(ctx, textID)
	if err != nil {
		return err
	}
	n, _, err := cache.GetInt(ctx, numID)
	if err != nil {
		return err
	}
	raw, _, err := cache.Get(ctx, rawID)
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %q\n", textID, text)
	fmt.Printf("%s -> %d\n", numID, n)
	fmt.Printf("%s -> %d bytes\n", rawID, len(raw))

	count, err := cache.StoreCallCount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nstore calls counted: %d\n\n", count)

	return container.NewReplayer().Replay(ctx, tracecache.StoreIdentity, os.Stdout)
}
