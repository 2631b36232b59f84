package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cache-trace/webcache"
)

var fetchTTL time.Duration

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a page through the counting web cache",
	Long: `Fetch a URL through the web cache and print the page body.

Every invocation increments the URL's access counter, cached or not. The
body is served from the configured Redis database while the cache entry
lives, and refetched after it expires.`,
	Args: cobra.ExactArgs(1),
	Run:  runFetch,
}

var countCmd = &cobra.Command{
	Use:   "count <url>",
	Short: "Show how many times a URL has been fetched",
	Args:  cobra.ExactArgs(1),
	Run:   runCount,
}

func init() {
	fetchCmd.Flags().DurationVar(&fetchTTL, "ttl", 10*time.Second, "how long fetched pages stay cached")
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(countCmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	container, err := newContainer(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	client, err := container.NewWebClient(webcache.Config{TTL: fetchTTL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	body, err := client.Fetch(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(body)
}

func runCount(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	container, err := newContainer(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	client, err := container.NewWebClient(webcache.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count, err := client.AccessCount(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s was fetched %d times\n", args[0], count)
}
