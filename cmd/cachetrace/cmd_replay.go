package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	replayPage     int
	replayPageSize int
)

var replayCmd = &cobra.Command{
	Use:   "replay <identity>",
	Short: "Render the recorded call transcript for an identity",
	Long: `Render the call transcript recorded in the configured Redis database for
one operation identity.

The full history is rendered by default. Pass --page to render a single page
instead.

Examples:
  cachetrace replay store
  cachetrace replay greet --page 2 --page-size 10`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replayPage, "page", 0, "page number to render (0 renders the full history)")
	replayCmd.Flags().IntVar(&replayPageSize, "page-size", 25, "calls per page when paging")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	container, err := newContainer(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	replayer := container.NewReplayer()
	ctx := cmd.Context()

	if replayPage > 0 {
		err = replayer.ReplayPage(ctx, args[0], replayPage, replayPageSize, os.Stdout)
	} else {
		err = replayer.Replay(ctx, args[0], os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
