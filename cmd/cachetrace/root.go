package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/pkg/di"
	"github.com/goliatone/go-cache-trace/store"
)

var (
	cfgFile string
	config  *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cachetrace",
	Short: "Trace, count, and replay calls against a shared key-value store",
	Long: `cachetrace wraps operations with counting and recording decorators backed
by a Redis-compatible store, then renders the recorded histories back as call
transcripts. The fetch and count commands exercise the counting web cache
against the same store.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./cachetrace.yaml)")

	// Store flags
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis server address")
	rootCmd.PersistentFlags().Int("db", 0, "Redis database number")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("redis.addr", rootCmd.PersistentFlags().Lookup("redis-addr"))
	_ = viper.BindPFlag("redis.db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	config, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger at the configured level. Logs go to stderr
// so command output stays pipeable.
func newLogger() *zap.Logger {
	zapConfig := zap.NewProductionConfig()

	logLevel := zap.InfoLevel // default
	if config.Logging.Level != "" {
		if err := logLevel.UnmarshalText([]byte(config.Logging.Level)); err != nil {
			log.Printf("Invalid log level %q, using INFO: %v", config.Logging.Level, err)
		}
	}
	zapConfig.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := zapConfig.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

// newContainer wires a Redis-backed container from the loaded config.
func newContainer(logger *zap.Logger) (*di.Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := store.DefaultConfig()
	cfg.Addr = config.Redis.Addr
	cfg.Password = config.Redis.Password
	cfg.DB = config.Redis.DB
	cfg.Logger = logger

	return di.NewContainer(cfg)
}
