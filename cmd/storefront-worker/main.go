// Command storefront-worker consumes report tasks from Redis and writes
// summary CSV files to the report archive.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/storekit/storefront/internal/config"
	"github.com/storekit/storefront/internal/shell/reports"
	"github.com/storekit/storefront/internal/shell/store"
	"github.com/storekit/storefront/internal/shell/tasks"
)

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitDatabaseError = 2
	ExitQueueError    = 3
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("storefront-worker %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Setup logger
	logger := config.SetupLogger(cfg)
	logger.Info("starting storefront-worker",
		"version", Version,
		"config", *configPath,
	)

	// Connect to database
	s, err := store.NewPostgresStore(cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return ExitDatabaseError
	}
	defer s.Close()

	// Create the report archive directory
	archive, err := reports.NewArchive(cfg.Reports.Dir)
	if err != nil {
		logger.Error("failed to create report archive", "error", err)
		return ExitConfigError
	}

	worker := tasks.NewWorker(tasks.WorkerConfig{
		Redis: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Store:       s,
		Archive:     archive,
		Concurrency: cfg.Reports.Concurrency,
		Logger:      logger,
	})

	if err := worker.Start(); err != nil {
		logger.Error("failed to start worker", "error", err)
		return ExitQueueError
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	worker.Stop()
	logger.Info("worker stopped")
	return ExitSuccess
}
