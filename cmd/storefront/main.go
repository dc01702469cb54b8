package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/storekit/storefront/internal/config"
	"github.com/storekit/storefront/internal/core/compose"
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
	verifyStack := flag.String("verify-stack", "", "Validate a Docker Compose file for the dev stack and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("storefront %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Handle stack verification flag
	if *verifyStack != "" {
		return runVerifyStack(*verifyStack)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Setup logger
	logger := config.SetupLogger(cfg)
	logger.Info("starting storefront",
		"version", Version,
		"config", *configPath,
	)

	// Create server
	server, err := NewServer(cfg, logger)
	if err != nil {
		if sErr, ok := err.(*ServerError); ok {
			logger.Error("failed to create server",
				"error", sErr.Err,
				"operation", sErr.Op,
			)
			return sErr.ExitCode
		}
		logger.Error("failed to create server", "error", err)
		return ExitConfigError
	}

	// Start server
	ctx := context.Background()
	if err := server.Start(ctx); err != nil {
		if sErr, ok := err.(*ServerError); ok {
			logger.Error("server error",
				"error", sErr.Err,
				"operation", sErr.Op,
			)
			return sErr.ExitCode
		}
		logger.Error("server error", "error", err)
		return ExitConfigError
	}

	return ExitSuccess
}

// runVerifyStack parses a compose file and reports every dev stack violation.
func runVerifyStack(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return ExitConfigError
	}

	stack, err := compose.ParseStack(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", path, err)
		return ExitConfigError
	}

	violations := compose.ValidateDevStack(stack)
	if len(violations) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d violation(s)\n", path, len(violations))
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  - %v\n", v)
		}
		return ExitConfigError
	}

	fmt.Printf("%s: ok (%d services, %d volumes)\n", path, len(stack.Services), len(stack.Volumes))
	return ExitSuccess
}
