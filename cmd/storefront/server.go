package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/storekit/storefront/internal/config"
	"github.com/storekit/storefront/internal/shell/api"
	"github.com/storekit/storefront/internal/shell/reports"
	"github.com/storekit/storefront/internal/shell/store"
	"github.com/storekit/storefront/internal/shell/tasks"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitQueueError      = 3
	ExitHTTPServerError = 4
)

// =============================================================================
// Server
// =============================================================================

// Server represents the storefront API server.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	store      store.Store
	queue      *tasks.Client
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	// Connect to database
	s, err := store.NewPostgresStore(cfg.Database.DSN)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}

	// Connect to the task queue
	queue := tasks.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := queue.Ping(); err != nil {
		s.Close()
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitQueueError,
		}
	}

	// Create the report archive directory
	archive, err := reports.NewArchive(cfg.Reports.Dir)
	if err != nil {
		s.Close()
		queue.Close()
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitConfigError,
		}
	}

	handler := api.NewHandler(s, queue, archive, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      s,
		queue:      queue,
		logger:     logger,
	}, nil
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting",
			"address", s.config.Server.Address(),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		s.logger.Error("http server error", "error", err)
		s.Shutdown(context.Background())
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http server shutdown error", "error", err)
	}

	if err := s.queue.Close(); err != nil {
		s.logger.Error("task queue close error", "error", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("store close error", "error", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError wraps errors with operation context and exit code.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
