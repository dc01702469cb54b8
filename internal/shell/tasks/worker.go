package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/storekit/storefront/internal/core/report"
	"github.com/storekit/storefront/internal/shell/reports"
	"github.com/storekit/storefront/internal/shell/store"
)

// =============================================================================
// Worker
// =============================================================================

// Worker consumes report tasks from the queue and generates CSV files.
type Worker struct {
	server  *asynq.Server
	handler *Handler
	logger  *slog.Logger
}

// WorkerConfig holds configuration for the report worker.
type WorkerConfig struct {
	Redis       asynq.RedisClientOpt
	Store       store.Store
	Archive     *reports.Archive
	Concurrency int
	Logger      *slog.Logger
}

// NewWorker creates a worker bound to the reports queue.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	server := asynq.NewServer(cfg.Redis, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueReports: 1,
		},
	})

	return &Worker{
		server: server,
		handler: &Handler{
			store:   cfg.Store,
			archive: cfg.Archive,
			logger:  cfg.Logger,
		},
		logger: cfg.Logger,
	}
}

// Start begins consuming tasks. It does not block.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSummaryReport, w.handler.HandleSummaryReport)

	w.logger.Info("starting report worker", "queue", QueueReports)
	if err := w.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start report worker: %w", err)
	}
	return nil
}

// Stop waits for in-flight tasks and shuts the server down.
func (w *Worker) Stop() {
	w.logger.Info("stopping report worker")
	w.server.Stop()
	w.server.Shutdown()
}

// =============================================================================
// Task Handler
// =============================================================================

// Handler executes report tasks against the store and the archive.
type Handler struct {
	store   store.Store
	archive *reports.Archive
	logger  *slog.Logger
}

// NewHandler creates a task handler. Exposed for tests.
func NewHandler(s store.Store, archive *reports.Archive, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: s, archive: archive, logger: logger}
}

// HandleSummaryReport generates the sales summary CSV for one report request.
// A report row that already exists makes the task succeed without rewriting,
// so retries after a partial failure are safe.
func (h *Handler) HandleSummaryReport(ctx context.Context, t *asynq.Task) error {
	var payload SummaryReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid report payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Name == "" {
		return fmt.Errorf("report payload has no name: %w", asynq.SkipRetry)
	}

	logger := h.logger.With("report", payload.Name)

	if _, err := h.store.GetReportByName(ctx, payload.Name); err == nil {
		logger.Info("report already generated, skipping")
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check existing report: %w", err)
	}

	activity, err := h.store.ListOrderActivity(ctx, payload.FirstDate, payload.SecondDate)
	if err != nil {
		return fmt.Errorf("failed to load order activity: %w", err)
	}

	products, err := h.listAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	rows := report.BuildSummary(products, activity)

	path, err := h.archive.Write(payload.Name, func(w io.Writer) error {
		return report.WriteCSV(w, rows)
	})
	if err != nil {
		if errors.Is(err, reports.ErrInvalidName) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	record, err := domain.NewSummaryReport(payload.Name, payload.FirstDate, payload.SecondDate, path)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.store.CreateReport(ctx, record); err != nil {
		// A concurrent task for the same name won the insert race.
		if errors.Is(err, store.ErrDuplicateName) {
			logger.Info("report row already present")
			return nil
		}
		return fmt.Errorf("failed to persist report: %w", err)
	}

	logger.Info("report generated",
		"rows", len(rows),
		"file", path,
	)
	return nil
}

// listAllProducts pages through the catalog so the summary includes products
// with no activity in the window.
func (h *Handler) listAllProducts(ctx context.Context) ([]domain.Product, error) {
	const pageSize = 1000

	var all []domain.Product
	opts := store.ListOptions{Limit: pageSize}
	for {
		page, err := h.store.ListProducts(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		opts.Offset += pageSize
	}
}
