package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// =============================================================================
// Enqueuer Interface
// =============================================================================

// ErrAlreadyQueued is returned when a task for the same report name is
// already waiting in the queue.
var ErrAlreadyQueued = errors.New("report task already queued")

// Enqueuer abstracts task submission so handlers can be tested without Redis.
type Enqueuer interface {
	EnqueueSummaryReport(ctx context.Context, name string, firstDate, secondDate time.Time) error
	Ping() error
	Close() error
}

// =============================================================================
// Client
// =============================================================================

// Client enqueues tasks onto the Redis queue.
type Client struct {
	client *asynq.Client
}

// NewClient creates a queue client for the given Redis connection.
func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueSummaryReport submits a summary report task. The task ID is the
// report name, so enqueueing the same name twice while the first task is
// still pending returns ErrAlreadyQueued.
func (c *Client) EnqueueSummaryReport(ctx context.Context, name string, firstDate, secondDate time.Time) error {
	task, err := NewSummaryReportTask(name, firstDate, secondDate)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueReports),
		asynq.TaskID(name),
		asynq.MaxRetry(5),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return fmt.Errorf("%w: %s", ErrAlreadyQueued, name)
		}
		return fmt.Errorf("failed to enqueue report task %s: %w", name, err)
	}

	return nil
}

// Ping checks the Redis connection.
func (c *Client) Ping() error {
	return c.client.Ping()
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
