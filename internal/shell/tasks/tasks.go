// Package tasks wires report generation onto a Redis-backed task queue.
//
// The API server enqueues summary report tasks; the worker binary consumes
// them, aggregates order activity and writes the CSV into the archive.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// =============================================================================
// Task Types
// =============================================================================

const (
	// TypeSummaryReport identifies the sales summary report task.
	TypeSummaryReport = "report:summary"

	// QueueReports is the queue report tasks are routed to.
	QueueReports = "reports"
)

// SummaryReportPayload is the JSON body of a summary report task.
type SummaryReportPayload struct {
	Name       string    `json:"name"`
	FirstDate  time.Time `json:"first_date"`
	SecondDate time.Time `json:"second_date"`
}

// NewSummaryReportTask builds the asynq task for a report request.
func NewSummaryReportTask(name string, firstDate, secondDate time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(SummaryReportPayload{
		Name:       name,
		FirstDate:  firstDate,
		SecondDate: secondDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report payload: %w", err)
	}
	return asynq.NewTask(TypeSummaryReport, payload), nil
}
