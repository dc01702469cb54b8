package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Report Errors
// =============================================================================

var (
	ErrEmptyReportName    = errors.New("report name must not be empty")
	ErrReportNameTooLong  = errors.New("report name exceeds 255 characters")
	ErrInvalidReportRange = errors.New("first_date must not be after second_date")
)

// =============================================================================
// Summary Report
// =============================================================================

// SummaryReport is the record of a generated sales summary. FilePath points
// at the CSV file in the report archive.
type SummaryReport struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FirstDate  time.Time `json:"first_date"`
	SecondDate time.Time `json:"second_date"`
	FilePath   string    `json:"file_path"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSummaryReport creates a report record after validating name and range.
func NewSummaryReport(name string, firstDate, secondDate time.Time, filePath string) (*SummaryReport, error) {
	if name == "" {
		return nil, ErrEmptyReportName
	}
	if len(name) > 255 {
		return nil, ErrReportNameTooLong
	}
	if firstDate.After(secondDate) {
		return nil, ErrInvalidReportRange
	}

	now := time.Now().UTC()
	return &SummaryReport{
		Name:       name,
		FirstDate:  firstDate,
		SecondDate: secondDate,
		FilePath:   filePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GenerateReportName produces a unique name for reports requested without one.
func GenerateReportName(now time.Time) string {
	return fmt.Sprintf("summary-%s-%s", now.UTC().Format("2006-01-02"), uuid.New().String()[:8])
}

// =============================================================================
// Order Activity
// =============================================================================

// OrderActivity is one order line inside a reporting window, joined with the
// product's current pricing and the order's final status.
type OrderActivity struct {
	ProductID      int64       `json:"product_id"`
	ProductName    string      `json:"product_name"`
	Quantity       int         `json:"quantity"`
	UnitPriceCents Cents       `json:"unit_price_cents"`
	UnitCostCents  Cents       `json:"unit_cost_cents"`
	Status         OrderStatus `json:"status"`
}
