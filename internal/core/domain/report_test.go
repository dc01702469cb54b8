package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryReport_Success(t *testing.T) {
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 1, 0)

	report, err := NewSummaryReport("march", first, second, "/var/reports/march.csv")
	require.NoError(t, err)

	assert.Equal(t, "march", report.Name)
	assert.Equal(t, first, report.FirstDate)
	assert.Equal(t, second, report.SecondDate)
	assert.Equal(t, "/var/reports/march.csv", report.FilePath)
}

func TestNewSummaryReport_Validation(t *testing.T) {
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewSummaryReport("", first, first, "p")
	assert.ErrorIs(t, err, ErrEmptyReportName)

	_, err = NewSummaryReport(strings.Repeat("x", 256), first, first, "p")
	assert.ErrorIs(t, err, ErrReportNameTooLong)

	_, err = NewSummaryReport("march", first.AddDate(0, 0, 1), first, "p")
	assert.ErrorIs(t, err, ErrInvalidReportRange)
}

func TestGenerateReportName(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	name := GenerateReportName(now)
	assert.True(t, strings.HasPrefix(name, "summary-2024-03-15-"), name)
	assert.Len(t, name, len("summary-2024-03-15-")+8)

	// Suffix makes concurrent requests collide-free.
	assert.NotEqual(t, name, GenerateReportName(now))
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Username)

	_, err = NewCustomer("", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewCustomer("alice", "not-an-email", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	// Email is optional.
	_, err = NewCustomer("alice", "", "hash")
	assert.NoError(t, err)
}
