package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "march", "march"},
		{"spaces to hyphens", "March Summary", "march-summary"},
		{"keeps underscores", "summary_2024-03-15_ab", "summary_2024-03-15_ab"},
		{"drops path traversal", "../etc/passwd", "etcpasswd"},
		{"drops dots and slashes", "a.b/c\\d", "abcd"},
		{"uppercase folded", "REPORT-1", "report-1"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SlugifyFileName(tt.input))
		})
	}
}
