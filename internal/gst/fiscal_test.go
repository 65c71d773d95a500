package gst_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vikasavn/dukaan/internal/gst"
)

func Test_FinancialYear_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		expected    string
		explanation string
	}{
		{
			name:        "last day of financial year",
			date:        time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			expected:    "2024-25",
			explanation: "March 31 still belongs to the previous FY",
		},
		{
			name:        "first day of financial year",
			date:        time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			expected:    "2025-26",
			explanation: "April 1 opens the new FY",
		},
		{
			name:        "mid calendar year",
			date:        time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC),
			expected:    "2024-25",
			explanation: "December sits in the FY that started the same calendar year",
		},
		{
			name:        "early calendar year",
			date:        time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			expected:    "2024-25",
			explanation: "January sits in the FY that started the previous calendar year",
		},
		{
			name:        "century padding",
			date:        time.Date(2099, time.June, 1, 0, 0, 0, 0, time.UTC),
			expected:    "2099-00",
			explanation: "End year keeps its two-digit zero padding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gst.FinancialYear(tt.date), tt.explanation)
		})
	}
}

func Test_FinancialYearRange(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		start time.Time
		end   time.Time
	}{
		{
			name:  "march date",
			date:  time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			start: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "april date",
			date:  time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			start: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := gst.FinancialYearRange(tt.date)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
