package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vikasavn/dukaan/internal/gst"
)

func Test_AmountInWords(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		expected    string
		explanation string
	}{
		{
			name:     "zero",
			amount:   0,
			expected: "Zero Rupees Only",
		},
		{
			name:     "single digit",
			amount:   7,
			expected: "Seven Rupees Only",
		},
		{
			name:        "teens",
			amount:      14,
			expected:    "Fourteen Rupees Only",
			explanation: "11-19 use their own words",
		},
		{
			name:     "round tens",
			amount:   90,
			expected: "Ninety Rupees Only",
		},
		{
			name:     "hundreds",
			amount:   305,
			expected: "Three Hundred Five Rupees Only",
		},
		{
			name:        "canonical invoice total",
			amount:      1180,
			expected:    "One Thousand One Hundred Eighty Rupees Only",
			explanation: "The worked 18% example total",
		},
		{
			name:        "exact lakh",
			amount:      100000,
			expected:    "One Lakh Rupees Only",
			explanation: "Empty groups below the lakh produce no words",
		},
		{
			name:     "lakhs with remainder",
			amount:   250431,
			expected: "Two Lakh Fifty Thousand Four Hundred Thirty One Rupees Only",
		},
		{
			name:        "crores",
			amount:      12345678,
			expected:    "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only",
			explanation: "Full crore/lakh/thousand grouping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gst.AmountInWords(tt.amount), tt.explanation)
		})
	}
}

func Test_FormatIndianCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "under a thousand", amount: "999.50", expected: "999.50"},
		{name: "thousands", amount: "123456.78", expected: "1,23,456.78"},
		{name: "lakhs", amount: "1234567.89", expected: "12,34,567.89"},
		{name: "crores", amount: "12345678.90", expected: "1,23,45,678.90"},
		{name: "whole number padded", amount: "1000", expected: "1,000.00"},
		{name: "negative", amount: "-123456.78", expected: "-1,23,456.78"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gst.FormatIndianCurrency(dec(tt.amount)), tt.name)
		})
	}
}
