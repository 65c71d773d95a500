package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vikasavn/dukaan/internal/gst"
)

func Test_NormalizeState_AliasesAndAbbreviations(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		explanation string
	}{
		{
			name:        "full name passes through lowercased",
			input:       "Maharashtra",
			expected:    "maharashtra",
			explanation: "Canonical names normalize to lowercase",
		},
		{
			name:        "two letter GST code",
			input:       "MH",
			expected:    "maharashtra",
			explanation: "GST state codes map to full names",
		},
		{
			name:        "madhya pradesh abbreviation",
			input:       "MP",
			expected:    "madhya pradesh",
			explanation: "MP and Madhya Pradesh must normalize identically",
		},
		{
			name:        "old name orissa",
			input:       "Orissa",
			expected:    "odisha",
			explanation: "Renamed states map to current names",
		},
		{
			name:        "pondicherry to puducherry",
			input:       "Pondicherry",
			expected:    "puducherry",
			explanation: "Colloquial names map to official names",
		},
		{
			name:        "jammu and kashmir ampersand form",
			input:       "J&K",
			expected:    "jammu and kashmir",
			explanation: "Punctuated abbreviations are in the alias table",
		},
		{
			name:        "extra whitespace collapsed",
			input:       "  tamil   nadu  ",
			expected:    "tamil nadu",
			explanation: "Leading, trailing, and inner whitespace is cleaned before lookup",
		},
		{
			name:        "joined tamilnadu",
			input:       "TamilNadu",
			expected:    "tamil nadu",
			explanation: "Common joined spelling is aliased",
		},
		{
			name:        "new delhi",
			input:       "New Delhi",
			expected:    "delhi",
			explanation: "City-qualified capital maps to delhi",
		},
		{
			name:        "unknown value returned cleaned",
			input:       "  Atlantis  ",
			expected:    "atlantis",
			explanation: "Unmapped input passes through lowercased and trimmed, no error",
		},
		{
			name:        "empty input",
			input:       "",
			expected:    "",
			explanation: "Empty stays empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gst.NormalizeState(tt.input), tt.explanation)
		})
	}
}

func Test_NormalizeState_Idempotent(t *testing.T) {
	inputs := []string{"MP", "Madhya Pradesh", "orissa", "  New   Delhi ", "UK", "somewhere else", ""}

	for _, in := range inputs {
		once := gst.NormalizeState(in)
		twice := gst.NormalizeState(once)
		assert.Equal(t, once, twice, "normalize(normalize(%q)) must equal normalize(%q)", in, in)
	}

	assert.Equal(t, gst.NormalizeState("MP"), gst.NormalizeState("Madhya Pradesh"))
}

func Test_InterState(t *testing.T) {
	tests := []struct {
		name          string
		customerState string
		companyState  string
		expected      bool
		explanation   string
	}{
		{
			name:          "same state different spellings",
			customerState: "MP",
			companyState:  "Madhya Pradesh",
			expected:      false,
			explanation:   "Abbreviation and full name are the same jurisdiction",
		},
		{
			name:          "different states",
			customerState: "Karnataka",
			companyState:  "Maharashtra",
			expected:      true,
			explanation:   "Cross-state sale charges IGST",
		},
		{
			name:          "missing customer state",
			customerState: "",
			companyState:  "Delhi",
			expected:      false,
			explanation:   "Unknown jurisdiction defaults to intra-state",
		},
		{
			name:          "missing company state",
			customerState: "Delhi",
			companyState:  "",
			expected:      false,
			explanation:   "Unknown jurisdiction defaults to intra-state",
		},
		{
			name:          "renamed state matches old name",
			customerState: "Orissa",
			companyState:  "Odisha",
			expected:      false,
			explanation:   "Old and new names normalize to the same key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gst.InterState(tt.customerState, tt.companyState), tt.explanation)
		})
	}
}
