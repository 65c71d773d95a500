package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewLogger_ProdEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "prod", "info")

	logger.Info("server started", "port", 3000)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record),
		"production logs must be machine-parseable JSON")
	assert.Equal(t, "server started", record["msg"])
	assert.EqualValues(t, 3000, record["port"])
}

func Test_NewLogger_DevEmitsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dev", "info")

	logger.Info("server started")

	assert.True(t, strings.Contains(buf.String(), "msg=\"server started\""),
		"dev logs use the text handler")
}

func Test_NewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		wantDebug   bool
		explanation string
	}{
		{
			name:        "debug level passes debug records",
			level:       "debug",
			wantDebug:   true,
			explanation: "debug level must not filter anything",
		},
		{
			name:        "warn level drops debug records",
			level:       "warn",
			wantDebug:   false,
			explanation: "records below the configured level are dropped",
		},
		{
			name:        "unknown level defaults to info",
			level:       "verbose",
			wantDebug:   false,
			explanation: "an unrecognized level falls back to info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "dev", tt.level)

			logger.Debug("cache miss")

			if tt.wantDebug {
				assert.NotEmpty(t, buf.String(), tt.explanation)
			} else {
				assert.Empty(t, buf.String(), tt.explanation)
			}
		})
	}
}
