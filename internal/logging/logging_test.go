package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/genstudio-cli/internal/logging"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Info("job submitted", "session", "sess-1", "model", "nova")

	line := buf.String()
	assert.Contains(t, line, "INFO job submitted")
	assert.Contains(t, line, "session=sess-1")
	assert.Contains(t, line, "model=nova")
	assert.NotContains(t, line, ".go:")
}

func TestNewConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Warn("poll failed", "reason", "connection refused")

	assert.Contains(t, buf.String(), `reason="connection refused"`)
}

func TestNewConsoleDebugIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Debug("tick")

	assert.Contains(t, buf.String(), ".go:")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Info("status changed", "status", "COMPLETED")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "status changed", entry["msg"])
	assert.Equal(t, "COMPLETED", entry["status"])
	assert.NotEmpty(t, entry["ts"])
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "yaml"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "yaml"))
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "loud", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNopDiscards(t *testing.T) {
	logger := logging.Nop()
	logger.Error("goes nowhere")
}
