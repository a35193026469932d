package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEntry(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("web", "info", &buf)

	log.Error("req-1", "checkout", "order insert failed", errors.New("disk full"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "web", entry["service"])
	assert.Equal(t, "checkout", entry["action"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "order insert failed", entry["message"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("web", "warn", &buf)

	log.Info("", "startup", "hidden")
	assert.Zero(t, buf.Len())

	log.Warn("", "startup", "shown")
	assert.Contains(t, buf.String(), "shown")
}
