package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: "info", Format: "json"})
	log.Debug("hidden")
	log.Info("request created", "confirmation", "LUX-1A2B3C4D")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request created", line["msg"])
	assert.Equal(t, "LUX-1A2B3C4D", line["confirmation"])
}

func TestNewWithWriter_Tint(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: "debug", NoColor: true})
	log.Debug("booting", "port", "8080")
	assert.Contains(t, buf.String(), "booting")
	assert.Contains(t, buf.String(), "port=8080")
}
