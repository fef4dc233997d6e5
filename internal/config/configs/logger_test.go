package configs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warning": slog.LevelWarn,
		"err": slog.LevelError, "verbose": slog.LevelInfo,
	} {
		assert.Equal(t, want, Logger{Level: in}.SlogLevel(), in)
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Level: "warn", Format: "json"}.New(&buf)
	l.Info("dropped")
	l.Warn("kept", slog.String("kind", "donate"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "donate", rec["kind"])
}
