package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	t.Run("forwards messages and fields to slog", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger := NewSlog(slog.New(handler))

		logger.Debug("debug message", "key", "value")
		logger.Info("info message", "count", 3)
		logger.Warn("warn message")
		logger.Error("error message", "error", "boom")

		out := buf.String()
		require.Contains(t, out, "debug message")
		require.Contains(t, out, "key=value")
		require.Contains(t, out, "count=3")
		require.Contains(t, out, "warn message")
		require.Contains(t, out, "error=boom")
	})

	t.Run("respects handler level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
		logger := NewSlog(slog.New(handler))

		logger.Debug("hidden")
		logger.Info("also hidden")

		require.Empty(t, buf.String())
	})
}

func TestNopLogger(t *testing.T) {
	// Must not panic with any argument shape.
	logger := NewNop()
	logger.Debug("msg")
	logger.Info("msg", "key", "value")
	logger.Warn("msg", "dangling")
	logger.Error("msg", "a", 1, "b", 2)
}
