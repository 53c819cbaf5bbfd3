package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestWriter_Stdout(t *testing.T) {
	assert.Equal(t, os.Stdout, Writer(Options{}))
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")
	opts := Options{Level: "warn", File: path}

	w, ok := Writer(opts).(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, 10, w.MaxSize)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(opts.Level)}))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	logger.Warn("Theme changed", "theme", "dark")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Theme changed"`)
	assert.Contains(t, string(data), `"theme":"dark"`)
}
