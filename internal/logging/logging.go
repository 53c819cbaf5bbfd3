package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where logs go and what is kept
type Options struct {
	Level     string
	File      string
	MaxSizeMB int
}

// New builds a JSON logger. With a file set, output goes to a rotating log
// file instead of stdout.
func New(opts Options) *slog.Logger {
	return slog.New(slog.NewJSONHandler(Writer(opts), &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	}))
}

// Writer returns the log destination for opts
func Writer(opts Options) io.Writer {
	if opts.File == "" {
		return os.Stdout
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
