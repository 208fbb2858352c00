package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog logger writing to w. format is "json" or "text" (anything else).
func New(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs the process-wide default logger on stdout.
func Setup(format string) *slog.Logger {
	logger := New(os.Stdout, format)
	slog.SetDefault(logger)
	return logger
}
