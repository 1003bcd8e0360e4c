// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at Info level, or Debug when
// debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init installs New(w, debug) as the default logger and returns it.
func Init(w io.Writer, debug bool) *slog.Logger {
	logger := New(w, debug)
	slog.SetDefault(logger)
	return logger
}
