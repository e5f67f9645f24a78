// Package logging installs charmbracelet/log as the slog backend.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger with timestamp formatting. Unknown levels fall back
// to info.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           ParseLevel(level),
	})
}

func ParseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Install makes a charm logger the slog default and returns it.
func Install(w io.Writer, level string) *log.Logger {
	logger := New(w, level)
	slog.SetDefault(slog.New(logger))
	return logger
}
