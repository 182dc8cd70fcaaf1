// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"smart-bulb-backend/internal/config"
)

// ServiceName is attached to every record.
const ServiceName = "smart-bulb-backend"

// New creates a slog.Logger writing to w.
// Format "text" selects the human-readable handler; anything else is JSON.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", ServiceName))
}

// ParseLevel converts a string log level to slog.Level.
// Supported levels: debug, info, warn, error. Defaults to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
