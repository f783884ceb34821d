package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a slog logger writing JSON to stdout, tagged with the service name.
func NewLogger(service string) *slog.Logger {
	return NewLoggerWithLevel(service, "")
}

// NewLoggerWithLevel is NewLogger with an explicit minimum level (debug, info, warn, error).
// Unknown or empty values fall back to info.
func NewLoggerWithLevel(service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	})
	return slog.New(handler).With(slog.String("service", service))
}

// ParseLevel maps a textual level onto slog.Level.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// WithRequestID attaches a request identifier to the logger context.
func WithRequestID(_ context.Context, logger *slog.Logger, requestID string) *slog.Logger {
	if requestID == "" {
		return logger
	}
	return logger.With(slog.String("requestId", requestID))
}
