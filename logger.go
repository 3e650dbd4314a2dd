package endfkit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with container-specific context.
// This provides structured diagnostics with consistent field names.
type Logger struct {
	*slog.Logger

	limiter *rate.Limiter // nil means every diagnostic is emitted
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable diagnostics entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRateLimit returns a Logger that emits at most limit failure diagnostics
// per second, with bursts of up to burst lines. Suppressed lines are dropped.
func (l *Logger) WithRateLimit(limit rate.Limit, burst int) *Logger {
	return &Logger{
		Logger:  l.Logger,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// LogFailure logs a failed container operation.
//
// Missing keys are routine and logged at debug level; everything else is a warning.
func (l *Logger) LogFailure(op string, err error, attrs ...any) {
	if l == nil || err == nil {
		return
	}
	if l.limiter != nil && !l.limiter.AllowN(time.Now(), 1) {
		return
	}

	level := slog.LevelWarn
	if errors.Is(err, ErrKeyNotFound) {
		level = slog.LevelDebug
	}

	args := make([]any, 0, len(attrs)+4)
	args = append(args, "op", op, "error", err)
	args = append(args, attrs...)
	l.Log(context.Background(), level, "operation failed", args...)
}

// LogGrowth logs a capacity change.
func (l *Logger) LogGrowth(kind Kind, from, to int, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.LogFailure("grow", err, "container", kind.String(), "from", from, "to", to)
		return
	}
	l.Debug("capacity grown",
		"container", kind.String(),
		"from", from,
		"to", to,
	)
}
