package stabgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with simulator-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithQubits adds a qubits field to the logger.
func (l *Logger) WithQubits(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("qubits", n),
	}
}

// LogRun logs a circuit run.
func (l *Logger) LogRun(ctx context.Context, stats RunStats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"applied", stats.Instructions,
			"duration", stats.Duration,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"applied", stats.Instructions,
		"flips", stats.Flips+stats.AutoFlips,
		"transposes", stats.Transposes,
		"duration", stats.Duration,
	)
}

// LogTranspose logs physical transposes triggered by an operation.
func (l *Logger) LogTranspose(ctx context.Context, count int, duration time.Duration) {
	l.DebugContext(ctx, "layout transposed",
		"count", count,
		"duration", duration,
	)
}

// LogSnapshot logs a snapshot save.
func (l *Logger) LogSnapshot(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot saved",
		"name", name,
		"bytes", bytes,
	)
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot restored",
		"name", name,
	)
}
