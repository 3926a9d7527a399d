package osmcache

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with osmcache-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithMap adds the name of the map a record belongs to.
func (l *Logger) WithMap(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("map", name),
	}
}

// WithMemory adds the name of the memory a record belongs to.
func (l *Logger) WithMemory(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("memory", name),
	}
}

// WithBackend adds the backend field.
func (l *Logger) WithBackend(b Backend) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", b.String()),
	}
}

// logOpen logs the outcome of Open.
func (l *Logger) logOpen(ctx context.Context, o *options, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"backend", o.backend.String(),
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "cache opened",
		"backend", o.backend.String(),
		"dir", o.dir,
		"segment_size", o.segmentSize,
		"coordinates", o.coordinateStrategy.String(),
		"references", o.referenceStrategy.String(),
		"compact", o.compactCoordinates,
	)
}

// LogClose logs the outcome of Close or Clear.
func (l *Logger) LogClose(ctx context.Context, cleared bool, err error) {
	op := "close"
	if cleared {
		op = "clear"
	}
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, op+" completed")
}
