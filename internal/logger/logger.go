// Package logger provides a context-aware structured logger built on log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Level is the minimum severity a Logger emits.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LoggerInterface is what modules depend on.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) LoggerInterface
	Slog() *slog.Logger
}

// AttrFunc contributes extra attributes to every record, e.g. trace ids.
type AttrFunc func(ctx context.Context) []any

// Logger wraps slog.Logger with context-first methods.
type Logger struct {
	log   *slog.Logger
	attrs AttrFunc
}

// New creates a Logger writing text records to w.
func New(w io.Writer, level Level, service string, attrs AttrFunc) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(handler)
	if service != "" {
		l = l.With("service", service)
	}
	return &Logger{log: l, attrs: attrs}
}

// NewDiscard returns a Logger that drops everything. Used by tests and TUI mode.
func NewDiscard() *Logger {
	return New(io.Discard, LevelError, "", nil)
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

// With returns a child logger carrying args on every record.
func (l *Logger) With(args ...any) LoggerInterface {
	return &Logger{log: l.log.With(args...), attrs: l.attrs}
}

// Slog exposes the underlying slog.Logger for code that takes one directly.
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.log.Enabled(ctx, level) {
		return
	}
	if l.attrs != nil {
		args = append(args, l.attrs(ctx)...)
	}
	l.log.Log(ctx, level, msg, args...)
}
