// Package logger holds the process logger. Output goes to stderr so that
// generated source written to stdout stays clean.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var std atomic.Pointer[slog.Logger]

func init() {
	std.Store(New(slog.LevelInfo, "text", os.Stderr))
}

// New creates a logger tagged with the tool name.
// format is "text" or "json".
func New(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "scorergen")
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// SetDefault replaces the process logger.
func SetDefault(l *slog.Logger) {
	std.Store(l)
}

func Default() *slog.Logger {
	return std.Load()
}

func Debug(msg string, args ...any) { std.Load().Debug(msg, args...) }
func Info(msg string, args ...any)  { std.Load().Info(msg, args...) }
func Warn(msg string, args ...any)  { std.Load().Warn(msg, args...) }
func Error(msg string, args ...any) { std.Load().Error(msg, args...) }

type key struct{}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// FromContext returns the logger stored in ctx, or the process logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return l
	}
	return Default()
}
