package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	base *slog.Logger
}

// NewLogger writes text records to stderr at the given level.
func NewLogger(level string) Logger {
	return New(os.Stderr, level, "text")
}

func New(output io.Writer, level, format string) Logger {
	options := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch normalize(format) {
	case "json":
		handler = slog.NewJSONHandler(output, options)
	default:
		handler = slog.NewTextHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

// FromSlog adapts an existing slog logger.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{base: l}
}

func NewNoopLogger() Logger {
	return &slogLogger{base: slog.New(discardHandler{})}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.base.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.base.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.base.Error(msg, args...) }

func (l *slogLogger) Debugf(format string, args ...any) {
	if l.base.Enabled(context.Background(), slog.LevelDebug) {
		l.base.Debug(fmt.Sprintf(format, args...))
	}
}

func (l *slogLogger) Infof(format string, args ...any) {
	l.base.Info(fmt.Sprintf(format, args...))
}

func (l *slogLogger) Errorf(format string, args ...any) {
	l.base.Error(fmt.Sprintf(format, args...))
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

// Slog exposes the underlying logger for libraries that take *slog.Logger.
func (l *slogLogger) Slog() *slog.Logger {
	return l.base
}

func ParseLevel(value string) slog.Level {
	switch normalize(value) {
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

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
