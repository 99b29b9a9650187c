// Package logger provides the structured logger used for --debug output.
package logger

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging surface used across the application.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Config controls where and how much is logged.
type Config struct {
	Output io.Writer
	Debug  bool
	JSON   bool
}

// New creates a logger. Without Debug only errors are written.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	level := charmlog.ErrorLevel
	if cfg.Debug {
		level = charmlog.DebugLevel
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "taskboard",
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return &charmLogger{l: l}
}

// charmLogger adapts *charmlog.Logger, whose methods take an untyped message.
type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

// Discard returns a logger that drops everything.
func Discard() Logger {
	return New(Config{Output: io.Discard})
}

type ctxKey struct{}

// ContextWithLogger returns a copy of ctx carrying l.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return Discard()
}
