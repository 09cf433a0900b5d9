// Package logging provides the levelled, field-carrying logger shared by the
// resolver host, the dispatcher handlers and the command line tool.
//
// Loggers are thin wrappers over log/slog. Lines look like
//
//	2026-01-02T15:04:05.000 [DEBUG] funcobj: no selection {component=textobject, miss=no function}
//
// with fields sorted by key.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a slog level; only the four named ones are used.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel maps a level name to a Level. Unknown names give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

type Config struct {
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is written before every message.
	Prefix string
}

// Logger writes formatted messages with the fields it was derived with.
// A nil *Logger drops everything.
type Logger struct {
	s     *slog.Logger
	level *slog.LevelVar
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := new(slog.LevelVar)
	level.Set(cfg.Level)
	return &Logger{
		s:     slog.New(newLineHandler(cfg.Output, level, cfg.Prefix)),
		level: level,
	}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return &Logger{s: slog.New(slog.DiscardHandler), level: new(slog.LevelVar)}
}

// Slog exposes the underlying slog logger.
func (l *Logger) Slog() *slog.Logger { return l.s }

func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{s: l.s.With(key, value), level: l.level}
}

// WithFields returns a child logger carrying fields. Children share the
// parent's output and level.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{s: l.s.With(args...), level: l.level}
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) Level() Level { return l.level.Level() }

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(level Level) { l.level.Set(level) }

func (l *Logger) Debug(msg string, args ...any) { l.logf(LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.logf(LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.logf(LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.logf(LevelError, msg, args) }

// logf formats msg with args only when the level is enabled.
func (l *Logger) logf(level Level, msg string, args []any) {
	if l == nil {
		return
	}
	ctx := context.Background()
	if !l.s.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.s.Log(ctx, level, msg)
}
