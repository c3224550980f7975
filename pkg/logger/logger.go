// Package logger provides the colored, leveled console logging used
// throughout the SQL safety engine: checker faults, lenient-mode parse
// warnings, policy violations and audit events all log through here
// rather than reaching for fmt.Println.
package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Interface defines the logging methods the engine depends on, so
// callers can substitute their own slog-compatible logger.
type Interface interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Logger wraps an slog.Logger with tint's colored handler.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger at Info level with colored output to stderr.
func New() *Logger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel creates a Logger at the given level with colored
// output to stderr.
func NewWithLevel(level slog.Level) *Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				return tint.Attr(9, a)
			}
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return &Logger{logger: slog.New(handler)}
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// GetSlogLogger returns the underlying slog.Logger, e.g. to install
// it as the process default with slog.SetDefault.
func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// Err builds a structured "error" attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

var defaultLogger = New()

// Default returns the package-level default logger, used by
// components (orchestrator, sqlparser, policy, audit, config) that do
// not take an explicit logger dependency.
func Default() *Logger {
	return defaultLogger
}
