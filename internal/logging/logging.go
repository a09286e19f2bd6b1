// Package logging provides the structured logger shared by the colorkit
// command, script runner and MCP server. It is a thin layer over log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging surface the colorkit tooling depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SlogAdapter wraps a *slog.Logger to implement Logger.
//
// Example:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	logger := logging.NewSlogAdapter(slog.New(handler))
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a Logger from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

// Info logs an info-level message with optional key-value pairs.
func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

// Error logs an error-level message with optional key-value pairs.
func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With returns an adapter that adds args to every record.
func (s *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// DefaultLogger logs text at Info level to stderr.
func DefaultLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &SlogAdapter{logger: slog.New(handler)}
}

// DebugLogger logs text at Debug level to stderr, including source location.
func DebugLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})
	return &SlogAdapter{logger: slog.New(handler)}
}

// JSONLogger logs JSON records at level to w. A nil w means stderr.
func JSONLogger(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &SlogAdapter{logger: slog.New(handler)}
}

// NopLogger discards all messages.
func NopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(msg string, args ...any) {}
func (n *nopLogger) Info(msg string, args ...any)  {}
func (n *nopLogger) Warn(msg string, args ...any)  {}
func (n *nopLogger) Error(msg string, args ...any) {}

// ParseLevel maps "debug", "info", "warn"/"warning", "error" and "off" to a
// slog level. "off" sets discard.
func ParseLevel(s string) (level slog.Level, discard bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, false, nil
	case "", "info":
		return slog.LevelInfo, false, nil
	case "warn", "warning":
		return slog.LevelWarn, false, nil
	case "error":
		return slog.LevelError, false, nil
	case "off", "none", "quiet":
		return slog.LevelError, true, nil
	}
	return slog.LevelInfo, false, fmt.Errorf("unknown log level %q", s)
}

// New builds a Logger writing to w in the given format ("text" or "json")
// at the given level. Debug level text output includes source locations.
func New(w io.Writer, level, format string) (Logger, error) {
	lvl, discard, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if discard {
		return NopLogger(), nil
	}
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: lvl == slog.LevelDebug,
		})
		return &SlogAdapter{logger: slog.New(handler)}, nil
	case FormatJSON:
		return JSONLogger(w, lvl), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
