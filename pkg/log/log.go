// Package log provides structured logging for go-kzg-4844. The library
// is silent in its hot paths; only the trusted-setup loader reports
// progress. The surface is sized accordingly: Module hands a subsystem
// a logger whose records carry a "module" attribute, and SetHandler
// redirects every subsequently created logger, which is all a host
// application or test needs to capture the output.
package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// base is the slog.Logger behind every Logger created by Module. It is
// swapped atomically so SetHandler is safe against concurrent Module
// calls.
var base atomic.Pointer[slog.Logger]

func init() {
	base.Store(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// SetHandler replaces the handler behind every logger subsequently
// created by Module. Loggers already in hand keep their old handler.
// A nil handler is ignored.
func SetHandler(h slog.Handler) {
	if h != nil {
		base.Store(slog.New(h))
	}
}

// Module returns a Logger for one library subsystem; every record it
// emits carries a "module" attribute naming that subsystem.
func Module(name string) *Logger {
	return &Logger{s: base.Load().With("module", name)}
}

// Logger emits structured records for a single subsystem.
type Logger struct {
	s *slog.Logger
}

// With returns a child logger carrying additional key-value context on
// every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{s: l.s.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.s.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.s.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.s.Error(msg, args...) }
