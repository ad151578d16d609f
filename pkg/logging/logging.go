// Package logging constructs the slog loggers used across recmock.
//
// The library is silent by default; callers opt in to debug tracing of
// recording sessions by passing a logger built here (or any *slog.Logger)
// to observe.WithLogger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger construction options.
type Config struct {
	// Level is the minimum level to emit.
	Level slog.Level

	// Format selects text or JSON output.
	Format Format

	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		h = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(h)
}

// Debug builds a text logger at debug level, the usual choice when tracing
// a recording session in a failing test.
func Debug() *slog.Logger {
	return New(Config{Level: slog.LevelDebug})
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
