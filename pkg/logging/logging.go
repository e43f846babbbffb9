// Package logging configures structured logging for the server.
//
// Usage:
//
//	logging.Setup("info", "text")   // colored tint output on stderr
//	logging.Setup("debug", "json")  // JSON lines on stdout
//
// When level is empty the LOG_LEVEL environment variable is consulted:
// debug, info, warn, error (default: info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger for the given level and format.
// format is "json" or anything else for colored text.
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, os.Stdout, ParseLevel(level), format))
}

// New builds a logger without installing it. Text output goes to
// textOut, JSON output to jsonOut.
func New(textOut, jsonOut io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(textOut, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}

// ParseLevel maps a level name to a slog.Level. An empty name falls back
// to LOG_LEVEL; unknown names mean info.
func ParseLevel(name string) slog.Level {
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}
	switch strings.ToLower(name) {
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
