// Package logging builds the slog loggers used by the CLI and sessions.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// levelSilent sits above every standard level.
const levelSilent = slog.Level(100)

// New returns a logger writing to w at level in the given format
// ("text" or "json"; anything else falls back to text).
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == types.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return New(io.Discard, levelSilent, types.LogFormatText)
}

// LevelFromString converts debug, info, warn or error (case-insensitive)
// to a slog.Level. Unrecognized strings yield slog.LevelWarn.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// FromConfig builds a logger from the log settings in cfg.
func FromConfig(w io.Writer, cfg types.Config) *slog.Logger {
	return New(w, LevelFromString(cfg.LogLevel), cfg.LogFormat)
}
