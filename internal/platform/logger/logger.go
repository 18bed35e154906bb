// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/shelf/internal/config"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration and sets it as the default slog logger.
//
// Logs go to stderr so that console output on stdout stays machine readable.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a logger writing to out with the level and format from cfg.
// An unknown level falls back to info, an unknown format to text.
func New(out io.Writer, cfg config.ServerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a configured level name to a slog.Level (case-insensitive).
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
