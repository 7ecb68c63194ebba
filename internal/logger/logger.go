// Package logger builds the application's slog logger from configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/smileynet/addressbook/internal/config"
)

func level(option string) (slog.Level, bool) {
	switch strings.ToLower(option) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "", "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// New returns a logger writing to cfg.File, or to stderr when File is empty or "-".
// Unusable settings fall back to defaults and are reported through the returned logger.
// The returned closer releases the log file, if one was opened.
func New(cfg config.Log) (*slog.Logger, io.Closer) {
	var warnings [][]any

	lvl, ok := level(cfg.Level)
	if !ok {
		warnings = append(warnings, []any{"could not parse logger level", "level", cfg.Level})
	}
	opts := slog.HandlerOptions{Level: lvl}

	var (
		output io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	switch cfg.File {
	case "", "-":
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closer
	default:
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			warnings = append(warnings, []any{"could not open logger file", "file", cfg.File, "err", err})
		} else {
			output, closer = f, f
		}
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "", "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		handler = slog.NewTextHandler(output, &opts)
		warnings = append(warnings, []any{"could not parse logger format", "format", cfg.Format})
	}

	l := slog.New(handler)
	for _, w := range warnings {
		l.Warn(w[0].(string), w[1:]...)
	}
	return l, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
