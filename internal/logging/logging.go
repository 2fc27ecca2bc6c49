// Package logging builds the *slog.Logger the CLI hands to the cache.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"gottl/internal/config"
)

// New returns a logger for cfg writing to w, or to a rotating file when
// cfg.File is set. The returned cleanup closes the file and must be called
// on shutdown; it is a no-op for w.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, fmt.Errorf("logging: level %q: %w", cfg.Level, err)
	}

	out := w
	cleanup := func() error { return nil }
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		out = rotator
		cleanup = rotator.Close
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	case config.LogFormatText, "":
		handler = slog.NewTextHandler(out, opts)
	default:
		_ = cleanup()
		return nil, nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	return slog.New(handler).With(slog.String("component", "gottl")), cleanup, nil
}
