package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"gottl/internal/config"
	"gottl/internal/logging"
)

var errUsage = errors.New("usage")

// loadConfig reads --config when given and applies flag overrides on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: %w", errUsage, err)
		}
		cfg = loaded
	}

	if cmd.IsSet("ttl") {
		cfg.Cache.TTL = cmd.Duration("ttl")
	}
	if cmd.IsSet("sweep-interval") {
		cfg.Cache.SweepInterval = cmd.Duration("sweep-interval")
	}
	if cmd.Bool("no-sweep") {
		cfg.Cache.AutoClear = false
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, nil
}

// setup resolves configuration and the logger shared by every command.
func setup(cmd *cli.Command) (config.Config, *slog.Logger, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger, cleanup, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, logger, cleanup, nil
}
