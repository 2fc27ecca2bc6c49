package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"gottl/internal/cache"
)

// Format is the encoding of a configuration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the top-level configuration document.
type Config struct {
	Cache CacheConfig `koanf:"cache"`
	Log   LogConfig   `koanf:"log"`
}

// CacheConfig mirrors cache.Config in file form.
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	AutoClear     bool          `koanf:"auto_clear"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LogConfig selects the log sink handed to the cache.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File enables size-based rotation when set; empty means stderr.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			TTL:           5 * time.Second,
			AutoClear:     true,
			SweepInterval: cache.DefaultSweepInterval,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     LogFormatText,
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads path, detecting the format from its extension.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes parses data in the given format. Empty data yields Default.
func LoadBytes(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg := Default()
	if len(data) > 0 {
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cache.New and the logger would otherwise reject later.
func (c Config) Validate() error {
	if err := c.CacheConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q must be %q or %q", ErrInvalid, c.Log.Format, LogFormatText, LogFormatJSON)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalid)
	}
	return nil
}

// CacheConfig converts the file form into cache.Config.
func (c Config) CacheConfig() cache.Config {
	return cache.Config{
		TTL:           c.Cache.TTL,
		DisableSweep:  !c.Cache.AutoClear,
		SweepInterval: c.Cache.SweepInterval,
	}
}

// SlogLevel parses Level ("debug", "INFO", "warn+1", ...).
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
