package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/metric"
)

// DefaultSweepInterval is used when Config.SweepInterval is zero.
const DefaultSweepInterval = 10 * time.Minute

// Config controls expiry and maintenance behavior.
//
// The zero value is not usable: TTL must be set.
type Config struct {
	// TTL is how long an entry stays valid after Set. Must be > 0.
	TTL time.Duration

	// DisableSweep turns off the background sweeper. Expiry is then enforced
	// only by Get.
	DisableSweep bool

	// SweepInterval is the period between sweep passes.
	// 0 means DefaultSweepInterval; negative values are rejected.
	SweepInterval time.Duration
}

// Validate reports whether cfg can construct a cache. New calls it.
func (cfg Config) Validate() error {
	if cfg.TTL <= 0 {
		return ErrInvalidTTL
	}
	if cfg.SweepInterval < 0 {
		return ErrInvalidSweepInterval
	}
	return nil
}

func (cfg Config) sweepInterval() time.Duration {
	if cfg.SweepInterval == 0 {
		return DefaultSweepInterval
	}
	return cfg.SweepInterval
}

// Logger receives informational events from the cache.
//
// *slog.Logger satisfies it. Calls are never made while the table lock is
// held, but implementations should still return quickly.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
}

// Option configures optional collaborators of a Cache.
type Option func(*options)

type options struct {
	clock         clockwork.Clock
	logger        Logger
	meterProvider metric.MeterProvider
}

// WithClock sets the time source used for timestamps and the sweep ticker.
// A nil clock is ignored.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the sink for cache events. A nil logger discards them.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMeterProvider sets the provider for cache metrics.
// A nil provider is ignored and the global one is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}
