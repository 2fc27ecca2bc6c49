package cache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "gottl/internal/cache"

	metricHits        = "gottl.cache.hits"
	metricMisses      = "gottl.cache.misses"
	metricExpirations = "gottl.cache.expirations"
	metricSweeps      = "gottl.cache.sweeps"

	reasonLazy  = "lazy"
	reasonSweep = "sweep"
)

// metrics records cache activity. With the default global provider and no
// SDK installed every instrument is a no-op.
type metrics struct {
	hits        metric.Int64Counter
	misses      metric.Int64Counter
	expirations metric.Int64Counter
	sweeps      metric.Int64Counter

	lazyAttrs  metric.AddOption
	sweepAttrs metric.AddOption
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	hits, err := meter.Int64Counter(metricHits,
		metric.WithDescription("Get calls that returned a live entry"))
	if err != nil {
		return nil, fmt.Errorf("cache: create %s counter: %w", metricHits, err)
	}
	misses, err := meter.Int64Counter(metricMisses,
		metric.WithDescription("Get calls that found no live entry"))
	if err != nil {
		return nil, fmt.Errorf("cache: create %s counter: %w", metricMisses, err)
	}
	expirations, err := meter.Int64Counter(metricExpirations,
		metric.WithDescription("Expired entries removed from the table"))
	if err != nil {
		return nil, fmt.Errorf("cache: create %s counter: %w", metricExpirations, err)
	}
	sweeps, err := meter.Int64Counter(metricSweeps,
		metric.WithDescription("Sweep passes run over the table"))
	if err != nil {
		return nil, fmt.Errorf("cache: create %s counter: %w", metricSweeps, err)
	}

	return &metrics{
		hits:        hits,
		misses:      misses,
		expirations: expirations,
		sweeps:      sweeps,
		lazyAttrs:   metric.WithAttributes(attribute.String("reason", reasonLazy)),
		sweepAttrs:  metric.WithAttributes(attribute.String("reason", reasonSweep)),
	}, nil
}

func (m *metrics) hit() {
	m.hits.Add(context.Background(), 1)
}

func (m *metrics) miss() {
	m.misses.Add(context.Background(), 1)
}

func (m *metrics) lazyExpired() {
	m.expirations.Add(context.Background(), 1, m.lazyAttrs)
}

func (m *metrics) swept(removed int) {
	ctx := context.Background()
	m.sweeps.Add(ctx, 1)
	if removed > 0 {
		m.expirations.Add(ctx, int64(removed), m.sweepAttrs)
	}
}
