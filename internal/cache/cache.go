package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache is a concurrency-safe in-memory key-value cache with a cache-wide TTL.
//
// Ownership model:
// Cache owns its sweeper goroutine. Call Close to stop it.
type Cache[T any] struct {
	mu    sync.Mutex
	items map[string]entry[T]

	ttl     time.Duration
	clock   clockwork.Clock
	logger  Logger
	metrics *metrics

	// Goroutine ownership.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closed bool
}

// New constructs a cache and starts the background sweeper unless
// cfg.DisableSweep is set.
//
// New rejects a non-positive TTL or a negative sweep interval with an error
// matching ErrInvalidConfiguration.
func New[T any](cfg Config, opts ...Option) (*Cache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	m, err := newMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache[T]{
		items:   make(map[string]entry[T]),
		ttl:     cfg.TTL,
		clock:   o.clock,
		logger:  o.logger,
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
	}

	if !cfg.DisableSweep {
		// The ticker is created before New returns so that every tick after
		// construction is observed, including ticks from a fake clock.
		ticker := c.clock.NewTicker(cfg.sweepInterval())
		c.wg.Add(1)
		go c.sweepLoop(ticker)
	}

	return c, nil
}

// TTL returns the lifetime applied to every entry.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

// Set writes or overwrites key.
//
// The entry is stamped with the current time, so overwriting a key restarts
// its TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{value: value, insertedAt: c.clock.Now()}
}

// Get reads key.
//
// It performs lazy expiration: an expired entry is removed from the table and
// reported as missing.
func (c *Cache[T]) Get(key string) (T, bool) {
	value, res := c.lookup(key)
	switch res {
	case lookupHit:
		c.metrics.hit()
		return value, true
	case lookupExpired:
		c.metrics.lazyExpired()
		c.metrics.miss()
		c.log(slog.LevelInfo, "removing expired key", slog.String("key", key), slog.String("reason", reasonLazy))
	default:
		c.metrics.miss()
	}
	var zero T
	return zero, false
}

type lookupResult int

const (
	lookupMiss lookupResult = iota
	lookupHit
	lookupExpired
)

func (c *Cache[T]) lookup(key string) (T, lookupResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, lookupMiss
	}
	if IsExpired(e.insertedAt, c.clock.Now(), c.ttl) {
		c.deleteLocked(key)
		return zero, lookupExpired
	}
	return e.value, lookupHit
}

// Delete removes key if present.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deleteLocked(key)
}

// Exists reports whether key is present in the table.
//
// Exists does not check expiry: an entry whose TTL has elapsed is still
// reported until Get or a sweep removes it.
func (c *Cache[T]) Exists(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	return ok
}

// Len returns the number of entries in the table.
//
// Like Exists, Len includes entries that have expired but have not been
// removed yet.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Close stops the background sweeper and waits for it to exit.
//
// The table is kept; Set, Get, Delete and Exists keep working, with expiry
// enforced only by Get. Close is safe to call multiple times.
func (c *Cache[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	c.mu.Unlock()

	// Wait outside the lock: a sweep pass in progress needs it to finish.
	cancel()
	c.wg.Wait()

	c.log(slog.LevelDebug, "cache stopped")
	return nil
}

// Stopped reports whether Close has been called.
func (c *Cache[T]) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Cache[T]) deleteLocked(key string) {
	delete(c.items, key)
}

func (c *Cache[T]) log(level slog.Level, msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Log(context.Background(), level, msg, args...)
}
