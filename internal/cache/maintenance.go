package cache

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// sweepLoop runs a sweep pass on every tick until Close cancels the context.
//
// A full scan per tick keeps a single owned goroutine regardless of how many
// entries exist, at O(n) cost per pass.
func (c *Cache[T]) sweepLoop(ticker clockwork.Ticker) {
	defer c.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.Chan():
			c.log(slog.LevelInfo, "sweep started")
			removed := c.DeleteExpired()
			c.log(slog.LevelInfo, "sweep finished", slog.Int("removed", removed))
		}
	}
}

// DeleteExpired removes every expired entry in one pass and returns how many
// were removed.
//
// The pass holds the table lock throughout, so it is atomic with respect to
// all other operations. The sweeper calls it on each tick; callers may also
// run it directly, including after Close.
func (c *Cache[T]) DeleteExpired() int {
	removed := c.deleteExpired()
	c.metrics.swept(len(removed))

	if c.logger != nil {
		for _, key := range removed {
			c.log(slog.LevelInfo, "removing expired key", slog.String("key", key), slog.String("reason", reasonSweep))
		}
	}
	return len(removed)
}

func (c *Cache[T]) deleteExpired() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return nil
	}

	// One timestamp for the whole pass.
	now := c.clock.Now()
	var removed []string
	for key, e := range c.items {
		if IsExpired(e.insertedAt, now, c.ttl) {
			c.deleteLocked(key)
			removed = append(removed, key)
		}
	}
	return removed
}
