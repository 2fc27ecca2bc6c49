package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventuallyTimeout = time.Second

func TestSweeper_RemovesWithoutGet(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newTestCache[string](t, Config{TTL: time.Second, SweepInterval: time.Minute}, WithClock(clock))

	c.Set("ttl", "v")
	c.Set("fresh", "v")

	clock.Advance(30 * time.Second)
	c.Set("fresh", "v")

	// Crosses the first tick: "ttl" is 61s old, "fresh" 31s old. Both expired.
	clock.Advance(31 * time.Second)
	require.Eventually(t, func() bool {
		return !c.Exists("ttl") && !c.Exists("fresh")
	}, eventuallyTimeout, 5*time.Millisecond)
	assert.Equal(t, 0, c.Len())
}

func TestSweeper_KeepsLiveEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	logger := &recordingLogger{}
	c := newTestCache[int](t, Config{TTL: time.Hour, SweepInterval: time.Minute},
		WithClock(clock), WithLogger(logger))

	c.Set("live", 1)
	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		return logger.count("sweep finished") == 1
	}, eventuallyTimeout, 5*time.Millisecond)
	assert.True(t, c.Exists("live"))
	assert.Equal(t, 1, logger.count("sweep started"))
	assert.Zero(t, logger.count("removing expired key"))
}

func TestSweeper_Disabled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newTestCache[int](t, Config{TTL: time.Second, DisableSweep: true, SweepInterval: time.Second},
		WithClock(clock))

	c.Set("k", 1)
	clock.Advance(time.Hour)

	assert.Never(t, func() bool { return !c.Exists("k") }, 50*time.Millisecond, 5*time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "lazy expiry still applies")
}

func TestSweeper_NoTicksAfterClose(t *testing.T) {
	clock := clockwork.NewFakeClock()
	logger := &recordingLogger{}
	c, err := New[int](Config{TTL: time.Second, SweepInterval: time.Minute},
		WithClock(clock), WithLogger(logger))
	require.NoError(t, err)

	c.Set("k", 1)
	require.NoError(t, c.Close())

	clock.Advance(time.Hour)
	assert.Never(t, func() bool { return !c.Exists("k") }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Zero(t, logger.count("sweep started"))
}

func TestSweeper_LogsRemovedKeys(t *testing.T) {
	clock := clockwork.NewFakeClock()
	logger := &recordingLogger{}
	c := newTestCache[int](t, Config{TTL: time.Second, SweepInterval: time.Minute},
		WithClock(clock), WithLogger(logger))

	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		return logger.count("sweep finished") == 1
	}, eventuallyTimeout, 5*time.Millisecond)
	assert.Equal(t, 2, logger.count("removing expired key"))

	logger.mu.Lock()
	defer logger.mu.Unlock()
	var keys []string
	for _, r := range logger.records {
		if r.msg == "removing expired key" {
			assert.Equal(t, reasonSweep, r.attr("reason"))
			keys = append(keys, r.attr("key"))
		}
		if r.msg == "sweep finished" {
			assert.Equal(t, "2", r.attr("removed"))
		}
	}
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestDeleteExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newTestCache[int](t, Config{TTL: 10 * time.Second, DisableSweep: true}, WithClock(clock))

	assert.Equal(t, 0, c.DeleteExpired(), "empty table")

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(5 * time.Second)
	c.Set("new", 3)
	clock.Advance(5 * time.Second)

	assert.Equal(t, 2, c.DeleteExpired())
	assert.False(t, c.Exists("old1"))
	assert.False(t, c.Exists("old2"))
	assert.True(t, c.Exists("new"))

	assert.Equal(t, 0, c.DeleteExpired())
}

func TestDeleteExpired_AfterClose(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c, err := New[int](Config{TTL: time.Second}, WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c.Set("k", 1)
	clock.Advance(time.Second)
	assert.Equal(t, 1, c.DeleteExpired())
	assert.False(t, c.Exists("k"))
}
