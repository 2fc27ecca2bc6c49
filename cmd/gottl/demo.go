package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"gottl/internal/cache"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "walk one key through set, lazy expiry and sweep",
		Action: runDemo,
	}
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	// Sweep ticks are counted from construction, so start the clock first.
	start := time.Now()
	c, err := cache.New[int](cfg.CacheConfig(), cache.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	out := cmd.Root().Writer
	ttl := c.TTL()
	fmt.Fprintf(out, "config: ttl=%s autoClear=%t sweepEvery=%s\n", ttl, cfg.Cache.AutoClear, cfg.Cache.SweepInterval)

	// -------------------------------------------------------------------
	// 1) Round trip before expiry
	// -------------------------------------------------------------------
	c.Set("A", 1)
	if err := sleep(ctx, ttl*2/5); err != nil {
		return err
	}
	if v, ok := c.Get("A"); ok {
		fmt.Fprintf(out, "t=%s GET A = %d\n", since(start), v)
	} else {
		return fmt.Errorf("GET A missing before its ttl elapsed")
	}

	// -------------------------------------------------------------------
	// 2) Lazy expiry: exists still sees the stale entry, get removes it
	// -------------------------------------------------------------------
	if err := sleep(ctx, ttl-time.Since(start)); err != nil {
		return err
	}
	c.Set("B", 2)
	bExpires := time.Since(start) + ttl
	fmt.Fprintf(out, "t=%s EXISTS A = %t (no expiry check)\n", since(start), c.Exists("A"))
	if _, ok := c.Get("A"); !ok {
		fmt.Fprintf(out, "t=%s GET A: missing (expired and removed)\n", since(start))
	}

	// -------------------------------------------------------------------
	// 3) Active expiry: B is never read again; the sweeper removes it
	// -------------------------------------------------------------------
	if !cfg.Cache.AutoClear {
		if err := sleep(ctx, ttl); err != nil {
			return err
		}
		fmt.Fprintf(out, "t=%s sweeper disabled, running one pass: removed=%d\n", since(start), c.DeleteExpired())
		fmt.Fprintf(out, "t=%s EXISTS B = %t\n", since(start), c.Exists("B"))
		return nil
	}

	interval := cfg.CacheConfig().SweepInterval
	if interval == 0 {
		interval = cache.DefaultSweepInterval
	}
	// Wait for the first tick at which B is already expired.
	wait := interval - time.Since(start)%interval
	for time.Since(start)+wait < bExpires {
		wait += interval
	}
	fmt.Fprintf(out, "t=%s waiting %s for the sweeper (Ctrl+C to stop)\n", since(start), wait.Round(time.Millisecond))
	if err := sleep(ctx, wait+50*time.Millisecond); err != nil {
		return err
	}
	fmt.Fprintf(out, "t=%s EXISTS B = %t (swept without a get)\n", since(start), c.Exists("B"))
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
