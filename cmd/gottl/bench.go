package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"gottl/internal/cache"
)

const (
	defaultBenchKeys = 100_000
	benchKeyPrefix   = "TestKey_"
)

type benchValue struct {
	name string
	age  int
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "set, check, read and delete many distinct keys and verify every result",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "keys",
				Aliases: []string{"n"},
				Usage:   "number of distinct keys",
				Value:   defaultBenchKeys,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "concurrent callers",
				Value:   runtime.GOMAXPROCS(0),
			},
		},
		Action: runBench,
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	n, workers := cmd.Int("keys"), cmd.Int("workers")
	if n <= 0 || workers <= 0 {
		return fmt.Errorf("%w: --keys and --workers must be positive", errUsage)
	}

	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := cache.New[benchValue](cfg.CacheConfig(), cache.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	out := cmd.Root().Writer
	phases := []struct {
		name string
		fn   func(i int) error
	}{
		{"set", func(i int) error {
			c.Set(benchKey(i), benchValue{name: "bench", age: i})
			return nil
		}},
		{"exists", func(i int) error {
			if !c.Exists(benchKey(i)) {
				return fmt.Errorf("%s: not found", benchKey(i))
			}
			return nil
		}},
		{"get", func(i int) error {
			v, ok := c.Get(benchKey(i))
			if !ok {
				return fmt.Errorf("%s: not found", benchKey(i))
			}
			if v.name != "bench" || v.age != i {
				return fmt.Errorf("%s: incorrect data %+v", benchKey(i), v)
			}
			return nil
		}},
		{"delete", func(i int) error {
			c.Delete(benchKey(i))
			return nil
		}},
		{"absent", func(i int) error {
			if c.Exists(benchKey(i)) {
				return fmt.Errorf("%s: still present after delete", benchKey(i))
			}
			return nil
		}},
	}

	for _, p := range phases {
		began := time.Now()
		if err := parallel(ctx, n, workers, p.fn); err != nil {
			return fmt.Errorf("%s phase: %w", p.name, err)
		}
		elapsed := time.Since(began)
		fmt.Fprintf(out, "%-7s %d keys in %s (%s/op)\n", p.name, n, elapsed.Round(time.Microsecond), elapsed/time.Duration(n))
	}

	if l := c.Len(); l != 0 {
		return fmt.Errorf("table holds %d entries after deleting every key", l)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

// parallel calls fn for every index in [0, n), striped across workers.
// The first error cancels the remaining work.
func parallel(ctx context.Context, n, workers int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func benchKey(i int) string {
	return benchKeyPrefix + strconv.Itoa(i)
}
