// gottl exercises the in-process TTL cache from the command line.
//
// Usage:
//
//	gottl [global options] <command> [command options]
//
// Commands:
//
//	demo    set a key, read it before and after its TTL, then watch a sweep remove it
//	bench   insert, read and delete many keys from concurrent workers and verify every result
//
// Exit codes:
//
//	0: success
//	1: command failed (bench mismatch, interrupted demo)
//	2: invalid configuration or arguments
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"gottl/internal/cache"
)

// Version information, set with -ldflags "-X main.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "gottl",
		Usage:   "in-process TTL cache demo and load check",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:  os.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON config file",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "entry lifetime (overrides cache.ttl)",
			},
			&cli.DurationFlag{
				Name:  "sweep-interval",
				Usage: "period between sweep passes (overrides cache.sweep_interval)",
			},
			&cli.BoolFlag{
				Name:  "no-sweep",
				Usage: "disable the background sweeper; expiry is then enforced only on get",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides log.level)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json (overrides log.format)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to a rotating file instead of stderr (overrides log.file)",
			},
		},
		Commands: []*cli.Command{
			demoCommand(),
			benchCommand(),
		},
		DefaultCommand: "demo",
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	// SIGINT/SIGTERM cancel ctx; commands wind down and close the cache.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := createApp().Run(ctx, os.Args); err != nil {
		if errors.Is(err, cache.ErrInvalidConfiguration) || errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
