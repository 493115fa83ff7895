package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisadapter "github.com/plugashop/storefront/internal/adapters/redis"
	"github.com/plugashop/storefront/internal/bootstrap"
)

type clearIdleCartsOptions struct {
	Timeout   time.Duration
	MaxIdle   time.Duration
	BatchSize int
	Yes       bool
}

func parseClearIdleCartsFlags(cmdCtx *commandContext, args []string) (clearIdleCartsOptions, error) {
	fs := flag.NewFlagSet("clear-idle-carts", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	reaperCfg := cmdCtx.Config.CartReaper
	opts := clearIdleCartsOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultCommandTimeout,
		"Maximum duration to wait for the sweep to complete",
	)
	fs.DurationVar(
		&opts.MaxIdle,
		"max-idle",
		reaperCfg.MaxIdle,
		"Carts untouched for longer than this are deleted",
	)
	fs.IntVar(
		&opts.BatchSize,
		"batch-size",
		reaperCfg.BatchSize,
		"Maximum number of carts to delete per Redis sweep",
	)
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearIdleCartsOptions{}, err
	}
	if opts.MaxIdle <= 0 {
		return clearIdleCartsOptions{}, errors.New("--max-idle must be greater than zero")
	}
	if opts.BatchSize <= 0 {
		return clearIdleCartsOptions{}, errors.New("--batch-size must be greater than zero")
	}
	return opts, nil
}

func runClearIdleCarts(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearIdleCartsFlags(cmdCtx, args)
	if err != nil {
		return err
	}

	if confirmErr := confirmClearIdleCarts(opts); confirmErr != nil {
		return confirmErr
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	store := redisadapter.NewCartStore(client)

	// Keep sweeping until a batch comes back short, so one invocation
	// drains the full backlog.
	var total int64
	for {
		deleted, sweepErr := store.DeleteIdleCarts(ctx, opts.MaxIdle, opts.BatchSize)
		if sweepErr != nil {
			return fmt.Errorf("delete idle carts: %w", sweepErr)
		}
		total += deleted
		if deleted < int64(opts.BatchSize) {
			break
		}
	}

	cmdCtx.Logger.Info("idle cart sweep completed",
		"deleted", total,
		"max_idle", opts.MaxIdle.String(),
	)
	return writef(os.Stdout, "Deleted %d idle cart(s) older than %s.\n", total, opts.MaxIdle)
}

func confirmClearIdleCarts(opts clearIdleCartsOptions) error {
	if opts.Yes {
		return nil
	}
	if err := writef(
		os.Stdout,
		"About to delete carts untouched for longer than %s.\n",
		opts.MaxIdle,
	); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	return promptYesNo()
}

func promptYesNo() error {
	if err := write(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	var resp string
	if _, err := fmt.Fscanln(os.Stdin, &resp); err != nil {
		return errors.New("aborted by user")
	}
	switch resp {
	case "y", "Y", "yes", "YES":
		return nil
	}
	return errors.New("aborted by user")
}
