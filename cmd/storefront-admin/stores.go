package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/plugashop/storefront/internal/data"
)

type listStoresOptions struct {
	Timeout time.Duration
}

func parseListStoresFlags(args []string) (listStoresOptions, error) {
	fs := flag.NewFlagSet("list-stores", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listStoresOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultCommandTimeout,
		"Maximum duration to wait for the listing to complete",
	)

	if err := fs.Parse(args); err != nil {
		return listStoresOptions{}, err
	}
	return opts, nil
}

func runListStores(cmdCtx *commandContext, args []string) error {
	opts, err := parseListStoresFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		stores, listErr := data.NewStoreRepo(db).ListActive(ctx)
		if listErr != nil {
			return fmt.Errorf("list stores: %w", listErr)
		}
		if len(stores) == 0 {
			return writeln(os.Stdout, "No active stores found.")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if headerErr := writef(w, "ID\tSLUG\tNAME\tDOMAIN\tSUBDOMAIN\n"); headerErr != nil {
			return headerErr
		}
		for _, s := range stores {
			subdomain := "-"
			if s.Subdomain != nil && *s.Subdomain != "" {
				subdomain = *s.Subdomain
			}
			domain := s.Domain
			if domain == "" {
				domain = "-"
			}
			if rowErr := writef(
				w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Slug, s.Name, domain, subdomain,
			); rowErr != nil {
				return rowErr
			}
		}
		if flushErr := w.Flush(); flushErr != nil {
			return fmt.Errorf("flush output: %w", flushErr)
		}
		return writef(os.Stdout, "\n%d active store(s). The first row is the fallback store.\n", len(stores))
	})
}
