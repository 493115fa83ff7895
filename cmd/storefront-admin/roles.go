package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/plugashop/storefront/internal/data"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
)

type grantRoleOptions struct {
	Timeout   time.Duration
	Email     string
	Role      domainauth.Role
	StoreSlug string
}

func parseGrantRoleFlags(args []string) (grantRoleOptions, error) {
	fs := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := grantRoleOptions{Timeout: defaultCommandTimeout}
	var role string
	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultCommandTimeout,
		"Maximum duration to wait for the grant to complete",
	)
	fs.StringVar(&opts.Email, "email", "", "Email of the account to grant the role to (required)")
	fs.StringVar(&role, "role", "", "Role to grant (required)")
	fs.StringVar(
		&opts.StoreSlug,
		"store",
		"",
		"Store slug to scope the grant to; omit for a platform-wide grant",
	)

	if err := fs.Parse(args); err != nil {
		return grantRoleOptions{}, err
	}

	opts.Email = strings.ToLower(strings.TrimSpace(opts.Email))
	if opts.Email == "" {
		return grantRoleOptions{}, errors.New("--email is required")
	}

	opts.Role = domainauth.Role(strings.ToLower(strings.TrimSpace(role)))
	if !opts.Role.IsValid() {
		return grantRoleOptions{}, fmt.Errorf(
			"--role must be one of %v, got %q", domainauth.ValidRoles(), role,
		)
	}

	opts.StoreSlug = strings.TrimSpace(opts.StoreSlug)
	return opts, nil
}

func runGrantRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantRoleFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		user, userErr := data.NewUserRepo(db).GetByEmail(ctx, opts.Email)
		if userErr != nil {
			if apperrors.IsNotFound(userErr) {
				return fmt.Errorf("no account found for email %q", opts.Email)
			}
			return fmt.Errorf("look up account: %w", userErr)
		}

		var storeID *string
		scope := "platform-wide"
		if opts.StoreSlug != "" {
			store, storeErr := data.NewStoreRepo(db).GetBySlug(ctx, opts.StoreSlug)
			if storeErr != nil {
				if apperrors.IsNotFound(storeErr) {
					return fmt.Errorf("no store found for slug %q", opts.StoreSlug)
				}
				return fmt.Errorf("look up store: %w", storeErr)
			}
			storeID = &store.ID
			scope = "store " + opts.StoreSlug
		}

		if grantErr := data.NewUserRoleRepo(db).Grant(ctx, user.ID, storeID, opts.Role); grantErr != nil {
			return fmt.Errorf("grant role: %w", grantErr)
		}

		cmdCtx.Logger.Info("role granted",
			"email", opts.Email,
			"role", string(opts.Role),
			"scope", scope,
		)
		return writef(os.Stdout, "Granted %s to %s (%s).\n", opts.Role, opts.Email, scope)
	})
}
