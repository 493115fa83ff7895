package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

// UserRoleRepo provides database operations for role grants.
type UserRoleRepo struct {
	DB *sql.DB
}

// NewUserRoleRepo creates a new UserRoleRepo.
func NewUserRoleRepo(db *sql.DB) *UserRoleRepo {
	return &UserRoleRepo{DB: db}
}

// roleGrantRow mirrors the user_roles table.
type roleGrantRow struct {
	Role    string  `db:"role"`
	StoreID *string `db:"store_id"`
}

const (
	userRolesQuery = `
		SELECT role, store_id
		FROM user_roles
		WHERE user_id = $1`

	userHasRoleQuery = `SELECT user_has_role($1, $2, $3)`

	userRoleGrantQuery = `
		INSERT INTO user_roles (user_id, store_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
)

// RolesForUser returns every role grant for a user. Grants with unknown role
// names are dropped rather than surfaced.
func (r *UserRoleRepo) RolesForUser(ctx context.Context, userID string) ([]domainauth.RoleGrant, error) {
	var rowsOut []roleGrantRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userRolesQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[roleGrantRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}

	grants := make([]domainauth.RoleGrant, 0, len(rowsOut))
	for _, row := range rowsOut {
		role := domainauth.Role(row.Role)
		if !role.IsValid() {
			continue
		}
		grants = append(grants, domainauth.RoleGrant{Role: role, StoreID: row.StoreID})
	}
	return grants, nil
}

// HasRole asks the database-side user_has_role function whether the user
// holds the role, optionally scoped to a store.
func (r *UserRoleRepo) HasRole(
	ctx context.Context,
	userID string,
	storeID *string,
	role domainauth.Role,
) (bool, error) {
	var has bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, userHasRoleQuery, userID, storeID, string(role)).Scan(&has)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return has, nil
}

// Grant records a role for a user. Granting a role twice is a no-op.
func (r *UserRoleRepo) Grant(
	ctx context.Context,
	userID string,
	storeID *string,
	role domainauth.Role,
) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, userRoleGrantQuery, userID, storeID, string(role))
		return err
	})
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}
