package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/domain/tenant"
)

// StoreRepo provides database operations for stores.
type StoreRepo struct {
	DB *sql.DB
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{DB: db}
}

const (
	storeColumns = `id, name, slug, domain, subdomain, logo_url, theme_config, owner_id,
	       is_active, created_at, updated_at`

	storeListActiveQuery = `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE is_active = TRUE
		ORDER BY created_at ASC`

	storeGetByIDQuery = `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE id = $1`

	storeGetBySlugQuery = `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE slug = $1`
)

// ListActive returns every active store projected as a tenant, in creation
// order. Hostname resolution relies on that order: the first row is the
// local-development and fallback default.
func (r *StoreRepo) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	var rowsOut []model.Store
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, storeListActiveQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Store])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list active stores: %w", err)
	}

	tenants := make([]tenant.Tenant, len(rowsOut))
	for i := range rowsOut {
		tenants[i] = rowsOut[i].ToTenant()
	}
	return tenants, nil
}

// GetByID retrieves a store row by ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*model.Store, error) {
	return r.getByQuery(ctx, storeGetByIDQuery, "failed to get store by ID", id)
}

// GetBySlug retrieves a store row by slug.
func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	return r.getByQuery(ctx, storeGetBySlugQuery, "failed to get store by slug", slug)
}

func (r *StoreRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Store, error) {
	var store model.Store
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		store, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Store])
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &store, nil
}
