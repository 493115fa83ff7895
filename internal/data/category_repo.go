package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	"github.com/plugashop/storefront/internal/domain/model"
)

// CategoryRepo provides database operations for categories.
type CategoryRepo struct {
	DB *sql.DB
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

const categoryListByStoreQuery = `
	SELECT id, store_id, parent_id, slug, name, description, image_url, sort_order,
	       is_active, created_at, updated_at
	FROM categories
	WHERE store_id = $1 AND is_active = TRUE
	ORDER BY sort_order ASC NULLS LAST, created_at ASC`

// ListByStore returns the active categories of a store in configured order.
func (r *CategoryRepo) ListByStore(ctx context.Context, storeID string) ([]model.Category, error) {
	var rowsOut []model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, categoryListByStoreQuery, storeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return rowsOut, nil
}
