package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/data/pgxutil"
	"github.com/plugashop/storefront/internal/domain/model"
)

// ProductRepo provides database operations for catalog products.
type ProductRepo struct {
	DB *sql.DB
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db}
}

const (
	productColumns = `id, store_id, slug, name, description, price, compare_at_price, sku,
	       inventory_quantity, is_active, is_featured, created_at, updated_at`

	productGetBySlugQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE store_id = $1 AND slug = $2 AND is_active = TRUE`

	productVariantsQuery = `
		SELECT id, product_id, name, option_values, price, compare_at_price, sku,
		       inventory_quantity, is_active
		FROM product_variants
		WHERE product_id = $1 AND is_active = TRUE
		ORDER BY name`

	// DISTINCT ON keeps the first image per product by sort order.
	productPrimaryImagesQuery = `
		SELECT DISTINCT ON (product_id)
		       id, product_id, url, alt_text, sort_order
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, sort_order ASC, id ASC`
)

// ListByStore returns active products for a store with paging and optional
// featured filtering. Sort "featured" surfaces featured products first;
// anything else orders newest first.
func (r *ProductRepo) ListByStore(
	ctx context.Context,
	storeID string,
	opts model.ProductsListOptions,
) ([]model.Product, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 24
	}
	offset := max(opts.Offset, 0)

	query, args := buildProductListQuery(storeID, opts, limit, offset)

	var rowsOut []model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rowsOut, nil
}

// buildProductListQuery builds the filtered listing query. Only known sort
// keys reach the ORDER BY clause; everything else falls back to newest first.
func buildProductListQuery(
	storeID string,
	opts model.ProductsListOptions,
	limit, offset int,
) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND is_active = TRUE`)
	args := []any{storeID}

	if opts.Featured != nil {
		args = append(args, *opts.Featured)
		fmt.Fprintf(&sb, " AND is_featured = $%d", len(args))
	}

	switch strings.ToLower(strings.TrimSpace(opts.Sort)) {
	case "featured":
		sb.WriteString(" ORDER BY is_featured DESC, created_at DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC")
	}

	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	return sb.String(), args
}

// GetBySlug retrieves an active product by store and slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, storeID, slug string) (*model.Product, error) {
	var product model.Product
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, productGetBySlugQuery, storeID, slug)
		if err != nil {
			return err
		}
		defer rows.Close()
		product, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return &product, nil
}

// PrimaryImages returns the first image per product for the given IDs.
// Products without images are simply absent from the map.
func (r *ProductRepo) PrimaryImages(
	ctx context.Context,
	productIDs []string,
) (map[string]model.ProductImage, error) {
	if len(productIDs) == 0 {
		return map[string]model.ProductImage{}, nil
	}

	var rowsOut []model.ProductImage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, productPrimaryImagesQuery, productIDs)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ProductImage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load primary images: %w", err)
	}

	images := make(map[string]model.ProductImage, len(rowsOut))
	for _, img := range rowsOut {
		images[img.ProductID] = img
	}
	return images, nil
}

// VariantsForProduct returns the active variants of a product ordered by name.
func (r *ProductRepo) VariantsForProduct(
	ctx context.Context,
	productID string,
) ([]model.ProductVariant, error) {
	var rowsOut []model.ProductVariant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, productVariantsQuery, productID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ProductVariant])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load product variants: %w", err)
	}
	return rowsOut, nil
}
