package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/testutil"
)

func insertTestProduct(t *testing.T, db *sql.DB, storeID, slug, nameJSON string, featured bool) string {
	t.Helper()

	var id string
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO products (store_id, slug, name, price, inventory_quantity, is_active, is_featured)
		VALUES ($1, $2, $3::jsonb, 19.90, 5, TRUE, $4)
		RETURNING id`,
		storeID, slug, nameJSON, featured,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestProductRepo_ListByStore(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewProductRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		otherID := insertTestStore(t, db, "Other Shop", "other", nil, nil, true)

		insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)
		insertTestProduct(t, db, storeID, "shirt", `{"pt-BR": "Camiseta", "en": "Shirt"}`, true)
		insertTestProduct(t, db, otherID, "hat", `"Hat"`, false)

		products, err := repo.ListByStore(ctx, storeID, model.ProductsListOptions{})
		require.NoError(t, err)
		require.Len(t, products, 2, "listing is scoped to the store")

		featured, err := repo.ListByStore(ctx, storeID, model.ProductsListOptions{
			Featured: testutil.BoolPtr(true),
		})
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, "shirt", featured[0].Slug)
		assert.Equal(t, "Camiseta", featured[0].Name.Resolve("pt-BR"))
	})
}

func TestProductRepo_GetBySlug(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewProductRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)

		product, err := repo.GetBySlug(ctx, storeID, "mug")
		require.NoError(t, err)
		assert.Equal(t, "mug", product.Slug)
		assert.True(t, product.InStock())

		_, err = repo.GetBySlug(ctx, storeID, "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductRepo_PrimaryImages(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewProductRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		productID := insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)
		bareID := insertTestProduct(t, db, storeID, "shirt", `"Shirt"`, false)

		_, err := db.ExecContext(ctx, `
			INSERT INTO product_images (product_id, url, sort_order) VALUES
			($1, '/img/mug-back.jpg', 2),
			($1, '/img/mug-front.jpg', 1)`, productID)
		require.NoError(t, err)

		images, err := repo.PrimaryImages(ctx, []string{productID, bareID})
		require.NoError(t, err)
		require.Len(t, images, 1, "products without images are absent")
		assert.Equal(t, "/img/mug-front.jpg", images[productID].URL)
	})
}

func TestProductRepo_PrimaryImages_EmptyInput(t *testing.T) {
	t.Parallel()

	repo := NewProductRepo(nil)
	images, err := repo.PrimaryImages(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}
