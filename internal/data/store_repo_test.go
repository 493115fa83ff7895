package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/testutil"
)

func insertTestStore(t *testing.T, db *sql.DB, name, slug string, domain, subdomain *string, active bool) string {
	t.Helper()

	var id string
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO stores (name, slug, domain, subdomain, theme_config, is_active)
		VALUES ($1, $2, $3, $4, '{"primaryColor": "#112233"}', $5)
		RETURNING id`,
		name, slug, domain, subdomain, active,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestStoreRepo_ListActive(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewStoreRepo(db)
		ctx := context.Background()

		firstID := insertTestStore(t, db, "Demo Shop", "demo",
			testutil.StringPtr("demo.example.com"), nil, true)
		insertTestStore(t, db, "Second Shop", "second",
			nil, testutil.StringPtr("second"), true)
		insertTestStore(t, db, "Disabled Shop", "disabled", nil, nil, false)

		tenants, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, tenants, 2)

		// Creation order matters: the first row is the resolver default.
		assert.Equal(t, firstID, tenants[0].ID)
		assert.Equal(t, "demo.example.com", tenants[0].Domain)
		assert.Equal(t, "#112233", tenants[0].Theme.PrimaryColor)
		assert.Equal(t, "second", *tenants[1].Subdomain)
	})
}

func TestStoreRepo_GetByID_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewStoreRepo(db)

		_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestStoreRepo_GetBySlug(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewStoreRepo(db)
		id := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)

		store, err := repo.GetBySlug(context.Background(), "demo")
		require.NoError(t, err)
		assert.Equal(t, id, store.ID)
		assert.Equal(t, "Demo Shop", store.Name)
	})
}
