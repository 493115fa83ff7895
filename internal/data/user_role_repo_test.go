package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/testutil"
)

func TestUserRoleRepo_RolesForUser(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRoleRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		userID := "3f1c8a1e-59ab-4b62-9c2e-6a9f6d3f2b10"

		require.NoError(t, repo.Grant(ctx, userID, nil, domainauth.RoleUser))
		require.NoError(t, repo.Grant(ctx, userID, &storeID, domainauth.RoleAdmin))
		// Granting twice is a no-op, not an error.
		require.NoError(t, repo.Grant(ctx, userID, nil, domainauth.RoleUser))

		grants, err := repo.RolesForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, grants, 2)

		roles := make([]domainauth.Role, len(grants))
		for i, g := range grants {
			roles[i] = g.Role
		}
		assert.ElementsMatch(t, []domainauth.Role{domainauth.RoleUser, domainauth.RoleAdmin}, roles)
	})
}

func TestUserRoleRepo_RolesForUser_Empty(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRoleRepo(db)

		grants, err := repo.RolesForUser(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Empty(t, grants)
	})
}

func TestUserRoleRepo_HasRole(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRoleRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		otherStore := insertTestStore(t, db, "Other Shop", "other", nil, nil, true)
		userID := "3f1c8a1e-59ab-4b62-9c2e-6a9f6d3f2b10"

		require.NoError(t, repo.Grant(ctx, userID, &storeID, domainauth.RoleAdmin))

		has, err := repo.HasRole(ctx, userID, &storeID, domainauth.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = repo.HasRole(ctx, userID, &otherStore, domainauth.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, has, "store-scoped grant does not leak to other stores")

		// NULL store argument matches a grant of the role in any scope.
		has, err = repo.HasRole(ctx, userID, nil, domainauth.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, has)
	})
}
