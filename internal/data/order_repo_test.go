package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/domain/cart"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/testutil"
)

func TestOrderRepo_Create(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewOrderRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		productID := insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)
		userID := "3f1c8a1e-59ab-4b62-9c2e-6a9f6d3f2b10"

		order, err := repo.Create(ctx, core.CreateOrderParams{
			StoreID:     storeID,
			UserID:      &userID,
			OrderNumber: "ORD-20260831-0001",
			Items: []cart.LineItem{
				{ProductID: productID, Name: "Mug", UnitPrice: 19.90, Quantity: 2, StoreID: storeID},
			},
			Total: 39.80,
		})
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, "ORD-20260831-0001", order.OrderNumber)
		assert.InDelta(t, 39.80, order.TotalAmount, 0.001)

		items, err := repo.ItemsForOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.InDelta(t, 39.80, items[0].Total, 0.001)
		assert.JSONEq(t, `{
			"id": "`+productID+`",
			"name": "Mug",
			"price": 19.9,
			"quantity": 2,
			"image": "",
			"storeId": "`+storeID+`"
		}`, string(items[0].ProductData))
	})
}

func TestOrderRepo_Create_EmptyCart(t *testing.T) {
	t.Parallel()

	repo := NewOrderRepo(nil)
	_, err := repo.Create(context.Background(), core.CreateOrderParams{
		StoreID:     "store-1",
		OrderNumber: "ORD-1",
	})
	require.Error(t, err)
}

func TestOrderRepo_Create_DuplicateOrderNumber(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewOrderRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		params := core.CreateOrderParams{
			StoreID:     storeID,
			OrderNumber: "ORD-DUP",
			Items:       []cart.LineItem{{ProductID: "", Name: "Mug", UnitPrice: 10, Quantity: 1}},
			Total:       10,
		}
		params.Items[0].ProductID = insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)

		_, err := repo.Create(ctx, params)
		require.NoError(t, err)

		_, err = repo.Create(ctx, params)
		require.Error(t, err)
	})
}

func TestOrderRepo_ListByUserAndStore(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewOrderRepo(db)
		ctx := context.Background()

		storeID := insertTestStore(t, db, "Demo Shop", "demo", nil, nil, true)
		productID := insertTestProduct(t, db, storeID, "mug", `"Mug"`, false)
		userID := "3f1c8a1e-59ab-4b62-9c2e-6a9f6d3f2b10"
		otherUser := "9b7e2c44-11d2-4f6b-8a3c-0d5e7f8a9b1c"

		for i, uid := range []string{userID, userID, otherUser} {
			_, err := repo.Create(ctx, core.CreateOrderParams{
				StoreID:     storeID,
				UserID:      &uid,
				OrderNumber: "ORD-" + string(rune('A'+i)),
				Items:       []cart.LineItem{{ProductID: productID, Name: "Mug", UnitPrice: 10, Quantity: 1}},
				Total:       10,
			})
			require.NoError(t, err)
		}

		mine, err := repo.ListByUser(ctx, userID, model.OrdersListOptions{})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		all, err := repo.ListByStore(ctx, storeID, model.OrdersListOptions{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
