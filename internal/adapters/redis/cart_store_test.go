package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/domain/cart"
)

func TestCartStore_SaveGetRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCartStore(client)
	ctx := context.Background()

	c := cart.Cart{}
	c.Add(cart.LineItem{ProductID: "p1", Name: "Mug", UnitPrice: 19.90, StoreID: "s1"})
	c.Add(cart.LineItem{ProductID: "p2", Name: "Shirt", UnitPrice: 49.90, StoreID: "s1"})
	c.Add(cart.LineItem{ProductID: "p1", Name: "Mug", UnitPrice: 19.90, StoreID: "s1"})

	require.NoError(t, store.Save(ctx, "cart-1", c))

	loaded, err := store.Get(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, "p1", loaded.Items[0].ProductID, "line order survives the round trip")
	assert.InDelta(t, c.Total(), loaded.Total(), 0.001)
}

func TestCartStore_GetMissingReturnsEmpty(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCartStore(client)

	loaded, err := store.Get(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCartStore(client)
	ctx := context.Background()

	c := cart.Cart{}
	c.Add(cart.LineItem{ProductID: "p1", Name: "Mug", UnitPrice: 19.90})
	require.NoError(t, store.Save(ctx, "cart-1", c))
	require.NoError(t, store.Delete(ctx, "cart-1"))

	loaded, err := store.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartStore_DeleteIdleCarts(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	now := time.Now()
	clock := now
	store := NewCartStoreWithClock(client, func() time.Time { return clock })
	ctx := context.Background()

	c := cart.Cart{}
	c.Add(cart.LineItem{ProductID: "p1", Name: "Mug", UnitPrice: 19.90})

	clock = now.Add(-48 * time.Hour)
	require.NoError(t, store.Save(ctx, "stale-cart", c))

	clock = now
	require.NoError(t, store.Save(ctx, "fresh-cart", c))

	removed, err := store.DeleteIdleCarts(ctx, 24*time.Hour, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	stale, err := store.Get(ctx, "stale-cart")
	require.NoError(t, err)
	assert.True(t, stale.IsEmpty())

	fresh, err := store.Get(ctx, "fresh-cart")
	require.NoError(t, err)
	assert.False(t, fresh.IsEmpty())
}

func TestCartStore_DeleteIdleCarts_NothingIdle(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCartStore(client)

	removed, err := store.DeleteIdleCarts(context.Background(), time.Hour, 100)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
