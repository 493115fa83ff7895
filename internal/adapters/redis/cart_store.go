package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plugashop/storefront/internal/domain/cart"
)

// CartStore persists carts in Redis keyed by an opaque cart ID. Carts carry
// no TTL: they survive until cleared at checkout or, when retention pruning
// is enabled, until the reaper removes them. Last-touch times live in a
// sorted set so pruning never scans the keyspace.
type CartStore struct {
	client  redis.UniversalClient
	prefix  string
	idleKey string
	clock   func() time.Time
}

// NewCartStore creates a new Redis-based cart store.
func NewCartStore(client redis.UniversalClient) *CartStore {
	return &CartStore{
		client:  client,
		prefix:  "cart:",
		idleKey: "cart:last_touch",
		clock:   time.Now,
	}
}

// NewCartStoreWithClock creates a cart store with a custom clock for tests.
func NewCartStoreWithClock(client redis.UniversalClient, clock func() time.Time) *CartStore {
	s := NewCartStore(client)
	s.clock = clock
	return s
}

// Save writes the cart and records the touch time. An empty cart is stored
// as-is; emptiness is a valid cart state, not a deletion.
func (s *CartStore) Save(ctx context.Context, cartID string, c cart.Cart) error {
	if cartID == "" {
		return errors.New("cart ID cannot be empty")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.prefix+cartID, data, 0)
	pipe.ZAdd(ctx, s.idleKey, redis.Z{
		Score:  float64(s.clock().Unix()),
		Member: cartID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save cart: %w", err)
	}
	return nil
}

// Get retrieves a cart by ID. A missing cart returns an empty cart, never an
// error: a visitor without a cart and a visitor with an empty one are the
// same thing to the caller.
func (s *CartStore) Get(ctx context.Context, cartID string) (cart.Cart, error) {
	if cartID == "" {
		return cart.Cart{}, nil
	}

	data, err := s.client.Get(ctx, s.prefix+cartID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.Cart{}, nil
		}
		return cart.Cart{}, fmt.Errorf("redis get cart: %w", err)
	}

	var c cart.Cart
	if unmarshalErr := json.Unmarshal([]byte(data), &c); unmarshalErr != nil {
		// A corrupt cart is unrecoverable; start the visitor fresh.
		return cart.Cart{}, nil
	}
	return c, nil
}

// Delete removes a cart and its touch record.
func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.prefix+cartID)
	pipe.ZRem(ctx, s.idleKey, cartID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

// DeleteIdleCarts removes carts whose last touch is older than maxIdle, up
// to batchSize per call, and returns how many were removed.
func (s *CartStore) DeleteIdleCarts(
	ctx context.Context,
	maxIdle time.Duration,
	batchSize int,
) (int64, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	cutoff := s.clock().Add(-maxIdle).Unix()
	ids, err := s.client.ZRangeByScore(ctx, s.idleKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(cutoff, 10),
		Count: int64(batchSize),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scan idle carts: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + id
		members[i] = id
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, s.idleKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis delete idle carts: %w", err)
	}
	return int64(len(ids)), nil
}
