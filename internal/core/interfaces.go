// Package core defines the repository interfaces the service layer depends
// on. Data adapters implement them; mocks are generated for tests.
package core

import (
	"context"
	"time"

	"github.com/plugashop/storefront/internal/domain/cart"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/domain/tenant"
)

// TenantRepository reads the active store list. Rows are loaded read-only per
// page load; this tier never mutates them.
type TenantRepository interface {
	// ListActive returns all active stores in creation order.
	ListActive(ctx context.Context) ([]tenant.Tenant, error)
}

// ProductRepository reads tenant-scoped catalog products.
type ProductRepository interface {
	ListByStore(ctx context.Context, storeID string, opts model.ProductsListOptions) ([]model.Product, error)
	GetBySlug(ctx context.Context, storeID, slug string) (*model.Product, error)
	// PrimaryImages returns the first image per product for the given ids.
	PrimaryImages(ctx context.Context, productIDs []string) (map[string]model.ProductImage, error)
}

// CategoryRepository reads tenant-scoped categories.
type CategoryRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]model.Category, error)
}

// SectionRepository reads tenant-scoped storefront sections.
type SectionRepository interface {
	// ActiveByType returns the first active section of the given type in
	// sort order, or nil when none is configured (an expected condition).
	ActiveByType(ctx context.Context, storeID, sectionType string) (*model.StoreSection, error)
}

// CreateOrderParams groups the inputs for converting a cart into an order.
type CreateOrderParams struct {
	StoreID     string
	UserID      *string
	OrderNumber string
	Items       []cart.LineItem
	Total       float64
}

// OrderRepository reads and writes orders.
type OrderRepository interface {
	Create(ctx context.Context, params CreateOrderParams) (*model.Order, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, opts model.OrdersListOptions) ([]model.Order, error)
	ListByStore(ctx context.Context, storeID string, opts model.OrdersListOptions) ([]model.Order, error)
	ItemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error)
}

// CartStore persists carts keyed by an opaque cart ID. Carts survive page
// reloads and are cleared explicitly; they carry no automatic expiry unless
// retention pruning is enabled.
type CartStore interface {
	Save(ctx context.Context, cartID string, c cart.Cart) error
	Get(ctx context.Context, cartID string) (cart.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

// CartReaperStore prunes abandoned carts. Separate from CartStore so the
// HTTP path never sees reaper concerns.
type CartReaperStore interface {
	// DeleteIdleCarts removes carts untouched for longer than maxIdle and
	// returns how many were removed.
	DeleteIdleCarts(ctx context.Context, maxIdle time.Duration, batchSize int) (int64, error)
}

// CacheRepository is a byte-oriented cache used for the tenant list.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}
