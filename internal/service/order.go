package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/data"
	"github.com/plugashop/storefront/internal/domain/model"
	apperrors "github.com/plugashop/storefront/internal/errors"
)

const defaultOrdersPageSize = 20

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	Orders       core.OrderRepository // Required
	Carts        core.CartStore       // Required
	TimeProvider data.TimeProvider    // Optional: defaults to RealTimeProvider
	Logger       *slog.Logger         // Optional
}

// OrderService converts carts into orders and serves order history for the
// account and admin areas.
type OrderService struct {
	orders core.OrderRepository
	carts  core.CartStore
	clock  data.TimeProvider
	logger *slog.Logger
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) (*OrderService, error) {
	if opts.Orders == nil {
		return nil, errors.New("OrderRepository is required")
	}
	if opts.Carts == nil {
		return nil, errors.New("CartStore is required")
	}
	clock := opts.TimeProvider
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "order_service")
	}
	return &OrderService{
		orders: opts.Orders,
		carts:  opts.Carts,
		clock:  clock,
		logger: logger,
	}, nil
}

// CheckoutParams identifies whose cart becomes an order.
type CheckoutParams struct {
	CartID  string
	StoreID string
	UserID  *string
}

// Checkout converts the cart into a pending order and clears the cart. Only
// lines belonging to the store are ordered; an empty cart is a validation
// error.
func (s *OrderService) Checkout(ctx context.Context, params CheckoutParams) (*model.Order, error) {
	c, err := s.carts.Get(ctx, params.CartID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load cart")
	}

	items := c.Items[:0:0]
	var total float64
	for _, item := range c.Items {
		if item.StoreID != "" && item.StoreID != params.StoreID {
			continue
		}
		items = append(items, item)
		total += item.UnitPrice * float64(item.Quantity)
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	number, err := s.newOrderNumber()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "generate order number")
	}

	order, err := s.orders.Create(ctx, core.CreateOrderParams{
		StoreID:     params.StoreID,
		UserID:      params.UserID,
		OrderNumber: number,
		Items:       items,
		Total:       total,
	})
	if err != nil {
		return nil, err
	}

	// The order is placed; a stale cart is a nuisance, not a failure.
	if err := s.carts.Delete(ctx, params.CartID); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cart cleanup after checkout failed",
			"cart_id", params.CartID, "order_id", order.ID, "error", err)
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string, opts model.OrdersListOptions) ([]model.Order, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultOrdersPageSize
	}
	return s.orders.ListByUser(ctx, userID, opts)
}

// ListByStore returns the store's orders, newest first.
func (s *OrderService) ListByStore(ctx context.Context, storeID string, opts model.OrdersListOptions) ([]model.Order, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultOrdersPageSize
	}
	return s.orders.ListByStore(ctx, storeID, opts)
}

// ItemsForOrder returns the order's line items with their product snapshots.
func (s *OrderService) ItemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return s.orders.ItemsForOrder(ctx, orderID)
}

// ItemsForUserOrder returns the order's line items after checking that the
// order belongs to userID. Orders of other customers, and guest orders,
// come back as not found rather than forbidden so order IDs stay
// unguessable.
func (s *OrderService) ItemsForUserOrder(
	ctx context.Context,
	orderID, userID string,
) ([]model.OrderItem, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, apperrors.NotFound("order not found")
	}
	return s.orders.ItemsForOrder(ctx, orderID)
}

// newOrderNumber builds a human-readable unique order number, e.g.
// ORD-20260831-3F92A1. The database's unique constraint backstops the
// randomness.
func (s *OrderService) newOrderNumber() (string, error) {
	var suffix [3]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%s",
		s.clock.Now().UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(suffix[:])),
	), nil
}
