package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/data/pgxutil"
	"github.com/plugashop/storefront/internal/domain/model"
	apperrors "github.com/plugashop/storefront/internal/errors"
)

// OrderRepo provides database operations for orders and order items.
type OrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrderRepo creates a new OrderRepo with real time provider.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOrderRepoWithTimeProvider creates a new OrderRepo with a custom time
// provider (useful for tests).
func NewOrderRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: tp}
}

const (
	orderColumns = `id, order_number, store_id, user_id, status, total_amount, payment_method,
	       shipping_method, shipping_address, billing_address, notes, created_at, updated_at`

	orderInsertQuery = `
		INSERT INTO orders (order_number, store_id, user_id, status, total_amount, created_at)
		VALUES ($1, $2, $3, 'pending', $4, $5)
		RETURNING ` + orderColumns

	orderItemInsertQuery = `
		INSERT INTO order_items (order_id, product_id, product_data, price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6)`

	orderListByUserQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	orderListByStoreQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	orderGetByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	orderItemsQuery = `
		SELECT id, order_id, product_id, variant_id, product_data, price, quantity, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`
)

// Create inserts an order and its line items in one transaction. Each item
// stores a JSON snapshot of the cart line so the order survives catalog edits.
func (r *OrderRepo) Create(ctx context.Context, params core.CreateOrderParams) (*model.Order, error) {
	if len(params.Items) == 0 {
		return nil, errors.New("order requires at least one item")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Order
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, orderInsertQuery,
			params.OrderNumber,
			params.StoreID,
			params.UserID,
			params.Total,
			createdAt,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		if err != nil {
			return err
		}

		for _, item := range params.Items {
			snapshot, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("snapshot line item: %w", err)
			}
			lineTotal := item.UnitPrice * float64(item.Quantity)
			if _, err := tx.Exec(ctx, orderItemInsertQuery,
				out.ID, item.ProductID, snapshot, item.UnitPrice, item.Quantity, lineTotal,
			); err != nil {
				return err
			}
		}
		return nil
	}})
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &out, nil
}

// ListByUser returns a user's orders newest first.
func (r *OrderRepo) ListByUser(
	ctx context.Context,
	userID string,
	opts model.OrdersListOptions,
) ([]model.Order, error) {
	return r.list(ctx, orderListByUserQuery, userID, opts)
}

// ListByStore returns a store's orders newest first.
func (r *OrderRepo) ListByStore(
	ctx context.Context,
	storeID string,
	opts model.OrdersListOptions,
) ([]model.Order, error) {
	return r.list(ctx, orderListByStoreQuery, storeID, opts)
}

func (r *OrderRepo) list(
	ctx context.Context,
	query, scopeID string,
	opts model.OrdersListOptions,
) ([]model.Order, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var rowsOut []model.Order
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, scopeID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rowsOut, nil
}

// GetByID returns a single order.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var out model.Order
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, orderGetByIDQuery, orderID)
		if err != nil {
			return err
		}
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		return collectErr
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &out, nil
}

// ItemsForOrder returns the line items of an order.
func (r *OrderRepo) ItemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var rowsOut []model.OrderItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, orderItemsQuery, orderID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.OrderItem])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return rowsOut, nil
}
