//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a row of the orders table.
type Order struct {
	ID              string          `json:"id"               db:"id"`
	OrderNumber     string          `json:"order_number"     db:"order_number"`
	StoreID         string          `json:"store_id"         db:"store_id"`
	UserID          *string         `json:"user_id"          db:"user_id"`
	Status          OrderStatus     `json:"status"           db:"status"`
	TotalAmount     float64         `json:"total_amount"     db:"total_amount"`
	PaymentMethod   *string         `json:"payment_method"   db:"payment_method"`
	ShippingMethod  *string         `json:"shipping_method"  db:"shipping_method"`
	ShippingAddress json.RawMessage `json:"shipping_address" db:"shipping_address"`
	BillingAddress  json.RawMessage `json:"billing_address"  db:"billing_address"`
	Notes           *string         `json:"notes"            db:"notes"`
	CreatedAt       time.Time       `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"       db:"updated_at"`
}

// OrderItem is a row of the order_items table. ProductData snapshots the
// product at purchase time so later catalog edits don't rewrite history.
type OrderItem struct {
	ID          string          `json:"id"           db:"id"`
	OrderID     string          `json:"order_id"     db:"order_id"`
	ProductID   *string         `json:"product_id"   db:"product_id"`
	VariantID   *string         `json:"variant_id"   db:"variant_id"`
	ProductData json.RawMessage `json:"product_data" db:"product_data"`
	Price       float64         `json:"price"        db:"price"`
	Quantity    int             `json:"quantity"     db:"quantity"`
	Total       float64         `json:"total"        db:"total"`
}

// OrdersListOptions controls paging for order listings scoped either to a
// user (account area) or to a store (admin area).
type OrdersListOptions struct {
	Limit  int
	Offset int
}
