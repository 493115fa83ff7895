//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"

	"github.com/plugashop/storefront/internal/domain/i18n"
)

// Product is a row of the products table. Name and Description carry the
// plain-or-localized JSON shape.
type Product struct {
	ID                string     `json:"id"                 db:"id"`
	StoreID           string     `json:"store_id"           db:"store_id"`
	Slug              string     `json:"slug"               db:"slug"`
	Name              i18n.Text  `json:"name"               db:"name"`
	Description       i18n.Text  `json:"description"        db:"description"`
	Price             float64    `json:"price"              db:"price"`
	CompareAtPrice    *float64   `json:"compare_at_price"   db:"compare_at_price"`
	SKU               *string    `json:"sku"                db:"sku"`
	InventoryQuantity int        `json:"inventory_quantity" db:"inventory_quantity"`
	IsActive          bool       `json:"is_active"          db:"is_active"`
	IsFeatured        bool       `json:"is_featured"        db:"is_featured"`
	CreatedAt         time.Time  `json:"created_at"         db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"         db:"updated_at"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.InventoryQuantity > 0
}

// ProductImage is a row of the product_images table.
type ProductImage struct {
	ID        string    `json:"id"         db:"id"`
	ProductID string    `json:"product_id" db:"product_id"`
	URL       string    `json:"url"        db:"url"`
	AltText   i18n.Text `json:"alt_text"   db:"alt_text"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
}

// ProductVariant is a row of the product_variants table.
type ProductVariant struct {
	ID                string          `json:"id"                 db:"id"`
	ProductID         string          `json:"product_id"         db:"product_id"`
	Name              i18n.Text       `json:"name"               db:"name"`
	OptionValues      json.RawMessage `json:"option_values"      db:"option_values"`
	Price             *float64        `json:"price"              db:"price"`
	CompareAtPrice    *float64        `json:"compare_at_price"   db:"compare_at_price"`
	SKU               *string         `json:"sku"                db:"sku"`
	InventoryQuantity int             `json:"inventory_quantity" db:"inventory_quantity"`
	IsActive          bool            `json:"is_active"          db:"is_active"`
}

// ProductsListOptions controls paging and filtering for tenant-scoped product
// listings. Sort supports "newest" (created_at desc) and "featured"
// (is_featured first, then sort by creation).
type ProductsListOptions struct {
	Limit    int
	Offset   int
	Featured *bool
	Sort     string
}

// ProductView is a product projected for a storefront response, with
// localized fields resolved to the request language.
type ProductView struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	Image          string   `json:"image,omitempty"`
	InStock        bool     `json:"inStock"`
	IsFeatured     bool     `json:"isFeatured"`
}
