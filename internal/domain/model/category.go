//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	"github.com/plugashop/storefront/internal/domain/i18n"
)

// Category is a row of the categories table.
type Category struct {
	ID          string    `json:"id"          db:"id"`
	StoreID     string    `json:"store_id"    db:"store_id"`
	ParentID    *string   `json:"parent_id"   db:"parent_id"`
	Slug        string    `json:"slug"        db:"slug"`
	Name        i18n.Text `json:"name"        db:"name"`
	Description i18n.Text `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url"   db:"image_url"`
	SortOrder   *int      `json:"sort_order"  db:"sort_order"`
	IsActive    bool      `json:"is_active"   db:"is_active"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// CategoryView is a category projected for a storefront response.
type CategoryView struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}
