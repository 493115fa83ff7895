//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"

	"github.com/plugashop/storefront/internal/domain/i18n"
)

// Section types as stored in store_sections.section_type.
const (
	SectionTypeHero   = "hero"
	SectionTypeBanner = "banner"
)

// StoreSection is a row of the store_sections table. Content is free-form
// JSON whose shape depends on the section type.
type StoreSection struct {
	ID          string          `json:"id"           db:"id"`
	StoreID     string          `json:"store_id"     db:"store_id"`
	SectionType string          `json:"section_type" db:"section_type"`
	Title       i18n.Text       `json:"title"        db:"title"`
	Subtitle    i18n.Text       `json:"subtitle"     db:"subtitle"`
	Content     json.RawMessage `json:"content"      db:"content"`
	SortOrder   int             `json:"sort_order"   db:"sort_order"`
	IsActive    bool            `json:"is_active"    db:"is_active"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"   db:"updated_at"`
}

// HeroView is a hero section projected for a storefront response. A missing
// hero is expected, not an error; handlers render defaults instead.
type HeroView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	CTALabel string `json:"ctaLabel,omitempty"`
	CTALink  string `json:"ctaLink,omitempty"`
}
