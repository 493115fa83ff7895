//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"

	"github.com/plugashop/storefront/internal/domain/tenant"
)

// Store is a row of the stores table. ThemeConfig is kept raw; parsing into
// theme tokens happens when the row is projected into a tenant.
type Store struct {
	ID          string          `json:"id"           db:"id"`
	Name        string          `json:"name"         db:"name"`
	Slug        string          `json:"slug"         db:"slug"`
	Domain      *string         `json:"domain"       db:"domain"`
	Subdomain   *string         `json:"subdomain"    db:"subdomain"`
	LogoURL     *string         `json:"logo_url"     db:"logo_url"`
	ThemeConfig json.RawMessage `json:"theme_config" db:"theme_config"`
	OwnerID     *string         `json:"owner_id"     db:"owner_id"`
	IsActive    bool            `json:"is_active"    db:"is_active"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"   db:"updated_at"`
}

// ToTenant projects the row into the tenant domain type, applying logo and
// theme defaults.
func (s Store) ToTenant() tenant.Tenant {
	t := tenant.Tenant{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		Subdomain: s.Subdomain,
		Logo:      tenant.DefaultLogo,
		Theme:     tenant.ParseThemeConfig(s.ThemeConfig),
	}
	if s.Domain != nil {
		t.Domain = *s.Domain
	}
	if s.LogoURL != nil && *s.LogoURL != "" {
		t.Logo = *s.LogoURL
	}
	return t
}
