package tenant

// Package tenant contains the domain model for stores (tenants) and the
// hostname-based resolution logic that decides which store a visitor sees.

import (
	"encoding/json"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Default theme tokens used when a store has no (or partial) theme_config.
const (
	DefaultPrimaryColor   = "#0055a5"
	DefaultSecondaryColor = "#0088cc"
	DefaultAccentColor    = "#00cc88"

	// DefaultLogo is served when a store has no logo of its own.
	DefaultLogo = "/static/logo-demo.svg"
)

// Theme holds the three color tokens a storefront is skinned with.
type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
}

// CSSVars renders the theme as CSS custom-property assignments for templates.
func (t Theme) CSSVars() map[string]string {
	return map[string]string{
		"--shop-primary":   t.PrimaryColor,
		"--shop-secondary": t.SecondaryColor,
		"--shop-accent":    t.AccentColor,
	}
}

// DefaultTheme returns the platform default theme tokens.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		AccentColor:    DefaultAccentColor,
	}
}

// Tenant is one independent shop instance sharing the codebase.
type Tenant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Domain    string  `json:"domain"`
	Subdomain *string `json:"subdomain"`
	Logo      string  `json:"logo"`
	Theme     Theme   `json:"theme"`
}

// ParseThemeConfig extracts the theme tokens from a raw theme_config document.
// Missing or malformed values fall back to the platform defaults; a broken
// document never fails tenant loading.
func ParseThemeConfig(raw json.RawMessage) Theme {
	theme := DefaultTheme()
	if len(raw) == 0 {
		return theme
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return theme
	}

	assign := func(expr string, dst *string) {
		v, err := jmespath.Search(expr, doc)
		if err != nil {
			return
		}
		if s, ok := v.(string); ok && s != "" {
			*dst = s
		}
	}
	assign("primaryColor", &theme.PrimaryColor)
	assign("secondaryColor", &theme.SecondaryColor)
	assign("accentColor", &theme.AccentColor)
	return theme
}
