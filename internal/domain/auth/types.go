package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents a coarse application permission tag.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleConsole Role = "console"
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleSupport Role = "support"
)

// ValidRoles returns every role the platform recognises.
func ValidRoles() []Role {
	return []Role{RoleConsole, RoleAdmin, RoleUser, RoleSupport}
}

// IsValid reports whether r is one of the recognised roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleConsole, RoleAdmin, RoleUser, RoleSupport:
		return true
	default:
		return false
	}
}

// RoleGrant is a role as granted in the source data model. StoreID is the
// optional tenant scope; session role checks deliberately ignore it (a grant
// for any tenant satisfies a check anywhere).
type RoleGrant struct {
	Role    Role
	StoreID *string
}

// Identity represents the authenticated principal returned by an identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., sub)
	Email     string
	FirstName string
	LastName  string
	ExpiresAt time.Time // absolute expiry from the provider
}

// Profile is the application profile row joined onto a session at login.
type Profile struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Language  *string `json:"language,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []Role    `json:"roles"`
	Profile     *Profile  `json:"profile,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HasRole reports whether the session carries the given role.
// A session with no roles is still authenticated; it just fails every check.
func (s Session) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the session carries at least one of the given
// roles. An empty required set never matches.
func (s Session) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

// DisplayNameFor derives the user-facing name: profile first name (plus last
// name when present), else the email local-part, else "User".
func DisplayNameFor(email string, profile *Profile) string {
	if profile != nil && profile.FirstName != nil && *profile.FirstName != "" {
		name := *profile.FirstName
		if profile.LastName != nil && *profile.LastName != "" {
			name += " " + *profile.LastName
		}
		return name
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "User"
}
