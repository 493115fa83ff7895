package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication backend for the application.
type AuthMode string

const (
	// AuthModeGoTrue authenticates against a GoTrue-compatible API.
	AuthModeGoTrue AuthMode = "gotrue"
	// AuthModeLocal authenticates against the local auth_users table.
	AuthModeLocal AuthMode = "local"
	// AuthModeSSO authenticates via OAuth/OIDC single sign-on.
	AuthModeSSO AuthMode = "sso"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "gotrue", "local", "sso", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: gotrue, local, sso, mock)", v)
	}
}

// GoTrueConfig contains GoTrue API configuration (used when Mode=gotrue).
type GoTrueConfig struct {
	// URL is the base URL of the GoTrue auth API, e.g. "http://localhost:9999/auth/v1".
	URL string `env:"URL"`

	// AnonKey is the public API key sent as the apikey header.
	AnonKey string `env:"ANON_KEY"`
}

// SSOConfig contains OAuth/OIDC configuration (used when Mode=sso).
type SSOConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"        envDefault:"openid profile email"`
	IssuerURL    string `env:"ISSUER_URL"`
}

// LocalAuthConfig contains local password authentication configuration
// (used when Mode=local).
type LocalAuthConfig struct {
	// BcryptCost is the bcrypt work factor for new password hashes.
	// Zero means the bcrypt default.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"local"`

	// SessionDuration is how long a browser session stays valid.
	SessionDuration time.Duration `env:"AUTH_SESSION_DURATION" envDefault:"24h"`

	// GoTrue configuration (used when Mode=gotrue).
	GoTrue GoTrueConfig `envPrefix:"GOTRUE_"`

	// SSO configuration (used when Mode=sso).
	SSO SSOConfig `envPrefix:"SSO_"`

	// Local configuration (used when Mode=local).
	Local LocalAuthConfig `envPrefix:"LOCAL_AUTH_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionDuration < time.Minute {
		a.SessionDuration = time.Minute
	}
}
