package devauth

// Package devauth provides a config-driven identity provider for local
// development. It accepts any password and derives stable user IDs from the
// email so roles and profiles seeded by devseed keep matching across runs.

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/ports"
)

// devUserNamespace keeps derived IDs stable across restarts.
var devUserNamespace = uuid.MustParse("9a175f2e-6b1c-4c26-8f6d-3a56a1c0e9d4")

// Config controls the dev auth provider behavior.
type Config struct {
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) *Provider {
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{sessionDuration: dur}
}

// UserIDForEmail returns the deterministic dev user ID for an email.
// Exported so devseed can grant roles to the same IDs sign-in will produce.
func UserIDForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(devUserNamespace, []byte(normalized)).String()
}

// SignIn accepts any non-empty credentials.
func (p *Provider) SignIn(_ context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("email and password are required")
	}
	return p.identityFor(creds.Email), nil
}

// SignUp behaves like SignIn; there is no account state to create.
func (p *Provider) SignUp(_ context.Context, in ports.SignupInput) (domainauth.Identity, error) {
	if in.Email == "" || in.Password == "" {
		return domainauth.Identity{}, apperrors.Validation("email and password are required")
	}
	identity := p.identityFor(in.Email)
	identity.FirstName = in.FirstName
	identity.LastName = in.LastName
	return identity, nil
}

// SignOut is a no-op for the dev provider.
func (p *Provider) SignOut(_ context.Context, _ string) error {
	return nil
}

func (p *Provider) identityFor(email string) domainauth.Identity {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return domainauth.Identity{
		UserID:    UserIDForEmail(normalized),
		Email:     normalized,
		ExpiresAt: time.Now().Add(p.sessionDuration),
	}
}
