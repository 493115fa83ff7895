package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

// Credentials carries a password sign-in request.
type Credentials struct {
	Email    string
	Password string
}

// SignupInput carries a sign-up request. First and last name are optional
// and seed the profile row.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// IdentityProvider authenticates customers against an identity backend
// (hosted GoTrue-compatible API, local table, or a dev stub).
type IdentityProvider interface {
	// SignIn verifies the credentials and returns the authenticated identity.
	SignIn(ctx context.Context, creds Credentials) (domainauth.Identity, error)

	// SignUp registers a new account and returns its identity. Providers that
	// require email confirmation still return the identity; the caller
	// decides whether to establish a session.
	SignUp(ctx context.Context, in SignupInput) (domainauth.Identity, error)

	// SignOut revokes any provider-side session state for the user. A global
	// sign-out before login clears stale artifacts from an uncleanly
	// terminated prior session; failures are non-fatal.
	SignOut(ctx context.Context, userID string) error
}

// SSOBeginInput carries inputs for initiating an operator SSO flow.
type SSOBeginInput struct {
	RedirectURL string
}

// SSOExchangeInput groups parameters for the code/token exchange.
type SSOExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOProvider initiates and completes an OIDC login flow for back-office
// operators.
type SSOProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in SSOBeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the authenticated identity.
	Exchange(ctx context.Context, in SSOExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleSource looks up the role grants for a user. The lookup fails open:
// callers treat an error as an empty grant list.
type RoleSource interface {
	RolesForUser(ctx context.Context, userID string) ([]domainauth.RoleGrant, error)
}

// ProfileSource looks up the profile row for a user. A missing profile is
// reported as a nil profile, not an error.
type ProfileSource interface {
	ProfileForUser(ctx context.Context, userID string) (*domainauth.Profile, error)
}
