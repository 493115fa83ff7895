// Package localauth authenticates customers against the local auth_users
// table with bcrypt password hashes. It is the self-hosted alternative to
// the hosted identity API.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/plugashop/storefront/internal/data"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/ports"
)

const minPasswordLength = 8

// Provider implements ports.IdentityProvider backed by Postgres.
type Provider struct {
	users           *data.UserRepo
	sessionDuration time.Duration
	bcryptCost      int
}

// ProviderOptions groups dependencies for Provider.
type ProviderOptions struct {
	Users           *data.UserRepo // Required
	SessionDuration time.Duration  // default 24h when zero
	BcryptCost      int            // default bcrypt.DefaultCost when zero
}

// NewProvider constructs a local identity provider.
func NewProvider(opts ProviderOptions) (*Provider, error) {
	if opts.Users == nil {
		return nil, errors.New("localauth: user repository is required")
	}
	dur := opts.SessionDuration
	if dur == 0 {
		dur = 24 * time.Hour
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{users: opts.Users, sessionDuration: dur, bcryptCost: cost}, nil
}

// SignIn verifies credentials against the stored bcrypt hash. Unknown email
// and wrong password return the same error so the response doesn't reveal
// which accounts exist.
func (p *Provider) SignIn(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("email and password are required")
	}

	user, err := p.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
		}
		return domainauth.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
	}

	return domainauth.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(p.sessionDuration),
	}, nil
}

// SignUp registers a new local account.
func (p *Provider) SignUp(ctx context.Context, in ports.SignupInput) (domainauth.Identity, error) {
	if in.Email == "" {
		return domainauth.Identity{}, apperrors.ValidationField("email", "email is required")
	}
	if len(in.Password) < minPasswordLength {
		return domainauth.Identity{}, apperrors.ValidationField("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.bcryptCost)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := p.users.Create(ctx, in.Email, string(hash))
	if err != nil {
		if errors.Is(err, data.ErrEmailExists) {
			return domainauth.Identity{}, apperrors.Conflict("email already registered")
		}
		return domainauth.Identity{}, fmt.Errorf("create user: %w", err)
	}

	return domainauth.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ExpiresAt: time.Now().Add(p.sessionDuration),
	}, nil
}

// SignOut is a no-op: local sessions live only in the session store, which
// the service layer clears itself.
func (p *Provider) SignOut(_ context.Context, _ string) error {
	return nil
}
