package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider // Required
	SSO      ports.SSOProvider      // Optional: operator SSO flow
	Sessions ports.SessionStore     // Required
	Roles    ports.RoleSource       // Required
	Profiles ports.ProfileSource    // Required
	Logger   *slog.Logger           // Optional
}

// AuthService orchestrates authentication: identity verification, the
// role/profile joins, and session persistence.
type AuthService struct {
	provider ports.IdentityProvider
	sso      ports.SSOProvider
	sessions ports.SessionStore
	roles    ports.RoleSource
	profiles ports.ProfileSource
	logger   *slog.Logger
}

var (
	errSessionExpired = errors.New("session expired")

	// ErrSSONotConfigured is returned when the SSO flow is used without an
	// SSO provider.
	ErrSSONotConfigured = errors.New("sso provider not configured")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Provider == nil {
		return nil, errors.New("IdentityProvider is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionStore is required")
	}
	if opts.Roles == nil {
		return nil, errors.New("RoleSource is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("ProfileSource is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		provider: opts.Provider,
		sso:      opts.SSO,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		profiles: opts.Profiles,
		logger:   logger,
	}, nil
}

// Login verifies credentials and establishes a session. Any stale
// provider-side artifacts from a prior uncleanly-terminated session are
// revoked first; that cleanup is best-effort and never blocks the login.
func (s *AuthService) Login(ctx context.Context, creds ports.Credentials) (*domainauth.Session, error) {
	identity, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}

	if signOutErr := s.provider.SignOut(ctx, identity.UserID); signOutErr != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "pre-login signout failed", "error", signOutErr)
	}

	return s.establishSession(ctx, identity)
}

// Signup registers an account and signs the new user straight in.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domainauth.Session, error) {
	identity, err := s.provider.SignUp(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, identity)
}

// establishSession joins roles and profile onto the identity and persists
// the session. Both joins fail open: a role lookup error yields an
// unprivileged session and a profile error yields no profile, because a
// signed-in customer with degraded data beats a login outage.
func (s *AuthService) establishSession(
	ctx context.Context,
	identity domainauth.Identity,
) (*domainauth.Session, error) {
	grants, err := s.roles.RolesForUser(ctx, identity.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "role lookup failed, continuing without roles",
				"user_id", identity.UserID, "error", err)
		}
		grants = nil
	}
	roles := make([]domainauth.Role, 0, len(grants))
	for _, g := range grants {
		roles = append(roles, g.Role)
	}

	profile, err := s.profiles.ProfileForUser(ctx, identity.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "profile lookup failed, continuing without profile",
				"user_id", identity.UserID, "error", err)
		}
		profile = nil
	}

	session := domainauth.Session{
		ID:          uuid.New().String(),
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: domainauth.DisplayNameFor(identity.Email, profile),
		Roles:       roles,
		Profile:     profile,
		ExpiresAt:   identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	return &session, nil
}

// BeginSSOResult contains the result of beginning an SSO flow.
type BeginSSOResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginSSO initiates the operator SSO flow.
func (s *AuthService) BeginSSO(ctx context.Context, redirectURL string) (*BeginSSOResult, error) {
	if s.sso == nil {
		return nil, ErrSSONotConfigured
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.sso.Begin(ctx, ports.SSOBeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso flow: %w", err)
	}
	return &BeginSSOResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteSSOInput groups parameters for completing an SSO flow.
type CompleteSSOInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteSSO exchanges the authorization code and establishes a session
// with the same role and profile joins as a password login.
func (s *AuthService) CompleteSSO(ctx context.Context, in CompleteSSOInput) (*domainauth.Session, error) {
	if s.sso == nil {
		return nil, ErrSSONotConfigured
	}
	if in.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if in.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if in.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.sso.Exchange(ctx, ports.SSOExchangeInput{
		Code:  in.Code,
		State: in.State,
		Nonce: in.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return s.establishSession(ctx, identity)
}

// GetSession retrieves a session by ID, cleaning up expired ones.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// HasRole reports whether the session holds the role. A nil session never
// holds one.
func (s *AuthService) HasRole(session *domainauth.Session, role domainauth.Role) bool {
	return session != nil && session.HasRole(role)
}

// Logout removes the session and revokes provider-side state. Provider
// failures don't fail the logout; the local session is already gone.
func (s *AuthService) Logout(ctx context.Context, sessionID, userID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if userID != "" {
		if err := s.provider.SignOut(ctx, userID); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "provider signout failed", "user_id", userID, "error", err)
		}
	}
	return nil
}
