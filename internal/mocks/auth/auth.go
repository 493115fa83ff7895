package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.SSOProvider      = (*MockSSOProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.RoleSource       = (*StaticRoleSource)(nil)
	_ ports.ProfileSource    = (*StaticProfileSource)(nil)
)

// MockIdentityProvider simulates an identity backend for tests.
type MockIdentityProvider struct {
	SignInFunc  func(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error)
	SignUpFunc  func(ctx context.Context, in ports.SignupInput) (domainauth.Identity, error)
	SignOutFunc func(ctx context.Context, userID string) error

	// DefaultUser is returned by SignIn/SignUp when no func override is set.
	DefaultUser domainauth.Identity
	// Password, when set, is required for SignIn to succeed.
	Password string

	mu          sync.Mutex
	signOutLog  []string
	signInCalls int
}

// NewMockIdentityProvider creates a MockIdentityProvider with sensible defaults.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			Email:     "mock.user@example.com",
			FirstName: "Mock",
			LastName:  "User",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, creds)
	}

	m.mu.Lock()
	m.signInCalls++
	m.mu.Unlock()

	if m.Password != "" && creds.Password != m.Password {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
	}
	identity := m.DefaultUser
	if creds.Email != "" {
		identity.Email = creds.Email
	}
	return identity, nil
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, in ports.SignupInput) (domainauth.Identity, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, in)
	}
	identity := m.DefaultUser
	identity.Email = in.Email
	identity.FirstName = in.FirstName
	identity.LastName = in.LastName
	return identity, nil
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, userID string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signOutLog = append(m.signOutLog, userID)
	return nil
}

// SignOutCalls returns the user IDs SignOut was called with.
func (m *MockIdentityProvider) SignOutCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.signOutLog...)
}

// SignInCalls returns how many times SignIn ran without an override.
func (m *MockIdentityProvider) SignInCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signInCalls
}

// MockSSOProvider simulates an OIDC provider with deterministic state/nonce.
type MockSSOProvider struct {
	BeginFunc    func(ctx context.Context, in ports.SSOBeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.SSOExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockSSOProvider creates a MockSSOProvider with sensible defaults.
func NewMockSSOProvider() *MockSSOProvider {
	return &MockSSOProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-operator-1",
			Email:     "operator@example.com",
			FirstName: "Op",
			LastName:  "Erator",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockSSOProvider) Begin(ctx context.Context, in ports.SSOBeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()
	return m.AuthURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

func (m *MockSSOProvider) Exchange(ctx context.Context, in ports.SSOExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("code is required")
	}
	return m.DefaultUser, nil
}

// MemorySessionStore is an in-memory SessionStore for tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session

	// FailSave, when set, is returned from Save.
	FailSave error
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

// ErrSessionNotFound is returned when a session is not in the store.
var ErrSessionNotFound = errors.New("session not found")

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StaticRoleSource returns a fixed grant list per user ID.
type StaticRoleSource struct {
	Grants map[string][]domainauth.RoleGrant
	// Err, when set, is returned for every lookup.
	Err error
}

func (s *StaticRoleSource) RolesForUser(_ context.Context, userID string) ([]domainauth.RoleGrant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Grants[userID], nil
}

// StaticProfileSource returns a fixed profile per user ID.
type StaticProfileSource struct {
	Profiles map[string]*domainauth.Profile
	// Err, when set, is returned for every lookup.
	Err error
}

func (s *StaticProfileSource) ProfileForUser(_ context.Context, userID string) (*domainauth.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Profiles[userID], nil
}
