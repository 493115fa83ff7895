package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

// sessionReaderFunc adapts a function to AuthSessionReader.
type sessionReaderFunc func(ctx context.Context, sessionID string) (*domainauth.Session, error)

func (f sessionReaderFunc) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	return f(ctx, sessionID)
}

func fixedSessionReader(sessions map[string]*domainauth.Session) sessionReaderFunc {
	return func(_ context.Context, id string) (*domainauth.Session, error) {
		if s, ok := sessions[id]; ok {
			return s, nil
		}
		return nil, errors.New("session not found")
	}
}

func testSession(roles ...domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-1",
		UserID:      "user-1",
		Email:       "shopper@example.com",
		DisplayName: "Shopper",
		Roles:       roles,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoles_UnauthenticatedBrowserRedirectsToLogin(t *testing.T) {
	t.Parallel()

	auth := fixedSessionReader(nil)
	h := BrowserDetection()(RequireRoles(auth, domainauth.RoleUser)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?returnTo=%2Fme", rec.Header().Get("Location"))
}

func TestRequireRoles_AuthPrecedesRoleCheck(t *testing.T) {
	t.Parallel()

	// No session at all: login redirect, never the fallback, even though the
	// role check would also fail.
	auth := fixedSessionReader(nil)
	h := BrowserDetection()(RequireRoles(auth, domainauth.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?returnTo=%2Fadmin", rec.Header().Get("Location"))
}

func TestRequireRoles_WrongRoleRedirectsToFallback(t *testing.T) {
	t.Parallel()

	auth := fixedSessionReader(map[string]*domainauth.Session{
		"sess-1": testSession(domainauth.RoleUser),
	})
	h := BrowserDetection()(RequireRoles(auth, domainauth.RoleAdmin, domainauth.RoleSupport)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireRoles_AnyOfRolesAllows(t *testing.T) {
	t.Parallel()

	// A support-only session passes a guard that accepts admin or support.
	auth := fixedSessionReader(map[string]*domainauth.Session{
		"sess-1": testSession(domainauth.RoleSupport),
	})
	h := RequireRoles(auth, domainauth.RoleAdmin, domainauth.RoleSupport)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_APIRequestsGetJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sessions   map[string]*domainauth.Session
		cookie     string
		wantStatus int
	}{
		{
			name:       "unauthenticated gets 401",
			sessions:   nil,
			cookie:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong role gets 403",
			sessions: map[string]*domainauth.Session{
				"sess-1": testSession(domainauth.RoleUser),
			},
			cookie:     "sess-1",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := BrowserDetection()(RequireRoles(fixedSessionReader(tt.sessions), domainauth.RoleAdmin)(okHandler()))
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestOptionalAuth_AttachesSessionWhenPresent(t *testing.T) {
	t.Parallel()

	auth := fixedSessionReader(map[string]*domainauth.Session{
		"sess-1": testSession(domainauth.RoleUser),
	})

	var got *domainauth.Session
	h := OptionalAuth(auth)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = GetUserSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)

	// Without a cookie the request continues with no session.
	got = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
}

func TestSafeRedirectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/me", "/me"},
		{"/me?tab=orders", "/me?tab=orders"},
		{"https://evil.example.com/", "/"},
		{"//evil.example.com/", "/"},
		{"javascript:alert(1)", "/"},
		{"me", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}

func TestIsBrowserRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Accept", "text/html")
	assert.False(t, isBrowserRequest(req), "API paths are never browser requests")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	assert.True(t, isBrowserRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "application/json")
	assert.False(t, isBrowserRequest(req))
}

func TestRecoverMiddleware(t *testing.T) {
	t.Parallel()

	h := Recover(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIsRequestSecure(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isRequestSecure(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, isRequestSecure(req))

	req.Header.Set("X-Forwarded-Proto", "http, https")
	assert.True(t, isRequestSecure(req))
}
