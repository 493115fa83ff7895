package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/ports"
	"github.com/plugashop/storefront/internal/service"
)

// stubAuthService plays back canned auth results.
type stubAuthService struct {
	session    *domainauth.Session
	loginErr   error
	signupErr  error
	ssoResult  *service.BeginSSOResult
	ssoErr     error
	gotCreds   ports.Credentials
	gotSignup  ports.SignupInput
	loggedOut  string
	getSession func(string) (*domainauth.Session, error)
}

func (s *stubAuthService) Login(_ context.Context, creds ports.Credentials) (*domainauth.Session, error) {
	s.gotCreds = creds
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session, nil
}

func (s *stubAuthService) Signup(_ context.Context, in ports.SignupInput) (*domainauth.Session, error) {
	s.gotSignup = in
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return s.session, nil
}

func (s *stubAuthService) BeginSSO(context.Context, string) (*service.BeginSSOResult, error) {
	return s.ssoResult, s.ssoErr
}

func (s *stubAuthService) CompleteSSO(context.Context, service.CompleteSSOInput) (*domainauth.Session, error) {
	return s.session, s.ssoErr
}

func (s *stubAuthService) GetSession(_ context.Context, id string) (*domainauth.Session, error) {
	if s.getSession != nil {
		return s.getSession(id)
	}
	if s.session != nil && s.session.ID == id {
		return s.session, nil
	}
	return nil, apperrors.Unauthorized("session expired")
}

func (s *stubAuthService) Logout(_ context.Context, sessionID, _ string) error {
	s.loggedOut = sessionID
	return nil
}

func validSession() *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-1",
		UserID:      "user-1",
		Email:       "shopper@example.com",
		DisplayName: "Shopper",
		Roles:       []domainauth.Role{domainauth.RoleUser},
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
}

func TestAuthHandlers_LoginSetsSessionCookie(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	body := `{"email":"Shopper@Example.com","password":"hunter22"}`
	rec := doJSON(h.Login, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shopper@example.com", svc.gotCreds.Email, "email is normalized")

	cookie := findCookie(t, rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "sess-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)
}

func TestAuthHandlers_LoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{loginErr: apperrors.Unauthorized("invalid email or password")}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	body := `{"email":"shopper@example.com","password":"wrong"}`
	rec := doJSON(h.Login, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, findCookie(t, rec, SessionCookieName))
}

func TestAuthHandlers_LoginRequiresCredentials(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{}, Logger: testLogger()}
	rec := doJSON(h.Login, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlers_LoginDeletesStaleSession(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	body := `{"email":"shopper@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "old-sess"})
	rec := doJSON(h.Login, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old-sess", svc.loggedOut, "previous session is removed before the new cookie is set")
}

func TestAuthHandlers_LoginKeepsMatchingSession(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	body := `{"email":"shopper@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: validSession().ID})
	rec := doJSON(h.Login, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.loggedOut)
}

func TestAuthHandlers_SignupCreatedAndLoggedIn(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	body := `{"email":"new@example.com","password":"hunter22","first_name":"  Ana ","last_name":"Silva"}`
	rec := doJSON(h.Signup, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Ana", svc.gotSignup.FirstName)
	require.NotNil(t, findCookie(t, rec, SessionCookieName))
}

func TestAuthHandlers_SignupRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{}, Logger: testLogger()}

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"email":"new@example.com","password":"short"}`},
		{"malformed email", `{"email":"not-an-email","password":"hunter22"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(h.Signup, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid_fields")
		})
	}
}

func TestAuthHandlers_LoginFormRedirects(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	form := url.Values{
		"email":    {"shopper@example.com"},
		"password": {"hunter22"},
		"returnTo": {"/me"},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doJSON(h.LoginForm, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/me", rec.Header().Get("Location"))
	require.NotNil(t, findCookie(t, rec, SessionCookieName))
}

func TestAuthHandlers_LoginFormFailureBouncesBack(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{loginErr: apperrors.Unauthorized("invalid email or password")}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	form := url.Values{
		"email":    {"shopper@example.com"},
		"password": {"wrong"},
		"returnTo": {"/me"},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doJSON(h.LoginForm, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "invalid_credentials", loc.Query().Get("error"))
	assert.Equal(t, "/me", loc.Query().Get("returnTo"))
}

func TestAuthHandlers_SignupFormEmailTaken(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{signupErr: apperrors.Conflict("email already registered")}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	form := url.Values{"email": {"taken@example.com"}, "password": {"hunter22"}}
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doJSON(h.SignupForm, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=email_taken")
}

func TestAuthHandlers_StatusUnauthenticated(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{}, Logger: testLogger()}
	rec := doJSON(h.Status, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
}

func TestAuthHandlers_StatusWithValidSession(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{session: validSession()}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := doJSON(h.Status, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "shopper@example.com", user["email"])
}

func TestAuthHandlers_StatusExpiredSessionClearsCookie(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec := doJSON(h.Status, req)

	cookie := findCookie(t, rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge, "stale cookie is expired on the client")
}

func TestAuthHandlers_LogoutClearsSession(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{session: validSession()}
	h := &AuthHandlers{Svc: svc, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := doJSON(h.Logout, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", svc.loggedOut)

	cookie := findCookie(t, rec, SessionCookieName)
	require.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandlers_SSOCallbackValidatesState(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{session: validSession()}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=mismatch", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	rec := doJSON(h.SSOCallback, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestAuthHandlers_SSOCallbackSuccess(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{session: validSession()}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "st1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "n1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/console"})
	rec := doJSON(h.SSOCallback, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/console", rec.Header().Get("Location"))
	require.NotNil(t, findCookie(t, rec, SessionCookieName))
}

func TestAuthHandlers_BeginSSONotConfigured(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubAuthService{ssoErr: service.ErrSSONotConfigured}, Logger: testLogger()}
	rec := doJSON(h.BeginSSO, httptest.NewRequest(http.MethodGet, "/auth/sso/login", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
