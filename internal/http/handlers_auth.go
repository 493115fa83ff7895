package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/http/validation"
	"github.com/plugashop/storefront/internal/ports"
	"github.com/plugashop/storefront/internal/service"
)

// emailPattern accepts anything shaped like local@domain.tld. The identity
// provider does the authoritative check.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateSignup checks the sign-up fields and returns per-field messages.
func validateSignup(email, password, firstName, lastName string) map[string]string {
	return validation.New().
		Validate("email", email,
			validation.Required("Email", 254),
			validation.Pattern("Email", emailPattern)).
		Validate("password", password,
			validation.RequiredRange("Password", 8, 72)).
		Validate("first_name", firstName, validation.Optional("First name", 100)).
		Validate("last_name", lastName, validation.Optional("Last name", 100)).
		Errors()
}

// AuthServiceInterface defines the auth service operations the handlers use.
type AuthServiceInterface interface {
	Login(ctx context.Context, creds ports.Credentials) (*domainauth.Session, error)
	Signup(ctx context.Context, in ports.SignupInput) (*domainauth.Session, error)
	BeginSSO(ctx context.Context, redirectURL string) (*service.BeginSSOResult, error)
	CompleteSSO(ctx context.Context, in service.CompleteSSOInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID, userID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupRequest is the body for POST /api/auth/signup.
type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	session, err := h.Svc.Login(r.Context(), ports.Credentials{
		Email:    strings.TrimSpace(strings.ToLower(req.Email)),
		Password: req.Password,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.deleteStaleSession(r, session.ID)
	h.setSessionCookie(w, r, session)
	WriteJSON(w, http.StatusOK, sessionPayload(session))
}

// Signup handles POST /api/auth/signup. A successful sign-up logs the
// customer in immediately.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if fields := validateSignup(req.Email, req.Password, req.FirstName, req.LastName); len(fields) > 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "invalid_fields",
			"fields": fields,
		})
		return
	}

	session, err := h.Svc.Signup(r.Context(), ports.SignupInput{
		Email:     strings.TrimSpace(strings.ToLower(req.Email)),
		Password:  req.Password,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, session)
	WriteJSON(w, http.StatusCreated, sessionPayload(session))
}

// LoginForm handles POST /login, the browser form variant. Failures bounce
// back to the form with an error code in the query rather than a JSON body.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	returnTo := safeRedirectPath(r.FormValue("returnTo"))

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.redirectWithError(w, r, "/login", "missing_credentials", returnTo)
		return
	}

	session, err := h.Svc.Login(r.Context(), ports.Credentials{Email: email, Password: password})
	if err != nil {
		h.redirectWithError(w, r, "/login", "invalid_credentials", returnTo)
		return
	}

	h.deleteStaleSession(r, session.ID)
	h.setSessionCookie(w, r, session)
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// SignupForm handles POST /auth, the browser sign-up form. A successful
// sign-up logs the customer in and sends them home.
func (h *AuthHandlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	if fields := validateSignup(
		email, password, r.FormValue("first_name"), r.FormValue("last_name"),
	); len(fields) > 0 {
		code := "invalid_fields"
		if email == "" || password == "" {
			code = "missing_credentials"
		}
		h.redirectWithError(w, r, "/auth", code, "/")
		return
	}

	session, err := h.Svc.Signup(r.Context(), ports.SignupInput{
		Email:     email,
		Password:  password,
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
	})
	if err != nil {
		code := "signup_failed"
		if apperrors.IsConflict(err) {
			code = "email_taken"
		}
		h.redirectWithError(w, r, "/auth", code, "/")
		return
	}

	h.setSessionCookie(w, r, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandlers) redirectWithError(w http.ResponseWriter, r *http.Request, path, code, returnTo string) {
	q := url.Values{}
	q.Set("error", code)
	if returnTo != "" && returnTo != "/" {
		q.Set("returnTo", returnTo)
	}
	http.Redirect(w, r, path+"?"+q.Encode(), http.StatusSeeOther)
}

// BeginSSO handles GET /auth/sso/login. It redirects to the identity provider and
// stashes state, nonce, and the post-login destination in short-lived cookies.
func (h *AuthHandlers) BeginSSO(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginSSO(r.Context(), redirectURI)
	if err != nil {
		if errors.Is(err, service.ErrSSONotConfigured) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "sso_not_configured",
				Err:     errors.New("single sign-on is not enabled"),
			})
			return
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "sso_begin_failed",
			Err:     errors.New("could not start sign-in"),
		})
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// SSOCallback handles GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_callback",
			Err:     errors.New("code and state parameters are required"),
		})
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	session, err := h.Svc.CompleteSSO(r.Context(), service.CompleteSSOInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "sso_completion_failed",
			Err:     errors.New("could not complete sign-in"),
		})
		return
	}

	h.setSessionCookie(w, r, session)
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	http.Redirect(w, r, h.getPostLoginRedirect(w, r), http.StatusFound)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(SessionCookieName); err == nil {
		userID := ""
		if session, getErr := h.Svc.GetSession(r.Context(), sessionCookie.Value); getErr == nil {
			userID = session.UserID
		}
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value, userID); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, SessionCookieName)

	if IsBrowserRequest(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Status handles GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	payload := sessionPayload(session)
	payload["authenticated"] = true
	WriteJSON(w, http.StatusOK, payload)
}

func sessionPayload(s *domainauth.Session) map[string]any {
	return map[string]any{
		"user": map[string]any{
			"id":           s.UserID,
			"email":        s.Email,
			"display_name": s.DisplayName,
			"roles":        s.Roles,
		},
		"profile":    s.Profile,
		"expires_at": s.ExpiresAt,
	}
}

// deleteStaleSession removes the server-side session behind an existing
// cookie so a fresh login never leaves the previous session alive until it
// expires on its own.
func (h *AuthHandlers) deleteStaleSession(r *http.Request, newSessionID string) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == newSessionID {
		return
	}
	if logoutErr := h.Svc.Logout(r.Context(), cookie.Value, ""); logoutErr != nil {
		h.logger().WarnContext(r.Context(), "stale session cleanup failed", "error", logoutErr)
	}
}

// clearCookie clears a cookie by setting it to expire immediately. It
// mirrors the attributes used when setting cookies so browsers match the
// deletion to the original.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// oauthCookieParams groups values needed to set OAuth cookies.
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores OAuth state, nonce, and the post-login redirect in
// short-lived cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := isRequestSecure(r)
	for name, value := range map[string]string{
		"oauth_state":         p.State,
		"oauth_nonce":         p.Nonce,
		"post_login_redirect": p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})
	}
}

// setSessionCookie writes the session cookie with an expiry matching the
// server-side session.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the
// cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie("post_login_redirect"); err == nil {
		redirectURI = safeRedirectPath(redirectCookie.Value)
		h.clearCookie(w, r, "post_login_redirect")
	}
	return redirectURI
}
