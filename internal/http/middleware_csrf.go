package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
)

const (
	// CSRFCookieName is the name of the cookie storing the CSRF token.
	CSRFCookieName = "csrf_token"
	// CSRFHeaderName is the header clients must echo the token back in.
	CSRFHeaderName = "X-Csrf-Token"
	// CSRFFormField is the form field fallback for plain form posts.
	CSRFFormField = "csrf_token"

	csrfTokenBytes = 32
)

// csrfTokenKey is an unexported context key for the per-request CSRF token.
type csrfTokenKey struct{}

// CSRFTokenFromContext returns the CSRF token for the current request,
// for embedding in rendered forms.
func CSRFTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// CSRFProtection implements the double-submit cookie pattern. Safe methods
// get a token cookie issued; mutating methods must echo the cookie value in
// the X-Csrf-Token header or csrf_token form field.
func CSRFProtection(cookieDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ensureCSRFCookie(w, r, cookieDomain)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "internal_error",
					Err:     errors.New("internal server error"),
				})
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}
			if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "csrf_token_mismatch",
					Err:     errors.New("invalid or missing CSRF token"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ensureCSRFCookie returns the existing token cookie or issues a new one.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request, cookieDomain string) (string, error) {
	if c, err := r.Cookie(CSRFCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	// Readable by JS so SPA-style fetches can echo it in the header.
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cookieDomain,
		HttpOnly: false,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}
