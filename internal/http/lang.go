package httpx

import (
	"net/http"

	"github.com/plugashop/storefront/internal/domain/i18n"
)

const (
	langCookieName = "lang"
	defaultLang    = "pt-BR"
)

// LanguageDetection returns a middleware that picks the display language for
// the request: an explicit ?lang= wins and is persisted in a cookie, then
// the cookie, then Accept-Language negotiation. Unsupported values fall
// through to the next source.
func LanguageDetection(cookieDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLang(w, r, cookieDomain)
			ctx := SetLangInContext(r.Context(), lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLang(w http.ResponseWriter, r *http.Request, cookieDomain string) string {
	if q := r.URL.Query().Get("lang"); q != "" && i18n.IsSupported(q) {
		setLangCookie(w, r, q, cookieDomain)
		return q
	}
	if c, err := r.Cookie(langCookieName); err == nil && i18n.IsSupported(c.Value) {
		return c.Value
	}
	return i18n.MatchLanguage(r.Header.Get("Accept-Language"))
}

func setLangCookie(w http.ResponseWriter, r *http.Request, lang, cookieDomain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Path:     "/",
		Domain:   cookieDomain,
		HttpOnly: false, // read by frontend scripts for locale-aware formatting
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   3600 * 24 * 365,
	})
}
