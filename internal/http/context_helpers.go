package httpx

import (
	"context"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/domain/tenant"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the user session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// tenantKey carries the resolved store for the current request.
type tenantKey struct{}

// SetTenantInContext stores the request's resolved store.
func SetTenantInContext(ctx context.Context, t tenant.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// GetTenantFromContext returns the resolved store and whether resolution ran.
// Every route behind the tenant middleware sees ok=true unless no stores
// exist at all.
func GetTenantFromContext(ctx context.Context) (tenant.Tenant, bool) {
	if t, ok := ctx.Value(tenantKey{}).(tenant.Tenant); ok {
		return t, true
	}
	return tenant.Tenant{}, false
}

// langKey carries the negotiated display language for the current request.
type langKey struct{}

// SetLangInContext stores the request language tag.
func SetLangInContext(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// GetLangFromContext returns the request language, defaulting to the
// platform default when the middleware did not run.
func GetLangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return defaultLang
}
