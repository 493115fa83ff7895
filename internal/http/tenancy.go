package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/plugashop/storefront/internal/domain/tenant"
)

// TenantResolver is the slice of the tenant service the middleware needs.
type TenantResolver interface {
	Resolve(ctx context.Context, hostname string, query url.Values) (tenant.Tenant, tenant.Via, error)
}

// TenantResolution returns a middleware that maps the request host to a
// tenant and attaches it to the request context. Every page and API route
// runs under exactly one store; a resolution failure (no active stores, or
// a database outage with a cold cache) is a hard 503.
func TenantResolution(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := requestHostname(r)
			resolved, _, err := resolver.Resolve(r.Context(), host, r.URL.Query())
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusServiceUnavailable,
					ErrCode: "store_unavailable",
					Err:     errors.New("no store available for this host"),
				})
				return
			}
			ctx := SetTenantInContext(r.Context(), resolved)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireTenant returns the tenant for the request or writes a 503 and
// reports false. The tenant middleware guarantees one on wired routes; this
// guards handlers mounted without it.
func requireTenant(w http.ResponseWriter, r *http.Request) (tenant.Tenant, bool) {
	t, ok := GetTenantFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "store_unavailable",
			Err:     errors.New("no store resolved for this request"),
		})
		return tenant.Tenant{}, false
	}
	return t, true
}

// requestHostname strips any port from the request host.
func requestHostname(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return r.Host
}
