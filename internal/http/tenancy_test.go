package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/domain/tenant"
)

type resolverFunc func(ctx context.Context, hostname string, query url.Values) (tenant.Tenant, tenant.Via, error)

func (f resolverFunc) Resolve(
	ctx context.Context,
	hostname string,
	query url.Values,
) (tenant.Tenant, tenant.Via, error) {
	return f(ctx, hostname, query)
}

func TestTenantResolution_AttachesTenant(t *testing.T) {
	t.Parallel()

	var gotHost string
	var gotQuery url.Values
	resolver := resolverFunc(func(_ context.Context, hostname string, query url.Values) (tenant.Tenant, tenant.Via, error) {
		gotHost = hostname
		gotQuery = query
		return testTenant(), tenant.ViaDomain, nil
	})

	var resolved tenant.Tenant
	var ok bool
	h := TenantResolution(resolver)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		resolved, ok = GetTenantFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?store=other", nil)
	req.Host = "demo.example.com:8080"
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, "store-1", resolved.ID)
	assert.Equal(t, "demo.example.com", gotHost, "port is stripped before resolution")
	assert.Equal(t, "other", gotQuery.Get("store"))
}

func TestTenantResolution_FailureIs503(t *testing.T) {
	t.Parallel()

	resolver := resolverFunc(func(context.Context, string, url.Values) (tenant.Tenant, tenant.Via, error) {
		return tenant.Tenant{}, tenant.ViaDefault, assert.AnError
	})

	h := TenantResolution(resolver)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "store_unavailable")
}
