package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/plugashop/storefront/internal/domain/tenant"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTenant() tenant.Tenant {
	return tenant.Tenant{
		ID:     "store-1",
		Name:   "Demo Shop",
		Slug:   "demo",
		Domain: "demo.example.com",
		Logo:   tenant.DefaultLogo,
		Theme:  tenant.DefaultTheme(),
	}
}

// withTenant returns a copy of the request carrying a resolved tenant, the
// way the tenancy middleware would.
func withTenant(r *http.Request, t tenant.Tenant) *http.Request {
	return r.WithContext(SetTenantInContext(r.Context(), t))
}

// doJSON runs a handler against a request and returns the recorder.
func doJSON(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}
