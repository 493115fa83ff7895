package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/domain/tenant"
	"github.com/plugashop/storefront/internal/service"
)

type stubCatalogService struct {
	home     *service.HomeView
	products []model.ProductView
}

func (s *stubCatalogService) Home(context.Context, string, string) (*service.HomeView, error) {
	if s.home != nil {
		return s.home, nil
	}
	return &service.HomeView{}, nil
}

func (s *stubCatalogService) ListProducts(
	context.Context, string, string, model.ProductsListOptions,
) ([]model.ProductView, error) {
	return s.products, nil
}

func (s *stubCatalogService) GetProduct(context.Context, string, string, string) (*model.ProductView, error) {
	if len(s.products) == 0 {
		return nil, assert.AnError
	}
	return &s.products[0], nil
}

func (s *stubCatalogService) ListCategories(context.Context, string, string) ([]model.CategoryView, error) {
	return nil, nil
}

type stubOrderService struct{}

func (stubOrderService) Checkout(context.Context, service.CheckoutParams) (*model.Order, error) {
	return &model.Order{ID: "o1", OrderNumber: "ORD-20260831-ABCDEF"}, nil
}

func (stubOrderService) ListByUser(context.Context, string, model.OrdersListOptions) ([]model.Order, error) {
	return nil, nil
}

func (stubOrderService) ListByStore(context.Context, string, model.OrdersListOptions) ([]model.Order, error) {
	return nil, nil
}

func (stubOrderService) ItemsForOrder(context.Context, string) ([]model.OrderItem, error) {
	return nil, nil
}

func (stubOrderService) ItemsForUserOrder(context.Context, string, string) ([]model.OrderItem, error) {
	return nil, nil
}

func testRouter(t *testing.T, auth AuthServiceInterface) http.Handler {
	t.Helper()
	if auth == nil {
		auth = &stubAuthService{}
	}
	return NewRouter(RouterServices{
		Tenants: resolverFunc(func(context.Context, string, url.Values) (tenant.Tenant, tenant.Via, error) {
			return testTenant(), tenant.ViaDomain, nil
		}),
		Auth:    auth,
		Catalog: &stubCatalogService{},
		Carts:   &stubCartService{},
		Orders:  stubOrderService{},
		Logger:  testLogger(),
	})
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_NotFoundIsBrowserAware(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	// API miss gets JSON.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/no-such-thing", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])

	// Browser miss gets the HTML error page.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	req.Header.Set("Accept", "text/html")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "404")
}

func TestRouter_HomeServesJSONForAPIClients(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	testRouter(t, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	store, ok := body["store"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Demo Shop", store["name"])
}

func TestRouter_HomeServesHTMLForBrowsers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	testRouter(t, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Demo Shop")
}

func TestRouter_MeRedirectsAnonymousToLogin(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "text/html")
	testRouter(t, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?returnTo=%2Fme", rec.Header().Get("Location"))
}

func TestRouter_AdminAllowsSupportRole(t *testing.T) {
	t.Parallel()

	sess := validSession()
	sess.Roles = []domainauth.Role{domainauth.RoleSupport}
	auth := &stubAuthService{session: sess}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	testRouter(t, auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ConsoleRejectsAdminOnlySession(t *testing.T) {
	t.Parallel()

	sess := validSession()
	sess.Roles = []domainauth.Role{domainauth.RoleAdmin}
	auth := &stubAuthService{session: sess}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	testRouter(t, auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code, "console admits only the console role")
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_ConsoleAllowsConsoleRole(t *testing.T) {
	t.Parallel()

	sess := validSession()
	sess.Roles = []domainauth.Role{domainauth.RoleConsole}
	auth := &stubAuthService{session: sess}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	testRouter(t, auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_StorefrontAPI(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/storefront", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pt-BR", body["language"], "default language without hints")
}

func TestRouter_CartPostRequiresCSRFToken(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	// First GET issues the token cookie.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	token := findCookie(t, rec, CSRFCookieName)
	require.NotNil(t, token)

	// POST without the header is rejected.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token.Value})
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// POST echoing the token passes CSRF and reaches the handler.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token.Value})
	req.Header.Set(CSRFHeaderName, token.Value)
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusForbidden, rec.Code)
}
