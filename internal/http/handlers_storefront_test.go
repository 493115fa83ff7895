package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/internal/domain/model"
	apperrors "github.com/plugashop/storefront/internal/errors"
)

type recordingCatalogService struct {
	stubCatalogService

	gotStoreID string
	gotLang    string
	gotSlug    string
	gotOpts    model.ProductsListOptions
	productErr error
}

func (s *recordingCatalogService) ListProducts(
	_ context.Context, storeID, lang string, opts model.ProductsListOptions,
) ([]model.ProductView, error) {
	s.gotStoreID = storeID
	s.gotLang = lang
	s.gotOpts = opts
	return s.products, nil
}

func (s *recordingCatalogService) GetProduct(
	_ context.Context, storeID, slug, lang string,
) (*model.ProductView, error) {
	s.gotStoreID = storeID
	s.gotSlug = slug
	s.gotLang = lang
	if s.productErr != nil {
		return nil, s.productErr
	}
	return &model.ProductView{Slug: slug, Name: "Mug"}, nil
}

func TestStorefrontHandlers_StoreInfo(t *testing.T) {
	t.Parallel()

	h := &StorefrontHandlers{Catalog: &recordingCatalogService{}}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/storefront", nil), testTenant())
	req = req.WithContext(SetLangInContext(req.Context(), "en"))
	rec := httptest.NewRecorder()
	h.StoreInfo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "en", body["language"])
	store, ok := body["store"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "store-1", store["id"])
	assert.Equal(t, "Demo Shop", store["name"])
}

func TestStorefrontHandlers_StoreInfoWithoutTenant(t *testing.T) {
	t.Parallel()

	h := &StorefrontHandlers{Catalog: &recordingCatalogService{}}
	rec := httptest.NewRecorder()
	h.StoreInfo(rec, httptest.NewRequest(http.MethodGet, "/api/storefront", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStorefrontHandlers_ListProductsOptions(t *testing.T) {
	t.Parallel()

	svc := &recordingCatalogService{}
	h := &StorefrontHandlers{Catalog: svc}

	req := withTenant(httptest.NewRequest(
		http.MethodGet, "/api/products?limit=500&offset=10&sort=price_asc&featured=true", nil), testTenant())
	rec := httptest.NewRecorder()
	h.ListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store-1", svc.gotStoreID)
	assert.Equal(t, maxProductsPageSize, svc.gotOpts.Limit, "limit is clamped")
	assert.Equal(t, 10, svc.gotOpts.Offset)
	assert.Equal(t, "price_asc", svc.gotOpts.Sort)
	require.NotNil(t, svc.gotOpts.Featured)
	assert.True(t, *svc.gotOpts.Featured)
}

func TestStorefrontHandlers_ListProductsDefaults(t *testing.T) {
	t.Parallel()

	svc := &recordingCatalogService{}
	h := &StorefrontHandlers{Catalog: svc}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/products", nil), testTenant())
	rec := httptest.NewRecorder()
	h.ListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultProductsPageSize, svc.gotOpts.Limit)
	assert.Equal(t, 0, svc.gotOpts.Offset)
	assert.Nil(t, svc.gotOpts.Featured)
	assert.Contains(t, rec.Body.String(), `"products":[]`, "empty list, never null")
}

func TestStorefrontHandlers_GetProduct(t *testing.T) {
	t.Parallel()

	svc := &recordingCatalogService{}
	h := &StorefrontHandlers{Catalog: svc}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/products/blue-mug", nil), testTenant())
	req.SetPathValue("slug", "blue-mug")
	rec := httptest.NewRecorder()
	h.GetProduct(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blue-mug", svc.gotSlug)
	assert.Equal(t, "pt-BR", svc.gotLang, "default language without hints")
}

func TestStorefrontHandlers_GetProductNotFound(t *testing.T) {
	t.Parallel()

	svc := &recordingCatalogService{productErr: apperrors.NotFound("product not found")}
	h := &StorefrontHandlers{Catalog: svc}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/products/nope", nil), testTenant())
	req.SetPathValue("slug", "nope")
	rec := httptest.NewRecorder()
	h.GetProduct(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
