package httpx

import (
	"context"
	"net/http"

	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/service"
)

// CatalogServiceInterface defines the catalog operations the handlers use.
type CatalogServiceInterface interface {
	Home(ctx context.Context, storeID, lang string) (*service.HomeView, error)
	ListProducts(ctx context.Context, storeID, lang string, opts model.ProductsListOptions) ([]model.ProductView, error)
	GetProduct(ctx context.Context, storeID, slug, lang string) (*model.ProductView, error)
	ListCategories(ctx context.Context, storeID, lang string) ([]model.CategoryView, error)
}

// StorefrontHandlers serves the tenant-scoped catalog API.
type StorefrontHandlers struct {
	Catalog CatalogServiceInterface
}

const (
	defaultProductsPageSize = 24
	maxProductsPageSize     = 100
)

// StoreInfo handles GET /api/storefront. It describes the store the request
// resolved to: branding, theme, and the active language.
func (h *StorefrontHandlers) StoreInfo(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"store":    t,
		"language": GetLangFromContext(r.Context()),
	})
}

// ListProducts handles GET /api/products.
func (h *StorefrontHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}
	lang := GetLangFromContext(r.Context())

	limit, offset := ParseLimitOffset(r, defaultProductsPageSize, maxProductsPageSize)
	opts := model.ProductsListOptions{
		Limit:  limit,
		Offset: offset,
		Sort:   r.URL.Query().Get("sort"),
	}
	if r.URL.Query().Get("featured") == "true" {
		featured := true
		opts.Featured = &featured
	}

	products, err := h.Catalog.ListProducts(r.Context(), t.ID, lang, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if products == nil {
		products = []model.ProductView{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProduct handles GET /api/products/{slug}.
func (h *StorefrontHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}

	product, err := h.Catalog.GetProduct(r.Context(), t.ID, r.PathValue("slug"), GetLangFromContext(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /api/categories.
func (h *StorefrontHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}

	categories, err := h.Catalog.ListCategories(r.Context(), t.ID, GetLangFromContext(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if categories == nil {
		categories = []model.CategoryView{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
