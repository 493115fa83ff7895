package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/domain/i18n"
	"github.com/plugashop/storefront/internal/domain/model"
)

const (
	homeFeaturedLimit = 8
	homeNewestLimit   = 8
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Products   core.ProductRepository  // Required
	Categories core.CategoryRepository // Required
	Sections   core.SectionRepository  // Required
	Logger     *slog.Logger            // Optional
}

// CatalogService assembles storefront read models: the home payload, product
// listings, and product detail, all resolved to the request language.
type CatalogService struct {
	products   core.ProductRepository
	categories core.CategoryRepository
	sections   core.SectionRepository
	logger     *slog.Logger
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) (*CatalogService, error) {
	if opts.Products == nil {
		return nil, errors.New("ProductRepository is required")
	}
	if opts.Categories == nil {
		return nil, errors.New("CategoryRepository is required")
	}
	if opts.Sections == nil {
		return nil, errors.New("SectionRepository is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "catalog_service")
	}
	return &CatalogService{
		products:   opts.Products,
		categories: opts.Categories,
		sections:   opts.Sections,
		logger:     logger,
	}, nil
}

// HomeView is everything the storefront home page renders for one tenant.
type HomeView struct {
	Hero       *model.HeroView      `json:"hero,omitempty"`
	Categories []model.CategoryView `json:"categories"`
	Featured   []model.ProductView  `json:"featured"`
	Newest     []model.ProductView  `json:"newest"`
}

// Home builds the home payload for a store. A missing or unreadable hero
// section degrades to no hero; catalog read failures are fatal.
func (s *CatalogService) Home(ctx context.Context, storeID, lang string) (*HomeView, error) {
	hero, err := s.heroView(ctx, storeID, lang)
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "hero section lookup failed", "store_id", storeID, "error", err)
	}

	categories, err := s.ListCategories(ctx, storeID, lang)
	if err != nil {
		return nil, err
	}

	featuredOnly := true
	featured, err := s.ListProducts(ctx, storeID, lang, model.ProductsListOptions{
		Limit:    homeFeaturedLimit,
		Featured: &featuredOnly,
		Sort:     "featured",
	})
	if err != nil {
		return nil, err
	}

	newest, err := s.ListProducts(ctx, storeID, lang, model.ProductsListOptions{
		Limit: homeNewestLimit,
		Sort:  "newest",
	})
	if err != nil {
		return nil, err
	}

	return &HomeView{
		Hero:       hero,
		Categories: categories,
		Featured:   featured,
		Newest:     newest,
	}, nil
}

// ListProducts returns products projected for the storefront, with the
// primary image joined in and localized fields resolved to lang.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	storeID, lang string,
	opts model.ProductsListOptions,
) ([]model.ProductView, error) {
	products, err := s.products.ListByStore(ctx, storeID, opts)
	if err != nil {
		return nil, err
	}
	images := s.primaryImages(ctx, products)

	views := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p, images, lang))
	}
	return views, nil
}

// GetProduct returns a single active product by slug, projected for the
// storefront.
func (s *CatalogService) GetProduct(ctx context.Context, storeID, slug, lang string) (*model.ProductView, error) {
	product, err := s.products.GetBySlug(ctx, storeID, slug)
	if err != nil {
		return nil, err
	}
	images := s.primaryImages(ctx, []model.Product{*product})
	view := productView(*product, images, lang)
	return &view, nil
}

// ListCategories returns the store's active categories in sort order.
func (s *CatalogService) ListCategories(ctx context.Context, storeID, lang string) ([]model.CategoryView, error) {
	categories, err := s.categories.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	views := make([]model.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, model.CategoryView{
			ID:       c.ID,
			Slug:     c.Slug,
			Name:     c.Name.Resolve(lang),
			ImageURL: c.ImageURL,
		})
	}
	return views, nil
}

// heroContent is the type-specific JSON carried in a hero section's content
// column.
type heroContent struct {
	ImageURL string    `json:"image_url"`
	CTALabel i18n.Text `json:"cta_label"`
	CTALink  string    `json:"cta_link"`
}

func (s *CatalogService) heroView(ctx context.Context, storeID, lang string) (*model.HeroView, error) {
	section, err := s.sections.ActiveByType(ctx, storeID, model.SectionTypeHero)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, nil
	}

	view := &model.HeroView{
		Title:    section.Title.Resolve(lang),
		Subtitle: section.Subtitle.Resolve(lang),
	}
	if len(section.Content) > 0 {
		var content heroContent
		if err := json.Unmarshal(section.Content, &content); err != nil {
			return view, err
		}
		view.ImageURL = content.ImageURL
		view.CTALabel = content.CTALabel.Resolve(lang)
		view.CTALink = content.CTALink
	}
	return view, nil
}

// primaryImages is best effort: listings render without images when the
// lookup fails.
func (s *CatalogService) primaryImages(ctx context.Context, products []model.Product) map[string]model.ProductImage {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	images, err := s.products.PrimaryImages(ctx, ids)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "primary image lookup failed", "error", err)
		}
		return nil
	}
	return images
}

func productView(p model.Product, images map[string]model.ProductImage, lang string) model.ProductView {
	view := model.ProductView{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name.Resolve(lang),
		Description:    p.Description.Resolve(lang),
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		InStock:        p.InStock(),
		IsFeatured:     p.IsFeatured,
	}
	if img, ok := images[p.ID]; ok {
		view.Image = img.URL
	}
	return view
}
