package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/plugashop/storefront/internal/domain/i18n"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/mocks"
)

type catalogMocks struct {
	products   *mocks.MockProductRepository
	categories *mocks.MockCategoryRepository
	sections   *mocks.MockSectionRepository
}

func newCatalogServiceForTest(t *testing.T, ctrl *gomock.Controller) (*CatalogService, catalogMocks) {
	t.Helper()
	m := catalogMocks{
		products:   mocks.NewMockProductRepository(ctrl),
		categories: mocks.NewMockCategoryRepository(ctrl),
		sections:   mocks.NewMockSectionRepository(ctrl),
	}
	svc, err := NewCatalogService(CatalogServiceOptions{
		Products:   m.products,
		Categories: m.categories,
		Sections:   m.sections,
	})
	require.NoError(t, err)
	return svc, m
}

func TestCatalogService_Home(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newCatalogServiceForTest(t, ctrl)

	hero := &model.StoreSection{
		ID:          "sec1",
		StoreID:     "s1",
		SectionType: model.SectionTypeHero,
		Title:       i18n.Localized(map[string]string{"pt-BR": "Bem-vindo", "en": "Welcome"}),
		Content:     json.RawMessage(`{"image_url": "/hero.jpg", "cta_label": {"en": "Shop now"}, "cta_link": "/products"}`),
	}
	m.sections.EXPECT().ActiveByType(gomock.Any(), "s1", model.SectionTypeHero).Return(hero, nil)
	m.categories.EXPECT().ListByStore(gomock.Any(), "s1").Return([]model.Category{
		{ID: "c1", Slug: "shirts", Name: i18n.Localized(map[string]string{"en": "Shirts"})},
	}, nil)

	featured := model.Product{
		ID: "p1", Slug: "mug", Name: i18n.Plain("Mug"),
		Price: 19.90, InventoryQuantity: 3, IsFeatured: true,
	}
	newest := model.Product{
		ID: "p2", Slug: "cap", Name: i18n.Plain("Cap"), Price: 9.90,
	}
	m.products.EXPECT().ListByStore(gomock.Any(), "s1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, opts model.ProductsListOptions) ([]model.Product, error) {
			if opts.Featured != nil && *opts.Featured {
				return []model.Product{featured}, nil
			}
			return []model.Product{newest}, nil
		}).Times(2)
	m.products.EXPECT().PrimaryImages(gomock.Any(), []string{"p1"}).
		Return(map[string]model.ProductImage{"p1": {ProductID: "p1", URL: "/mug.jpg"}}, nil)
	m.products.EXPECT().PrimaryImages(gomock.Any(), []string{"p2"}).Return(nil, nil)

	view, err := svc.Home(context.Background(), "s1", "en")
	require.NoError(t, err)

	require.NotNil(t, view.Hero)
	assert.Equal(t, "Welcome", view.Hero.Title)
	assert.Equal(t, "/hero.jpg", view.Hero.ImageURL)
	assert.Equal(t, "Shop now", view.Hero.CTALabel)
	assert.Equal(t, "/products", view.Hero.CTALink)

	require.Len(t, view.Categories, 1)
	assert.Equal(t, "Shirts", view.Categories[0].Name)

	require.Len(t, view.Featured, 1)
	assert.Equal(t, "Mug", view.Featured[0].Name)
	assert.Equal(t, "/mug.jpg", view.Featured[0].Image)
	assert.True(t, view.Featured[0].InStock)

	require.Len(t, view.Newest, 1)
	assert.Equal(t, "Cap", view.Newest[0].Name)
	assert.False(t, view.Newest[0].InStock)
}

func TestCatalogService_HomeWithoutHero(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newCatalogServiceForTest(t, ctrl)

	m.sections.EXPECT().ActiveByType(gomock.Any(), "s1", model.SectionTypeHero).Return(nil, nil)
	m.categories.EXPECT().ListByStore(gomock.Any(), "s1").Return(nil, nil)
	m.products.EXPECT().ListByStore(gomock.Any(), "s1", gomock.Any()).Return(nil, nil).Times(2)
	m.products.EXPECT().PrimaryImages(gomock.Any(), []string{}).Return(nil, nil).Times(2)

	view, err := svc.Home(context.Background(), "s1", "en")
	require.NoError(t, err)
	assert.Nil(t, view.Hero)
	assert.Empty(t, view.Categories)
	assert.Empty(t, view.Featured)
	assert.Empty(t, view.Newest)
}

func TestCatalogService_ListProducts_ImageLookupFailsOpen(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newCatalogServiceForTest(t, ctrl)

	m.products.EXPECT().ListByStore(gomock.Any(), "s1", gomock.Any()).Return([]model.Product{
		{ID: "p1", Slug: "mug", Name: i18n.Plain("Mug"), Price: 19.90},
	}, nil)
	m.products.EXPECT().PrimaryImages(gomock.Any(), []string{"p1"}).
		Return(nil, assert.AnError)

	views, err := svc.ListProducts(context.Background(), "s1", "en", model.ProductsListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Image)
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newCatalogServiceForTest(t, ctrl)

	m.products.EXPECT().GetBySlug(gomock.Any(), "s1", "mug").Return(&model.Product{
		ID:   "p1",
		Slug: "mug",
		Name: i18n.Localized(map[string]string{"pt-BR": "Caneca", "en": "Mug"}),
	}, nil)
	m.products.EXPECT().PrimaryImages(gomock.Any(), []string{"p1"}).Return(nil, nil)

	view, err := svc.GetProduct(context.Background(), "s1", "mug", "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "Caneca", view.Name)
}
