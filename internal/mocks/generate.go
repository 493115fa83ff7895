// Package mocks provides mock implementations for testing the storefront.
//
// This package uses go.uber.org/mock (gomock) for type-safe mocks of the
// repository interfaces. The generated files are checked in; after changing
// an interface, regenerate with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockTenantRepository(ctrl)
//	repo.EXPECT().ListActive(gomock.Any()).Return(tenants, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=tenant_repository_mock.go github.com/plugashop/storefront/internal/core TenantRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=product_repository_mock.go github.com/plugashop/storefront/internal/core ProductRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=category_repository_mock.go github.com/plugashop/storefront/internal/core CategoryRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=section_repository_mock.go github.com/plugashop/storefront/internal/core SectionRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=order_repository_mock.go github.com/plugashop/storefront/internal/core OrderRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cart_store_mock.go github.com/plugashop/storefront/internal/core CartStore,CartReaperStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/plugashop/storefront/internal/core CacheRepository
