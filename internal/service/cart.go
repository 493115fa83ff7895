package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plugashop/storefront/internal/core"
	"github.com/plugashop/storefront/internal/domain/cart"
	apperrors "github.com/plugashop/storefront/internal/errors"
)

// CartServiceOptions groups dependencies for CartService.
type CartServiceOptions struct {
	Store    core.CartStore         // Required
	Products core.ProductRepository // Required: price and stock live server-side
	Logger   *slog.Logger           // Optional
}

// CartService applies cart mutations as load-mutate-save cycles against the
// cart store. Prices always come from the catalog, never from the client.
type CartService struct {
	store    core.CartStore
	products core.ProductRepository
	logger   *slog.Logger
}

// NewCartService constructs a new CartService.
func NewCartService(opts CartServiceOptions) (*CartService, error) {
	if opts.Store == nil {
		return nil, errors.New("CartStore is required")
	}
	if opts.Products == nil {
		return nil, errors.New("ProductRepository is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "cart_service")
	}
	return &CartService{store: opts.Store, products: opts.Products, logger: logger}, nil
}

// NewCartID returns a fresh opaque cart identifier.
func NewCartID() string {
	return uuid.New().String()
}

// Get loads the cart. A visitor without one gets an empty cart.
func (s *CartService) Get(ctx context.Context, cartID string) (cart.Cart, error) {
	return s.store.Get(ctx, cartID)
}

// AddItem adds one unit of the product to the cart. The line is built from
// the catalog row; an existing line for the product only gains quantity.
// lang picks which localization of the product name is snapshotted.
func (s *CartService) AddItem(
	ctx context.Context,
	cartID, storeID, productSlug, lang string,
) (cart.Cart, error) {
	product, err := s.products.GetBySlug(ctx, storeID, productSlug)
	if err != nil {
		return cart.Cart{}, err
	}
	if !product.InStock() {
		return cart.Cart{}, apperrors.Conflict("product is out of stock")
	}

	image := ""
	if images, imgErr := s.products.PrimaryImages(ctx, []string{product.ID}); imgErr == nil {
		if img, ok := images[product.ID]; ok {
			image = img.URL
		}
	} else if s.logger != nil {
		s.logger.WarnContext(ctx, "primary image lookup failed", "product_id", product.ID, "error", imgErr)
	}

	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}
	c.Add(cart.LineItem{
		ProductID: product.ID,
		Name:      product.Name.Resolve(lang),
		UnitPrice: product.Price,
		Image:     image,
		StoreID:   product.StoreID,
	})
	if saveErr := s.store.Save(ctx, cartID, c); saveErr != nil {
		return cart.Cart{}, fmt.Errorf("save cart: %w", saveErr)
	}
	return c, nil
}

// RemoveItem removes the product's line entirely.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.Remove(productID)
	})
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(
	ctx context.Context,
	cartID, productID string,
	quantity int,
) (cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, quantity)
	})
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) (cart.Cart, error) {
	return s.mutate(ctx, cartID, func(c *cart.Cart) {
		c.Clear()
	})
}

func (s *CartService) mutate(
	ctx context.Context,
	cartID string,
	fn func(*cart.Cart),
) (cart.Cart, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}
	fn(&c)
	if saveErr := s.store.Save(ctx, cartID, c); saveErr != nil {
		return cart.Cart{}, fmt.Errorf("save cart: %w", saveErr)
	}
	return c, nil
}
