package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/plugashop/storefront/internal/domain/cart"
)

// CartCookieName identifies the anonymous cart for the browser session.
const CartCookieName = "cart_id"

// Cart cookies outlive sessions so an abandoned cart survives a revisit.
const cartCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

// CartServiceInterface defines the cart operations the handlers use.
type CartServiceInterface interface {
	Get(ctx context.Context, cartID string) (cart.Cart, error)
	AddItem(ctx context.Context, cartID, storeID, productSlug, lang string) (cart.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (cart.Cart, error)
	Clear(ctx context.Context, cartID string) (cart.Cart, error)
}

// CartHandlers serves the cart API. The cart is keyed by a cookie, not the
// user, so guests can shop before signing in.
type CartHandlers struct {
	Svc          CartServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

// Get handles GET /api/cart.
func (h *CartHandlers) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		// No cart yet; an empty one is issued lazily on first write.
		writeCart(w, cart.Cart{})
		return
	}
	c, err := h.Svc.Get(r.Context(), cartID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	writeCart(w, c)
}

// addItemRequest is the body for POST /api/cart/items.
type addItemRequest struct {
	ProductSlug string `json:"product_slug"`
}

// AddItem handles POST /api/cart/items. Adding a product already in the
// cart increments its line quantity.
func (h *CartHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.ProductSlug == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("product_slug is required"),
		})
		return
	}

	cartID := h.ensureCartID(w, r)
	c, err := h.Svc.AddItem(r.Context(), cartID, t.ID, req.ProductSlug, GetLangFromContext(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	writeCart(w, c)
}

// updateQuantityRequest is the body for PUT /api/cart/items/{productID}.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/cart/items/{productID}. A quantity of
// zero removes the line.
func (h *CartHandlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		writeCart(w, cart.Cart{})
		return
	}

	var req updateQuantityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	c, err := h.Svc.UpdateQuantity(r.Context(), cartID, r.PathValue("productID"), req.Quantity)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	writeCart(w, c)
}

// RemoveItem handles DELETE /api/cart/items/{productID}.
func (h *CartHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		writeCart(w, cart.Cart{})
		return
	}
	c, err := h.Svc.RemoveItem(r.Context(), cartID, r.PathValue("productID"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	writeCart(w, c)
}

// Clear handles DELETE /api/cart.
func (h *CartHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		writeCart(w, cart.Cart{})
		return
	}
	c, err := h.Svc.Clear(r.Context(), cartID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	writeCart(w, c)
}

// cartID returns the cart ID cookie value when present.
func (h *CartHandlers) cartID(_ http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(CartCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ensureCartID returns the existing cart ID or issues a fresh one.
func (h *CartHandlers) ensureCartID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := h.cartID(w, r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    id,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cartCookieMaxAge,
	})
	return id
}

func writeCart(w http.ResponseWriter, c cart.Cart) {
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"item_count": c.ItemCount(),
		"total":      c.Total(),
	})
}
