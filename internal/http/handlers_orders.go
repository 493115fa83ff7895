package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/service"
)

// OrderServiceInterface defines the order operations the handlers use.
type OrderServiceInterface interface {
	Checkout(ctx context.Context, params service.CheckoutParams) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, opts model.OrdersListOptions) ([]model.Order, error)
	ListByStore(ctx context.Context, storeID string, opts model.OrdersListOptions) ([]model.Order, error)
	ItemsForOrder(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ItemsForUserOrder(ctx context.Context, orderID, userID string) ([]model.OrderItem, error)
}

// OrderHandlers serves checkout and order history.
type OrderHandlers struct {
	Svc OrderServiceInterface
}

const maxOrdersPageSize = 100

// Checkout handles POST /api/checkout. It converts the current cart into a
// pending order. Guests can check out; a signed-in session attaches the
// order to the customer.
func (h *OrderHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}

	cartCookie, err := r.Cookie(CartCookieName)
	if err != nil || cartCookie.Value == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "empty_cart",
			Err:     errors.New("no cart to check out"),
		})
		return
	}

	var userID *string
	if session, sessionOK := GetUserSessionFromContext(r.Context()); sessionOK {
		userID = &session.UserID
	}

	order, err := h.Svc.Checkout(r.Context(), service.CheckoutParams{
		CartID:  cartCookie.Value,
		StoreID: t.ID,
		UserID:  userID,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

// ListMine handles GET /api/orders. Requires an authenticated session.
func (h *OrderHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	limit, offset := ParseLimitOffset(r, 20, maxOrdersPageSize)
	orders, err := h.Svc.ListByUser(r.Context(), session.UserID, model.OrdersListOptions{Limit: limit, Offset: offset})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// ListStore handles GET /api/admin/orders. The route is guarded for staff
// roles; the handler just scopes the query to the resolved store.
func (h *OrderHandlers) ListStore(w http.ResponseWriter, r *http.Request) {
	t, ok := requireTenant(w, r)
	if !ok {
		return
	}

	limit, offset := ParseLimitOffset(r, 20, maxOrdersPageSize)
	orders, err := h.Svc.ListByStore(r.Context(), t.ID, model.OrdersListOptions{Limit: limit, Offset: offset})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// OrderItems handles GET /api/orders/{orderID}/items. The order must belong
// to the caller unless they carry a staff role.
func (h *OrderHandlers) OrderItems(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	orderID := r.PathValue("orderID")
	var items []model.OrderItem
	var err error
	if session.HasAnyRole(domainauth.RoleAdmin, domainauth.RoleSupport) {
		items, err = h.Svc.ItemsForOrder(r.Context(), orderID)
	} else {
		items, err = h.Svc.ItemsForUserOrder(r.Context(), orderID, session.UserID)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
