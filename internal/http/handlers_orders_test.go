package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/domain/model"
	apperrors "github.com/plugashop/storefront/internal/errors"
	"github.com/plugashop/storefront/internal/service"
)

type recordingOrderService struct {
	stubOrderService

	checkoutParams  service.CheckoutParams
	itemsOrderID    string
	userItemsCalled bool
	userItemsUserID string
	userItemsErr    error
}

func (s *recordingOrderService) Checkout(_ context.Context, params service.CheckoutParams) (*model.Order, error) {
	s.checkoutParams = params
	return &model.Order{ID: "o1", OrderNumber: "ORD-20260831-ABCDEF", Status: "pending"}, nil
}

func (s *recordingOrderService) ItemsForOrder(_ context.Context, orderID string) ([]model.OrderItem, error) {
	s.itemsOrderID = orderID
	return []model.OrderItem{{OrderID: orderID, Quantity: 1}}, nil
}

func (s *recordingOrderService) ItemsForUserOrder(_ context.Context, orderID, userID string) ([]model.OrderItem, error) {
	s.userItemsCalled = true
	s.itemsOrderID = orderID
	s.userItemsUserID = userID
	if s.userItemsErr != nil {
		return nil, s.userItemsErr
	}
	return []model.OrderItem{{OrderID: orderID, Quantity: 1}}, nil
}

func TestOrderHandlers_CheckoutRequiresCart(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{}
	h := &OrderHandlers{Svc: svc}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), testTenant())
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty_cart")
}

func TestOrderHandlers_CheckoutGuest(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{}
	h := &OrderHandlers{Svc: svc}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), testTenant())
	req.AddCookie(&http.Cookie{Name: CartCookieName, Value: "cart-9"})
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cart-9", svc.checkoutParams.CartID)
	assert.Equal(t, "store-1", svc.checkoutParams.StoreID)
	assert.Nil(t, svc.checkoutParams.UserID, "guest checkout carries no user")

	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "ORD-20260831-ABCDEF", order.OrderNumber)
}

func TestOrderHandlers_CheckoutAttachesSessionUser(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{}
	h := &OrderHandlers{Svc: svc}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), testTenant())
	req.AddCookie(&http.Cookie{Name: CartCookieName, Value: "cart-9"})
	req = req.WithContext(SetSessionInContext(req.Context(), validSession()))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.checkoutParams.UserID)
	assert.Equal(t, "user-1", *svc.checkoutParams.UserID)
}

func TestOrderHandlers_ListMineRequiresSession(t *testing.T) {
	t.Parallel()

	h := &OrderHandlers{Svc: &recordingOrderService{}}
	rec := httptest.NewRecorder()
	h.ListMine(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestOrderHandlers_OrderItemsOwnerPath(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{}
	h := &OrderHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/o1/items", nil)
	req.SetPathValue("orderID", "o1")
	req = req.WithContext(SetSessionInContext(req.Context(), validSession()))
	rec := httptest.NewRecorder()
	h.OrderItems(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.userItemsCalled, "plain users go through the ownership check")
	assert.Equal(t, "user-1", svc.userItemsUserID)
	assert.Equal(t, "o1", svc.itemsOrderID)
}

func TestOrderHandlers_OrderItemsForeignOrderIsNotFound(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{userItemsErr: apperrors.NotFound("order not found")}
	h := &OrderHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/o2/items", nil)
	req.SetPathValue("orderID", "o2")
	req = req.WithContext(SetSessionInContext(req.Context(), validSession()))
	rec := httptest.NewRecorder()
	h.OrderItems(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandlers_OrderItemsStaffBypassesOwnership(t *testing.T) {
	t.Parallel()

	svc := &recordingOrderService{}
	h := &OrderHandlers{Svc: svc}

	sess := validSession()
	sess.Roles = []domainauth.Role{domainauth.RoleSupport}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/o1/items", nil)
	req.SetPathValue("orderID", "o1")
	req = req.WithContext(SetSessionInContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.OrderItems(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.userItemsCalled, "staff reads skip the ownership filter")
	assert.Equal(t, "o1", svc.itemsOrderID)
}
