package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/domain/model"
	"github.com/plugashop/storefront/internal/domain/tenant"
	"github.com/plugashop/storefront/internal/service"
)

// PageHandlers renders the server-side HTML pages. The role guard
// middleware runs before these, so staff pages can assume a session with
// the right role is in the context.
type PageHandlers struct {
	Renderer *TemplateRenderer
	Catalog  CatalogServiceInterface
	Orders   OrderServiceInterface
	Logger   *slog.Logger
}

// pageData is the shared payload every template receives.
type pageData struct {
	Store     tenant.Tenant
	Lang      string
	Session   *domainauth.Session
	CSRFToken string

	// Page-specific payloads; nil on pages that don't use them.
	Home   *service.HomeView
	Orders []model.Order
	Path   string

	// Error carries a form error code bounced back via the query string.
	Error string

	// ReturnTo is threaded through the login form.
	ReturnTo string
}

func (h *PageHandlers) baseData(r *http.Request) pageData {
	t, _ := GetTenantFromContext(r.Context())
	session, _ := GetUserSessionFromContext(r.Context())
	return pageData{
		Store:     t,
		Lang:      GetLangFromContext(r.Context()),
		Session:   session,
		CSRFToken: CSRFTokenFromContext(r.Context()),
		Path:      r.URL.Path,
	}
}

// Home renders GET /. A catalog outage degrades to the page shell rather
// than a 500; the storefront should stay up when the database is not.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r)

	home, err := h.Catalog.Home(r.Context(), data.Store.ID, data.Lang)
	if err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "home view failed", "error", err, "store_id", data.Store.ID)
		}
		home = &service.HomeView{}
	}
	data.Home = home

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"store": data.Store,
			"home":  home,
		})
		return
	}
	h.renderOr500(w, r, "home", data)
}

// Login renders GET /login. Signed-in visitors are bounced home.
func (h *PageHandlers) Login(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r)
	if data.Session != nil {
		http.Redirect(w, r, safeRedirectPath(r.URL.Query().Get("returnTo")), http.StatusSeeOther)
		return
	}
	data.Error = r.URL.Query().Get("error")
	data.ReturnTo = safeRedirectPath(r.URL.Query().Get("returnTo"))
	h.renderOr500(w, r, "login", data)
}

// AuthLanding renders GET /auth, the combined sign-in / sign-up page.
func (h *PageHandlers) AuthLanding(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r)
	data.Error = r.URL.Query().Get("error")
	h.renderOr500(w, r, "auth", data)
}

// Console renders GET /console for console or admin staff.
func (h *PageHandlers) Console(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r)

	orders, err := h.Orders.ListByStore(r.Context(), data.Store.ID, model.OrdersListOptions{Limit: 20})
	if err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "console orders failed", "error", err, "store_id", data.Store.ID)
		}
	}
	data.Orders = orders

	h.renderOr500(w, r, "console", data)
}

// Admin renders GET /admin for admin staff.
func (h *PageHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	h.renderOr500(w, r, "admin", h.baseData(r))
}

// Me renders GET /me, the signed-in customer's account page.
func (h *PageHandlers) Me(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r)

	orders, err := h.Orders.ListByUser(r.Context(), data.Session.UserID, model.OrdersListOptions{Limit: 20})
	if err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "account orders failed", "error", err, "user_id", data.Session.UserID)
		}
	}
	data.Orders = orders

	h.renderOr500(w, r, "me", data)
}

// NotFound renders the 404 page for unmatched browser routes. API routes
// get a JSON body instead.
func (h *PageHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": "resource not found",
		})
		return
	}
	if err := h.Renderer.RenderError(w, http.StatusNotFound, h.baseData(r)); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *PageHandlers) renderOr500(w http.ResponseWriter, _ *http.Request, page string, data pageData) {
	if err := h.Renderer.RenderPage(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
