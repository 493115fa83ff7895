package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	storefront "github.com/plugashop/storefront"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
	"github.com/plugashop/storefront/internal/observability/statsd"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Tenants TenantResolver
	Auth    AuthServiceInterface
	Catalog CatalogServiceInterface
	Carts   CartServiceInterface
	Orders  OrderServiceInterface

	CookieDomain       string
	CompressionEnabled bool
	CompressionLevel   int
	IsDev              bool
	Logger             *slog.Logger
	Metrics            statsd.Sink
}

// NewRouter creates and configures the HTTP handler tree: middleware chain,
// page routes, API routes, and the browser-aware 404 fallback.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	storefrontHandlers := &StorefrontHandlers{Catalog: services.Catalog}
	cartHandlers := &CartHandlers{
		Svc:          services.Carts,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	orderHandlers := &OrderHandlers{Svc: services.Orders}

	pageHandlers := setupPageHandlers(services, orderHandlers.Svc)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	registerAuthRoutes(mux, authHandlers)
	registerStorefrontRoutes(mux, storefrontHandlers)
	registerCartRoutes(mux, cartHandlers, orderHandlers)
	registerOrderRoutes(mux, orderHandlers, services.Auth)
	if pageHandlers != nil {
		registerPageRoutes(mux, pageHandlers, services.Auth)
	}

	handler := http.Handler(&notFoundHandler{mux: mux, pages: pageHandlers})

	// Innermost first: the chain below runs top to bottom per request.
	handler = CSRFProtection(services.CookieDomain)(handler)
	handler = TenantResolution(services.Tenants)(handler)
	handler = LanguageDetection(services.CookieDomain)(handler)
	handler = OptionalAuth(services.Auth)(handler)
	handler = BrowserDetection()(handler)
	if services.CompressionEnabled {
		handler = Compression(services.CompressionLevel)(handler)
	}
	if services.Logger != nil {
		handler = Logging(services.Logger, services.Metrics)(handler)
		handler = Recover(services.Logger)(handler)
	}
	return handler
}

// setupPageHandlers builds the template renderer and page handlers. In dev
// mode templates come from disk for hot reloading, in production from the
// embedded FS. A renderer failure disables HTML pages but keeps the API up.
func setupPageHandlers(services RouterServices, orders OrderServiceInterface) *PageHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS("frontend/templates")
	} else {
		sub, err := fs.Sub(storefront.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS("frontend/templates")
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &PageHandlers{
		Renderer: tr,
		Catalog:  services.Catalog,
		Orders:   orders,
		Logger:   services.Logger,
	}
}

// staticHandler serves /static/* assets: from disk in dev mode, from the
// embedded FS in production.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	staticSub, err := fs.Sub(storefront.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /login", h.LoginForm)
	mux.HandleFunc("POST /auth", h.SignupForm)
	mux.HandleFunc("GET /auth/sso/login", h.BeginSSO)
	mux.HandleFunc("GET /auth/callback", h.SSOCallback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)

	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
}

func registerStorefrontRoutes(mux *http.ServeMux, h *StorefrontHandlers) {
	mux.HandleFunc("GET /api/storefront", h.StoreInfo)
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{slug}", h.GetProduct)
	mux.HandleFunc("GET /api/categories", h.ListCategories)
}

func registerCartRoutes(mux *http.ServeMux, h *CartHandlers, orders *OrderHandlers) {
	mux.HandleFunc("GET /api/cart", h.Get)
	mux.HandleFunc("DELETE /api/cart", h.Clear)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{productID}", h.UpdateQuantity)
	mux.HandleFunc("PATCH /api/cart/items/{productID}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{productID}", h.RemoveItem)
	mux.HandleFunc("POST /api/checkout", orders.Checkout)
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers, auth AuthSessionReader) {
	staff := RequireRoles(auth, domainauth.RoleAdmin, domainauth.RoleSupport)
	mux.HandleFunc("GET /api/orders", h.ListMine)
	mux.HandleFunc("GET /api/orders/{orderID}/items", h.OrderItems)
	mux.Handle("GET /api/admin/orders", staff(http.HandlerFunc(h.ListStore)))
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers, auth AuthSessionReader) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("GET /auth", h.AuthLanding)

	consoleOnly := RequireRoles(auth, domainauth.RoleConsole)
	staffOnly := RequireRoles(auth, domainauth.RoleAdmin, domainauth.RoleSupport)
	userOnly := RequireRoles(auth, domainauth.RoleUser)

	mux.Handle("GET /console", consoleOnly(http.HandlerFunc(h.Console)))
	mux.Handle("GET /admin", staffOnly(http.HandlerFunc(h.Admin)))
	mux.Handle("GET /me", userOnly(http.HandlerFunc(h.Me)))
}

// notFoundHandler wraps the ServeMux and provides browser-aware 404
// handling for unmatched routes.
type notFoundHandler struct {
	mux   *http.ServeMux
	pages *PageHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the file server response.
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.pages != nil {
			h.pages.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide
// post-dispatch whether the mux matched.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
