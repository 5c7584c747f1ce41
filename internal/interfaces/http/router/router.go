package router

import (
	"github.com/gin-gonic/gin"

	"github.com/delivery/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Handlers bundles the storefront's HTTP handlers
type Handlers struct {
	Auth         *handler.AuthHandler
	Products     *handler.ProductHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Orders       *handler.OrderHandler
	PickupPoints *handler.PickupPointHandler
	Promos       *handler.PromoHandler
}

// Middleware bundles the per-group middleware chains. Authenticate
// rejects requests without a valid access token; OptionalAuth extracts
// claims when present and lets everyone through. Principal resolves
// the request's role and must run after either of them
type Middleware struct {
	Authenticate gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	Principal    gin.HandlerFunc
	RequireStaff gin.HandlerFunc
	// ThrottleAuth rate-limits credential endpoints when set
	ThrottleAuth gin.HandlerFunc
}

// Storefront is the full route tree of the shop API
type Storefront struct {
	handlers   Handlers
	middleware Middleware
}

// NewStorefront creates the storefront route registrar
func NewStorefront(h Handlers, mw Middleware) *Storefront {
	return &Storefront{handlers: h, middleware: mw}
}

// RegisterRoutes implements RouteRegistrar
func (s *Storefront) RegisterRoutes(rg *gin.RouterGroup) {
	h, mw := s.handlers, s.middleware

	// open endpoints: registration, login, payment confirmation by ref
	open := rg.Group("")
	open.POST("/payments/confirm", h.Orders.ConfirmPayment)

	credentials := open.Group("")
	if mw.ThrottleAuth != nil {
		credentials.Use(mw.ThrottleAuth)
	}
	credentials.POST("/auth/register", h.Auth.Register)
	credentials.POST("/auth/login", h.Auth.Login)
	credentials.POST("/auth/refresh", h.Auth.Refresh)

	// browsing is public; the resolved principal decides whether
	// inactive products are visible
	browse := rg.Group("", mw.OptionalAuth, mw.Principal)
	browse.GET("/products", h.Products.List)
	browse.GET("/products/:id", h.Products.Get)
	browse.GET("/product-types", h.Products.ListTypes)
	browse.GET("/manufacturers", h.Products.ListManufacturers)
	browse.GET("/pickup-points", h.PickupPoints.List)

	// everything below requires a valid access token
	authed := rg.Group("", mw.Authenticate, mw.Principal)
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/employees", h.Auth.RegisterEmployee)
	authed.GET("/auth/employees", h.Auth.ListEmployees)
	authed.PUT("/auth/profile", h.Auth.UpdateProfile)

	authed.GET("/cart", h.Cart.List)
	authed.DELETE("/cart", h.Cart.Clear)
	authed.POST("/cart/items", h.Cart.Add)
	authed.PUT("/cart/items/:id", h.Cart.UpdateQuantity)
	authed.DELETE("/cart/items/:id", h.Cart.Remove)

	authed.POST("/checkout", h.Checkout.Checkout)

	authed.GET("/orders", h.Orders.List)
	authed.GET("/orders/:id", h.Orders.Get)
	authed.POST("/orders", h.Orders.Create)
	authed.PUT("/orders/:id/status", h.Orders.UpdateStatus)
	authed.PUT("/orders/:id/assign", h.Orders.AssignEmployee)
	authed.PUT("/orders/:id/items", h.Orders.ReplaceItems)

	// staff-only management surface
	staff := rg.Group("", mw.Authenticate, mw.Principal, mw.RequireStaff)
	staff.POST("/products", h.Products.Create)
	staff.PUT("/products/:id", h.Products.Update)
	staff.DELETE("/products/:id", h.Products.Delete)
	staff.POST("/product-types", h.Products.CreateType)
	staff.POST("/manufacturers", h.Products.CreateManufacturer)
	staff.POST("/pickup-points", h.PickupPoints.Create)

	staff.GET("/promo-codes", h.Promos.List)
	staff.GET("/promo-codes/:id", h.Promos.Get)
	staff.POST("/promo-codes", h.Promos.Create)
	staff.PUT("/promo-codes/:id", h.Promos.Update)
	staff.DELETE("/promo-codes/:id", h.Promos.Delete)
}
