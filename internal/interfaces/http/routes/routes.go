// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/interfaces/http/handlers"
	"github.com/your-org/novastore/internal/interfaces/http/middleware"
	"github.com/your-org/novastore/internal/pkg/auth"
)

// Handlers bundles every handler the API exposes
type Handlers struct {
	Products *handlers.ProductHandler
	Session  *handlers.SessionHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrderHandler
}

// SetupCatalogRoutes sets up product and search routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Products.GetProducts)
		products.GET("/:id", h.Products.GetProduct)
	}
	rg.GET("/categories", h.Products.GetCategories)
}

// SetupSessionRoutes sets up login, logout and profile routes
func SetupSessionRoutes(rg *gin.RouterGroup, h *Handlers, requireSession gin.HandlerFunc) {
	sess := rg.Group("/session")
	{
		sess.GET("", h.Session.GetSession)
		sess.POST("/login", h.Session.Login)
		sess.POST("/logout", h.Session.Logout)
	}

	rg.PUT("/profile", requireSession, h.Session.UpdateProfile)
}

// SetupCartRoutes sets up cart routes. The cart belongs to the store, not
// to a login, so these are public.
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PATCH("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveFromCart)
	}
}

// SetupCheckoutRoutes sets up checkout and order history routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h *Handlers, requireSession gin.HandlerFunc) {
	checkout := rg.Group("/checkout")
	checkout.Use(requireSession)
	{
		checkout.GET("/summary", h.Checkout.GetSummary)
		checkout.POST("/locate", h.Checkout.LocateAddress)
		checkout.POST("/orders", h.Checkout.PlaceOrder)
	}

	orders := rg.Group("/orders")
	orders.Use(requireSession)
	{
		orders.GET("", h.Orders.GetOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.GET("/:id/receipt", h.Orders.GetReceipt)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, jwtManager *auth.JWTManager, sessions middleware.SessionSource) {
	requireSession := middleware.RequireSession(jwtManager, sessions)

	SetupCatalogRoutes(rg, h)
	SetupSessionRoutes(rg, h, requireSession)
	SetupCartRoutes(rg, h)
	SetupCheckoutRoutes(rg, h, requireSession)
}
