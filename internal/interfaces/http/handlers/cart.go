// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/cart"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/session"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store       *session.Store
	catalog     *product.Catalog
	shippingFee int64
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *session.Store, catalog *product.Catalog, shippingFee int64) *CartHandler {
	return &CartHandler{store: store, catalog: catalog, shippingFee: shippingFee}
}

// CartResponse represents the cart payload
type CartResponse struct {
	Items  []cart.Item `json:"items"`
	Count  int         `json:"count"`
	Totals cart.Totals `json:"totals"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// UpdateCartItemRequest nudges a line by delta; the result never drops below 1
type UpdateCartItemRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

func (h *CartHandler) respond(c *gin.Context, message string) {
	current := h.store.Cart()
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": CartResponse{
			Items:  current.Snapshot(),
			Count:  current.Count(),
			Totals: current.Totals(h.shippingFee),
		},
	})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respond(c, "Cart retrieved successfully")
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.store.AddToCart(p)
	h.respond(c, "Item added to cart successfully")
}

// UpdateCartItem handles PATCH /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	h.store.UpdateCartQuantity(c.Param("id"), *req.Delta)
	h.respond(c, "Cart item updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("id"))
	h.respond(c, "Item removed from cart successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.ClearCart()
	h.respond(c, "Cart cleared successfully")
}
