// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/checkout"
	"github.com/your-org/novastore/internal/domain/order"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// PlaceOrderRequest represents the checkout form
type PlaceOrderRequest struct {
	PaymentMethod string        `json:"paymentMethod" binding:"required"`
	Address       order.Address `json:"address"`
}

// LocateRequest carries the browser's geolocation fix
type LocateRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data":    h.checkoutService.Summary(),
	})
}

// PlaceOrder handles POST /checkout/orders
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), checkout.PlaceOrderRequest{
		PaymentMethod: method,
		Address:       req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// LocateAddress handles POST /checkout/locate
func (h *CheckoutHandler) LocateAddress(c *gin.Context) {
	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	addr, err := h.checkoutService.LocateAddress(c.Request.Context(), order.Coordinates{Lat: *req.Lat, Lng: *req.Lng})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address resolved successfully",
		"data":    addr,
	})
}
