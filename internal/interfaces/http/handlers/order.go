// internal/interfaces/http/handlers/order.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/session"
)

// ReceiptRenderer produces order receipts
type ReceiptRenderer interface {
	GenerateReceipt(o *order.Order) (*bytes.Buffer, error)
	RenderHTML(o *order.Order) ([]byte, error)
}

// OrderHandler handles order history endpoints
type OrderHandler struct {
	store    *session.Store
	receipts ReceiptRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store *session.Store, receipts ReceiptRenderer) *OrderHandler {
	return &OrderHandler{store: store, receipts: receipts}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    h.store.Orders(),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// GetReceipt handles GET /orders/:id/receipt. format=html returns the
// markup instead of the PDF.
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	o, err := h.store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		html, err := h.receipts.RenderHTML(o)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	pdfBuffer, err := h.receipts.GenerateReceipt(o)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.ID))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
