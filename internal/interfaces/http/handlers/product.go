// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/search"
	"github.com/your-org/novastore/internal/domain/session"
)

// ProductHandler handles catalog and search endpoints
type ProductHandler struct {
	catalog *product.Catalog
	tracker *search.Tracker
	store   *session.Store
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *product.Catalog, tracker *search.Tracker, store *session.Store) *ProductHandler {
	return &ProductHandler{catalog: catalog, tracker: tracker, store: store}
}

// GetProducts handles GET /products. With q the search query changes and
// the view reflects the new filter at once; wait=true also holds the
// response until the AI ranking for q has settled.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		token := h.tracker.SetQuery(q)
		h.store.SetSearchQuery(q)

		if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
			if err := h.tracker.Wait(c.Request.Context(), token); err != nil && !errors.Is(err, search.ErrStaleToken) {
				c.JSON(http.StatusGatewayTimeout, gin.H{
					"error": "Timed out waiting for recommendations",
				})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    h.tracker.View(),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// GetCategories handles GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.Categories(),
	})
}
