// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/novastore/internal/domain/checkout"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/payment"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/session"
)

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, session.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, checkout.ErrLocationUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrAddressUnresolved):
		return http.StatusBadGateway
	case errors.Is(err, payment.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var verr *order.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	c.JSON(status, body)
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
