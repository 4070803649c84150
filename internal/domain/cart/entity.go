// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/novastore/internal/domain/product"
)

// Item is a product in the cart together with its quantity (always >= 1)
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity in cents
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // Total before shipping
	ShippingCost  int64 `json:"shipping_cost"`
	TotalAmount   int64 `json:"total_amount"` // Final total
}
