// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
)

// MaxRating is the upper bound of a product rating
const MaxRating = 5.0

var ErrProductNotFound = errors.New("product not found")

// Product represents a purchasable catalog item. Catalog data is immutable.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"` // Price in cents
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

// Validate checks the reference-data constraints of a product
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: price cannot be negative", p.ID)
	}
	if p.Rating < 0 || p.Rating > MaxRating {
		return fmt.Errorf("product %s: rating %.1f out of range [0, %.0f]", p.ID, p.Rating, MaxRating)
	}
	if p.Reviews < 0 {
		return fmt.Errorf("product %s: review count cannot be negative", p.ID)
	}
	return nil
}

// GetFormattedPrice returns price as float
func (p Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
