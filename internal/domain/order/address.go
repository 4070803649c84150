// internal/domain/order/address.go
package order

import (
	"strings"
)

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair lies within geographic ranges
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Address represents a shipping address
type Address struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	ZipCode     string       `json:"zipCode"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ValidationError carries the blocking message shown at checkout
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate performs the checkout presence checks on street and city
func (a Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return &ValidationError{Field: "street", Message: "Please provide an address"}
	}
	if strings.TrimSpace(a.City) == "" {
		return &ValidationError{Field: "city", Message: "Please provide an address"}
	}
	return nil
}

// OneLine formats the address for receipts
func (a Address) OneLine() string {
	var parts []string
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
