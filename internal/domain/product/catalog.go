// internal/domain/product/catalog.go
package product

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the fixed, read-only list of products
type Catalog struct {
	products []Product
	index    map[string]int
}

// NewCatalog validates the products and builds a catalog preserving their order
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.index[p.ID] = i
	}

	return c, nil
}

// LoadCatalogFile reads a JSON array of products from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return NewCatalog(products)
}

// All returns a copy of every product in catalog order
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns a product by id
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns distinct categories in order of first appearance
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
