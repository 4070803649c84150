// internal/domain/cart/cart.go
package cart

import (
	"github.com/your-org/novastore/internal/domain/product"
)

// MinQuantity is the floor a cart line can be decremented to
const MinQuantity = 1

// Cart is an ordered list of items keyed by product id.
// No two items share a product id and no quantity is below MinQuantity.
type Cart struct {
	Items []Item `json:"items"`
}

// Add increments the quantity of an existing line or appends a new one
func (c *Cart) Add(p product.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, Item{Product: p, Quantity: 1})
}

// Remove deletes the line for productID; absent ids are ignored
func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity adds delta to a line, clamping at MinQuantity.
// It returns false when productID is not in the cart.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items[i].Quantity = max(MinQuantity, c.Items[i].Quantity+delta)
	return true
}

// Merge adds items into the cart, summing quantities of lines that share a
// product id
func (c *Cart) Merge(items []Item) {
	for _, item := range items {
		if i := c.indexOf(item.ID); i >= 0 {
			c.Items[i].Quantity += item.Quantity
			continue
		}
		c.Items = append(c.Items, item)
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count returns the sum of all quantities
func (c Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal returns Σ price × quantity in cents
func (c Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// Totals computes the summary; shipping applies only to a non-empty subtotal
func (c Cart) Totals(shippingFee int64) Totals {
	totals := Totals{
		ItemCount:     len(c.Items),
		TotalQuantity: c.Count(),
		SubTotal:      c.Subtotal(),
	}
	if totals.SubTotal > 0 {
		totals.ShippingCost = shippingFee
	}
	totals.TotalAmount = totals.SubTotal + totals.ShippingCost
	return totals
}

// Snapshot returns an independent copy of the items
func (c Cart) Snapshot() []Item {
	if len(c.Items) == 0 {
		return []Item{}
	}
	out := make([]Item, len(c.Items))
	copy(out, c.Items)
	return out
}

func (c Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			return i
		}
	}
	return -1
}
