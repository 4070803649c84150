package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/novastore/internal/domain/product"
)

var (
	shoe  = product.Product{ID: "p1", Name: "Red Shoe", Category: "Fashion", Price: 1000}
	phone = product.Product{ID: "p2", Name: "Blue Phone", Category: "Electronics", Price: 25000}
)

func TestCart_AddSameProductAccumulates(t *testing.T) {
	var c Cart
	for i := 0; i < 4; i++ {
		c.Add(shoe)
	}

	require.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)
}

func TestCart_AddPreservesOrder(t *testing.T) {
	var c Cart
	c.Add(shoe)
	c.Add(phone)
	c.Add(shoe)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "p1", c.Items[0].ID)
	assert.Equal(t, "p2", c.Items[1].ID)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCart_UpdateQuantityClamps(t *testing.T) {
	var c Cart
	c.Add(shoe)
	c.Add(shoe)

	assert.True(t, c.UpdateQuantity("p1", -5))
	assert.Equal(t, []Item{{Product: shoe, Quantity: 1}}, c.Items)

	assert.True(t, c.UpdateQuantity("p1", 3))
	assert.Equal(t, 4, c.Items[0].Quantity)

	assert.False(t, c.UpdateQuantity("missing", 1))
}

func TestCart_UpdateQuantityProperty(t *testing.T) {
	deltas := []int{-10, -3, -1, 0, 1, 2, 7}
	for _, start := range []int{1, 2, 5} {
		for _, d := range deltas {
			c := Cart{Items: []Item{{Product: shoe, Quantity: start}}}
			c.UpdateQuantity("p1", d)
			assert.Equal(t, max(1, start+d), c.Items[0].Quantity, "start=%d delta=%d", start, d)
		}
	}
}

func TestCart_Remove(t *testing.T) {
	var c Cart
	c.Add(shoe)
	c.Add(phone)

	c.Remove("missing")
	assert.Len(t, c.Items, 2)

	c.Remove("p1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ID)
}

func TestCart_Totals(t *testing.T) {
	var c Cart
	assert.Equal(t, Totals{}, c.Totals(1500))

	c.Add(shoe)
	c.Add(shoe)
	c.Add(phone)

	totals := c.Totals(1500)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.Equal(t, int64(27000), totals.SubTotal)
	assert.Equal(t, int64(1500), totals.ShippingCost)
	assert.Equal(t, int64(28500), totals.TotalAmount)
}

func TestCart_SnapshotIsIndependent(t *testing.T) {
	var c Cart
	c.Add(shoe)
	snap := c.Snapshot()
	c.Add(shoe)

	assert.Equal(t, 1, snap[0].Quantity)
	assert.Equal(t, 2, c.Items[0].Quantity)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, []Item{}, c.Snapshot())
}

func TestCart_Merge(t *testing.T) {
	var c Cart
	c.Add(shoe)

	var other Cart
	other.Add(phone)
	other.Add(shoe)
	other.Add(shoe)

	c.Merge(other.Items)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "p2", c.Items[1].ID)
	assert.Equal(t, int64(28000), c.Subtotal())
}
