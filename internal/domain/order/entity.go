// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/novastore/internal/domain/cart"
)

// OrderStatus represents the order status
type OrderStatus string

// Only OrderStatusProcessing is ever produced; the rest are reserved.
const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentMethod is the closed set of accepted payment options
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCOD  PaymentMethod = "CASH_ON_DELIVERY"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// PaymentMethods lists the accepted methods in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodUPI, PaymentMethodCard, PaymentMethodCOD}
}

// Valid reports whether m is one of the known payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodCOD:
		return true
	}
	return false
}

// Label returns the display name used on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodUPI:
		return "UPI"
	case PaymentMethodCard:
		return "Credit / Debit Card"
	case PaymentMethodCOD:
		return "Cash on Delivery"
	}
	return string(m)
}

// ParsePaymentMethod validates a raw payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
	return m, nil
}

// Order is an immutable snapshot of a cart at checkout time
type Order struct {
	ID            string        `json:"id"`
	Items         []cart.Item   `json:"items"`
	Total         int64         `json:"total"` // In cents, Σ price × quantity
	Status        OrderStatus   `json:"status"`
	Date          time.Time     `json:"date"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Address       Address       `json:"address"`
}

// New builds a Processing order from a cart snapshot
func New(items []cart.Item, method PaymentMethod, address Address, now time.Time) *Order {
	snapshot := make([]cart.Item, len(items))
	copy(snapshot, items)

	var total int64
	for _, item := range snapshot {
		total += item.LineTotal()
	}

	return &Order{
		ID:            GenerateOrderNumber(),
		Items:         snapshot,
		Total:         total,
		Status:        OrderStatusProcessing,
		Date:          now.UTC(),
		PaymentMethod: method,
		Address:       address,
	}
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	// Format: ORD-<UUID>
	return "ORD-" + strings.ToUpper(uuid.NewString())
}

// GetFormattedTotal returns total amount as float
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.Total) / 100
}

// ItemCount returns the sum of item quantities
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
