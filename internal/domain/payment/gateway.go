// internal/domain/payment/gateway.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/novastore/internal/domain/order"
)

var ErrPaymentDeclined = errors.New("payment declined")

// Request describes a charge about to be confirmed
type Request struct {
	Method order.PaymentMethod
	Amount int64 // In cents
	Email  string
}

// Confirmation is returned once the gateway accepts a charge
type Confirmation struct {
	Reference   string              `json:"reference"`
	Method      order.PaymentMethod `json:"method"`
	Amount      int64               `json:"amount"`
	ConfirmedAt time.Time           `json:"confirmedAt"`
}

// Gateway confirms payments before an order is recorded
type Gateway interface {
	Confirm(ctx context.Context, req Request) (*Confirmation, error)
}

// SimulatedGateway pretends to talk to a processor. Every valid request is
// accepted after the configured latency.
type SimulatedGateway struct {
	latency time.Duration
	now     func() time.Time
}

// NewSimulatedGateway creates a gateway that waits latency before confirming
func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{latency: latency, now: time.Now}
}

// Confirm waits for the simulated processor or for ctx, whichever ends first
func (g *SimulatedGateway) Confirm(ctx context.Context, req Request) (*Confirmation, error) {
	if !req.Method.Valid() {
		return nil, order.ErrInvalidPaymentMethod
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentDeclined)
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Confirmation{
		Reference:   "PAY-" + strings.ToUpper(uuid.New().String()),
		Method:      req.Method,
		Amount:      req.Amount,
		ConfirmedAt: g.now().UTC(),
	}, nil
}
