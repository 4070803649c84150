// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/domain/cart"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/payment"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/pkg/logger"
)

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrAddressUnresolved   = errors.New("could not resolve an address for this location")
)

// AddressResolver turns coordinates into a shipping address, or nil
type AddressResolver interface {
	ResolveAddress(ctx context.Context, lat, lng float64) *order.Address
}

// Service handles checkout business logic
type Service struct {
	store       *session.Store
	gateway     payment.Gateway
	resolver    AddressResolver
	shippingFee int64
	log         *logrus.Entry
}

// NewService creates a new checkout service. resolver may be nil, in which
// case every location lookup fails with ErrAddressUnresolved.
func NewService(store *session.Store, gateway payment.Gateway, resolver AddressResolver, shippingFee int64, log *logrus.Logger) *Service {
	return &Service{
		store:       store,
		gateway:     gateway,
		resolver:    resolver,
		shippingFee: shippingFee,
		log:         logger.Component(log, "checkout"),
	}
}

// Summary represents the checkout summary shown before payment
type Summary struct {
	Items          []cart.Item           `json:"items"`
	Totals         cart.Totals           `json:"totals"`
	ShippingAddr   *order.Address        `json:"shippingAddress,omitempty"`
	PaymentMethods []PaymentMethodOption `json:"paymentMethods"`
}

// PaymentMethodOption describes a selectable payment method
type PaymentMethodOption struct {
	ID   order.PaymentMethod `json:"id"`
	Name string              `json:"name"`
}

// PlaceOrderRequest represents the form submitted at checkout
type PlaceOrderRequest struct {
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	Address       order.Address       `json:"address"`
}

// PlaceOrderResult represents a confirmed and recorded order
type PlaceOrderResult struct {
	Order   *order.Order          `json:"order"`
	Payment *payment.Confirmation `json:"payment"`
}

// Summary returns the cart with shipping applied and the saved address, if any
func (s *Service) Summary() *Summary {
	c := s.store.Cart()

	summary := &Summary{
		Items:          c.Snapshot(),
		Totals:         c.Totals(s.shippingFee),
		PaymentMethods: paymentMethodOptions(),
	}
	if u := s.store.CurrentUser(); u != nil && u.Address != nil {
		addr := *u.Address
		summary.ShippingAddr = &addr
	}
	return summary
}

func paymentMethodOptions() []PaymentMethodOption {
	methods := order.PaymentMethods()
	options := make([]PaymentMethodOption, len(methods))
	for i, m := range methods {
		options[i] = PaymentMethodOption{ID: m, Name: m.Label()}
	}
	return options
}

// PlaceOrder validates the request, takes the cart items out for the
// duration of payment confirmation and records the order from exactly the
// items that were charged. A failed confirmation puts the items back.
// Confirmation keeps running if ctx is cancelled, so a dropped client still
// ends up with its order.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	u := s.store.CurrentUser()
	if u == nil {
		return nil, session.ErrNotLoggedIn
	}

	if s.store.Cart().IsEmpty() {
		return nil, session.ErrEmptyCart
	}

	if !req.PaymentMethod.Valid() {
		return nil, order.ErrInvalidPaymentMethod
	}

	if err := req.Address.Validate(); err != nil {
		return nil, err
	}

	// The reserved items are both what gets charged and what gets recorded.
	// A second submit racing this one finds an empty cart.
	items, err := s.store.ReserveCart()
	if err != nil {
		return nil, err
	}
	amount := cart.Cart{Items: items}.Subtotal()

	log := s.log.WithFields(logrus.Fields{
		"user_id":        u.ID,
		"payment_method": req.PaymentMethod,
		"amount":         amount,
	})
	log.Info("Confirming payment")

	conf, err := s.gateway.Confirm(context.WithoutCancel(ctx), payment.Request{
		Method: req.PaymentMethod,
		Amount: amount,
		Email:  u.Email,
	})
	if err != nil {
		s.store.RestoreCart(items)
		log.WithError(err).Warn("Payment confirmation failed")
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	o, err := s.store.CreateOrderFrom(items, req.PaymentMethod, req.Address)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"order_id":  o.ID,
		"reference": conf.Reference,
	}).Info("Order placed")

	return &PlaceOrderResult{Order: o, Payment: conf}, nil
}

// LocateAddress resolves coordinates into a fabricated address with the
// coordinates attached
func (s *Service) LocateAddress(ctx context.Context, coords order.Coordinates) (*order.Address, error) {
	if !coords.Valid() {
		return nil, ErrLocationUnavailable
	}
	if s.resolver == nil {
		return nil, ErrAddressUnresolved
	}

	addr := s.resolver.ResolveAddress(ctx, coords.Lat, coords.Lng)
	if addr == nil {
		return nil, ErrAddressUnresolved
	}

	out := *addr
	out.Coordinates = &order.Coordinates{Lat: coords.Lat, Lng: coords.Lng}
	return &out, nil
}
