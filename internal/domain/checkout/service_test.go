package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/payment"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/domain/user"
	"github.com/your-org/novastore/internal/infrastructure/storage"
)

var (
	shoe  = product.Product{ID: "p1", Name: "Red Shoe", Category: "Fashion", Price: 1000}
	phone = product.Product{ID: "p2", Name: "Blue Phone", Category: "Electronics", Price: 25000}
	home  = order.Address{Street: "1 Main St", City: "Springfield", ZipCode: "12345"}
)

type recordingGateway struct {
	calls   []payment.Request
	ctxErrs []error
	err     error
}

func (g *recordingGateway) Confirm(ctx context.Context, req payment.Request) (*payment.Confirmation, error) {
	g.calls = append(g.calls, req)
	g.ctxErrs = append(g.ctxErrs, ctx.Err())
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Confirmation{Reference: "PAY-TEST", Method: req.Method, Amount: req.Amount}, nil
}

// blockingGateway holds every confirmation until release is closed
type blockingGateway struct {
	mu      sync.Mutex
	calls   []payment.Request
	started chan struct{}
	release chan struct{}
}

func newBlockingGateway() *blockingGateway {
	return &blockingGateway{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *blockingGateway) Confirm(ctx context.Context, req payment.Request) (*payment.Confirmation, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()

	g.started <- struct{}{}
	<-g.release
	return &payment.Confirmation{Reference: "PAY-TEST", Method: req.Method, Amount: req.Amount}, nil
}

func (g *blockingGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type staticResolver struct {
	addr *order.Address
}

func (r staticResolver) ResolveAddress(context.Context, float64, float64) *order.Address {
	return r.addr
}

func newTestService(t *testing.T, gw payment.Gateway, res AddressResolver) (*Service, *session.Store) {
	t.Helper()
	store := session.New(storage.NewMemory())
	require.NoError(t, store.Load(context.Background()))
	return NewService(store, gw, res, 1500, nil), store
}

func TestSummary(t *testing.T) {
	svc, store := newTestService(t, &recordingGateway{}, nil)

	store.AddToCart(shoe)
	store.AddToCart(shoe)
	store.AddToCart(phone)

	s := svc.Summary()
	assert.Len(t, s.Items, 2)
	assert.Equal(t, int64(27000), s.Totals.SubTotal)
	assert.Equal(t, int64(1500), s.Totals.ShippingCost)
	assert.Equal(t, int64(28500), s.Totals.TotalAmount)
	assert.Nil(t, s.ShippingAddr)
	assert.Len(t, s.PaymentMethods, 3)
}

func TestSummary_SavedAddress(t *testing.T) {
	svc, store := newTestService(t, &recordingGateway{}, nil)
	store.Login("a@b.com", "Ada")
	saved := home
	store.UpdateUser(user.Update{Address: &saved})

	s := svc.Summary()
	require.NotNil(t, s.ShippingAddr)
	assert.Equal(t, "Springfield", s.ShippingAddr.City)
}

func TestPlaceOrder(t *testing.T) {
	gw := &recordingGateway{}
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)
	store.AddToCart(phone)

	res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		PaymentMethod: order.PaymentMethodUPI,
		Address:       home,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(26000), res.Order.Total)
	assert.Equal(t, order.OrderStatusProcessing, res.Order.Status)
	assert.Equal(t, "PAY-TEST", res.Payment.Reference)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, int64(26000), gw.calls[0].Amount)
	assert.Equal(t, "a@b.com", gw.calls[0].Email)

	stored, err := store.Order(res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Order.ID, stored.ID)
	assert.True(t, store.Cart().IsEmpty())
}

func TestPlaceOrder_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *session.Store)
		req     PlaceOrderRequest
		wantErr error
	}{
		{
			name:    "not logged in",
			setup:   func(s *session.Store) { s.AddToCart(shoe) },
			req:     PlaceOrderRequest{PaymentMethod: order.PaymentMethodCard, Address: home},
			wantErr: session.ErrNotLoggedIn,
		},
		{
			name:    "empty cart",
			setup:   func(s *session.Store) { s.Login("a@b.com", "Ada") },
			req:     PlaceOrderRequest{PaymentMethod: order.PaymentMethodCard, Address: home},
			wantErr: session.ErrEmptyCart,
		},
		{
			name: "unknown payment method",
			setup: func(s *session.Store) {
				s.Login("a@b.com", "Ada")
				s.AddToCart(shoe)
			},
			req:     PlaceOrderRequest{PaymentMethod: "BARTER", Address: home},
			wantErr: order.ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &recordingGateway{}
			svc, store := newTestService(t, gw, nil)
			tt.setup(store)

			_, err := svc.PlaceOrder(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, gw.calls)
			assert.Empty(t, store.Orders())
		})
	}
}

func TestPlaceOrder_MissingAddress(t *testing.T) {
	gw := &recordingGateway{}
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		PaymentMethod: order.PaymentMethodCOD,
		Address:       order.Address{City: "Springfield"},
	})

	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please provide an address", verr.Message)
	assert.Empty(t, gw.calls)
	assert.Equal(t, 1, store.Cart().Count())
}

func TestPlaceOrder_GatewayFailureKeepsCart(t *testing.T) {
	gw := &recordingGateway{err: payment.ErrPaymentDeclined}
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{PaymentMethod: order.PaymentMethodCard, Address: home})
	assert.ErrorIs(t, err, payment.ErrPaymentDeclined)
	assert.Empty(t, store.Orders())
	assert.Equal(t, 1, store.Cart().Count())
}

func TestPlaceOrder_ChargesWhatItRecords(t *testing.T) {
	gw := newBlockingGateway()
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)

	type outcome struct {
		res *PlaceOrderResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{PaymentMethod: order.PaymentMethodUPI, Address: home})
		done <- outcome{res, err}
	}()

	<-gw.started
	store.AddToCart(phone)
	close(gw.release)

	out := <-done
	require.NoError(t, out.err)
	assert.Equal(t, int64(1000), out.res.Payment.Amount)
	assert.Equal(t, out.res.Payment.Amount, out.res.Order.Total)
	require.Len(t, out.res.Order.Items, 1)
	assert.Equal(t, "p1", out.res.Order.Items[0].ID)

	remaining := store.Cart()
	require.Len(t, remaining.Items, 1)
	assert.Equal(t, "p2", remaining.Items[0].ID)
}

func TestPlaceOrder_ConcurrentSubmitChargesOnce(t *testing.T) {
	gw := newBlockingGateway()
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)

	req := PlaceOrderRequest{PaymentMethod: order.PaymentMethodCard, Address: home}
	done := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), req)
		done <- err
	}()

	<-gw.started
	_, err := svc.PlaceOrder(context.Background(), req)
	assert.ErrorIs(t, err, session.ErrEmptyCart)

	close(gw.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, gw.callCount())
	assert.Len(t, store.Orders(), 1)
}

func TestPlaceOrder_SurvivesCancelledRequest(t *testing.T) {
	gw := &recordingGateway{}
	svc, store := newTestService(t, gw, nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(shoe)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.PlaceOrder(ctx, PlaceOrderRequest{PaymentMethod: order.PaymentMethodUPI, Address: home})
	require.NoError(t, err)
	assert.NoError(t, gw.ctxErrs[0])
	assert.Len(t, store.Orders(), 1)
	assert.Equal(t, res.Order.ID, store.Orders()[0].ID)
}

func TestPlaceOrder_SimulatedGateway(t *testing.T) {
	svc, store := newTestService(t, payment.NewSimulatedGateway(5*time.Millisecond), nil)
	store.Login("a@b.com", "Ada")
	store.AddToCart(phone)

	res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{PaymentMethod: order.PaymentMethodCard, Address: home})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), res.Payment.Amount)
}

func TestLocateAddress(t *testing.T) {
	resolved := &order.Address{Street: "10 Downing St", City: "London", State: "London", ZipCode: "SW1A 2AA", Country: "UK"}
	svc, _ := newTestService(t, &recordingGateway{}, staticResolver{addr: resolved})

	addr, err := svc.LocateAddress(context.Background(), order.Coordinates{Lat: 51.5, Lng: -0.12})
	require.NoError(t, err)
	assert.Equal(t, "London", addr.City)
	require.NotNil(t, addr.Coordinates)
	assert.Equal(t, 51.5, addr.Coordinates.Lat)
	assert.Nil(t, resolved.Coordinates)
}

func TestLocateAddress_Failures(t *testing.T) {
	svc, _ := newTestService(t, &recordingGateway{}, staticResolver{})

	_, err := svc.LocateAddress(context.Background(), order.Coordinates{Lat: 120, Lng: 0})
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	_, err = svc.LocateAddress(context.Background(), order.Coordinates{Lat: 10, Lng: 10})
	assert.ErrorIs(t, err, ErrAddressUnresolved)

	noResolver, _ := newTestService(t, &recordingGateway{}, nil)
	_, err = noResolver.LocateAddress(context.Background(), order.Coordinates{Lat: 10, Lng: 10})
	assert.True(t, errors.Is(err, ErrAddressUnresolved))
}
