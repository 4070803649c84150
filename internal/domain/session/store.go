// internal/domain/session/store.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/domain/cart"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/user"
	"github.com/your-org/novastore/internal/infrastructure/storage"
	"github.com/your-org/novastore/internal/pkg/logger"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNotLoggedIn   = errors.New("no user is logged in")
	ErrOrderNotFound = errors.New("order not found")
)

const defaultPersistTimeout = 3 * time.Second

// Store owns the shopper's user, cart and order history and writes each
// slice through to the key-value store right after it changes. All access is
// serialized, so callers see the behaviour of a single actor.
type Store struct {
	mu             sync.Mutex
	kv             storage.KV
	log            *logrus.Entry
	now            func() time.Time
	persistTimeout time.Duration

	user            *user.User
	cart            cart.Cart
	orders          []order.Order
	searchQuery     string
	persistFailures int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) { s.log = logger.Component(l, "session") }
}

// WithClock overrides the time source used for order timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPersistTimeout bounds each write to the key-value store
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.persistTimeout = d }
}

// New creates an empty store over kv; call Load to rehydrate
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:             kv,
		log:            logger.Component(nil, "session"),
		now:            time.Now,
		persistTimeout: defaultPersistTimeout,
		orders:         []order.Order{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates all three slices. Corrupt or foreign-version slices are
// dropped; only a failing backend is reported.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u user.User
	ok, err := s.load(ctx, KeyUser, &u)
	if err != nil {
		return err
	}
	s.user = nil
	if ok {
		if u.Orders == nil {
			u.Orders = []order.Order{}
		}
		s.user = &u
	}

	var items []cart.Item
	if _, err := s.load(ctx, KeyCart, &items); err != nil {
		return err
	}
	s.cart = cart.Cart{Items: sanitizeItems(items)}

	var orders []order.Order
	if _, err := s.load(ctx, KeyOrders, &orders); err != nil {
		return err
	}
	if orders == nil {
		orders = []order.Order{}
	}
	s.orders = orders

	s.log.WithFields(logrus.Fields{
		"logged_in":  s.user != nil,
		"cart_items": len(s.cart.Items),
		"orders":     len(s.orders),
	}).Info("Session rehydrated")

	return nil
}

// sanitizeItems re-establishes the cart invariants on rehydrated data
func sanitizeItems(items []cart.Item) []cart.Item {
	var c cart.Cart
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		qty := item.Quantity
		c.Add(item.Product)
		c.UpdateQuantity(item.ID, qty-1)
	}
	return c.Items
}

// Login replaces any current user with a freshly created one
func (s *Store) Login(email, name string) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user.New(email, name)
	s.persistUser()

	s.log.WithField("user_id", s.user.ID).Info("User logged in")
	return s.user.Clone()
}

// Logout clears the user and the cart; order history survives
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.cart.Clear()
	s.persistUser()
	s.persistCart()
}

// UpdateUser merges upd into the current user. It reports false, changing
// nothing, when nobody is logged in.
func (s *Store) UpdateUser(upd user.Update) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return false
	}
	s.user.Apply(upd)
	s.persistUser()
	return true
}

// CurrentUser returns a copy of the logged-in user or nil
func (s *Store) CurrentUser() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

// AddToCart increments an existing line or appends a new one
func (s *Store) AddToCart(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(p)
	s.persistCart()
}

// RemoveFromCart deletes the line for productID if present
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	s.persistCart()
}

// UpdateCartQuantity adds delta to a line, never going below one
func (s *Store) UpdateCartQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.UpdateQuantity(productID, delta) {
		s.persistCart()
	}
}

// ClearCart empties the cart unconditionally
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.persistCart()
}

// Cart returns a copy of the current cart
func (s *Store) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Cart{Items: s.cart.Snapshot()}
}

// CreateOrder snapshots the cart into a Processing order, prepends it to the
// history and clears the cart. The returned order carries the only id that
// exists for it. With an empty cart nothing changes and ErrEmptyCart is returned.
func (s *Store) CreateOrder(method order.PaymentMethod, address order.Address) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	o := s.recordOrder(s.cart.Snapshot(), method, address)

	s.cart.Clear()
	s.persistCart()

	return o, nil
}

// ReserveCart takes every item out of the cart for a checkout in progress
// and leaves the cart empty. The caller either records the items with
// CreateOrderFrom or hands them back with RestoreCart.
func (s *Store) ReserveCart() ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := s.cart.Snapshot()
	s.cart.Clear()
	s.persistCart()

	return items, nil
}

// RestoreCart puts reserved items back ahead of anything added since the
// reservation
func (s *Store) RestoreCart(items []cart.Item) {
	if len(items) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := cart.Cart{Items: append([]cart.Item{}, items...)}
	restored.Merge(s.cart.Items)
	s.cart = restored
	s.persistCart()
}

// CreateOrderFrom records a Processing order for items taken out with
// ReserveCart. The cart is left as it is.
func (s *Store) CreateOrderFrom(items []cart.Item, method order.PaymentMethod, address order.Address) (*order.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recordOrder(items, method, address), nil
}

func (s *Store) recordOrder(items []cart.Item, method order.PaymentMethod, address order.Address) *order.Order {
	o := order.New(items, method, address, s.now())
	s.orders = append([]order.Order{*o}, s.orders...)
	s.persistOrders()

	s.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"total":    o.Total,
		"items":    len(o.Items),
	}).Info("Order created")

	out := *o
	return &out
}

// Orders returns the history, most recent first
func (s *Store) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Order looks up one order by id
func (s *Store) Order(id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			out := s.orders[i]
			return &out, nil
		}
	}
	return nil, ErrOrderNotFound
}

// SearchQuery returns the transient search text; it is never persisted
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// SetSearchQuery records the transient search text
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// PersistFailures returns how many writes to storage have failed
func (s *Store) PersistFailures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistFailures
}
