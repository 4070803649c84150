package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/novastore/internal/config"
	"github.com/your-org/novastore/internal/domain/checkout"
	"github.com/your-org/novastore/internal/domain/order"
	"github.com/your-org/novastore/internal/domain/payment"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/search"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/infrastructure/storage"
	"github.com/your-org/novastore/internal/pkg/logger"
	"github.com/your-org/novastore/internal/pkg/pdf"
)

type stubRecommender struct{ ids []string }

func (s stubRecommender) Recommend(context.Context, string, []product.Product) []string {
	return s.ids
}

type stubResolver struct{}

func (stubResolver) ResolveAddress(context.Context, float64, float64) *order.Address {
	return &order.Address{Street: "5 Elm St", City: "Portland", State: "OR", ZipCode: "97201", Country: "USA"}
}

type testEnv struct {
	handler http.Handler
	store   *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "Nova Store", Version: "test", Environment: "test"},
		Server:   config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second},
		JWT:      config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", SessionExpiry: time.Hour},
		Security: config.SecurityConfig{CORSAllowedOrigins: []string{"http://localhost:5173"}},
		Checkout: config.CheckoutConfig{ShippingFee: 1500},
		Receipt:  config.ReceiptConfig{CompanyName: "Nova Store"},
	}
	log := logger.Discard()

	store := session.New(storage.NewMemory(), session.WithLogger(log))
	require.NoError(t, store.Load(context.Background()))

	catalog := product.DefaultCatalog()
	tracker := search.NewTracker(catalog, stubRecommender{ids: []string{"3"}}, search.TrackerConfig{
		Timeout:        time.Second,
		MinQueryLength: 3,
	}, log)
	t.Cleanup(tracker.Close)

	srv := NewServer(cfg, Deps{
		Store:    store,
		Catalog:  catalog,
		Tracker:  tracker,
		Checkout: checkout.NewService(store, payment.NewSimulatedGateway(0), stubResolver{}, cfg.Checkout.ShippingFee, log),
		Receipts: pdf.NewService(cfg),
		Storage:  nil,
	}, log)

	return &testEnv{handler: srv.Handler(), store: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	return envelope.Data
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/session/login", "", gin.H{"email": "ada@example.com", "name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](t, w).Token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestSearch_WaitAppliesRanking(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/products?q=phone&wait=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[search.View](t, w)
	assert.Equal(t, "phone", view.Query)
	assert.False(t, view.Pending)
	require.Len(t, view.Products, 2)
	assert.Equal(t, "3", view.Products[0].ID)
	assert.Equal(t, "1", view.Products[1].ID)
	assert.Equal(t, "phone", env.store.SearchQuery())
}

func TestSearch_NoQueryListsCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[search.View](t, w).Products, 8)

	w = env.do(t, http.MethodGet, "/api/v1/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, []string{"Electronics", "Fashion", "Home"}, decode[[]string](t, w))
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)

	type cartBody struct {
		Count int `json:"count"`
		Items []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "", gin.H{"productId": "3"})
	require.Equal(t, http.StatusOK, w.Code)
	env.do(t, http.MethodPost, "/api/v1/cart/items", "", gin.H{"productId": "3"})

	got := decode[cartBody](t, env.do(t, http.MethodGet, "/api/v1/cart", "", nil))
	assert.Equal(t, 2, got.Count)

	got = decode[cartBody](t, env.do(t, http.MethodPatch, "/api/v1/cart/items/3", "", gin.H{"delta": -5}))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)

	w = env.do(t, http.MethodPatch, "/api/v1/cart/items/3", "", gin.H{"delta": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[cartBody](t, w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)

	w = env.do(t, http.MethodPatch, "/api/v1/cart/items/3", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/cart/items", "", gin.H{"productId": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	got = decode[cartBody](t, env.do(t, http.MethodDelete, "/api/v1/cart/items/3", "", nil))
	assert.Equal(t, 0, got.Count)
	assert.NotNil(t, got.Items)
}

func TestLogin_NameIsOptional(t *testing.T) {
	env := newTestEnv(t)

	type sessionBody struct {
		Token string `json:"token"`
		User  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}

	w := env.do(t, http.MethodPost, "/api/v1/session/login", "", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[sessionBody](t, w)
	assert.Equal(t, "ada", got.User.Name)
	assert.NotEmpty(t, got.Token)

	w = env.do(t, http.MethodPost, "/api/v1/session/login", "", gin.H{"email": "shopper"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[sessionBody](t, w)
	assert.Equal(t, "shopper", got.User.Email)
	assert.Equal(t, "shopper", got.User.Name)

	w = env.do(t, http.MethodPost, "/api/v1/session/login", "", gin.H{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/checkout/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/orders", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.login(t)
	w = env.do(t, http.MethodGet, "/api/v1/checkout/summary", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/session/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/checkout/summary", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "", gin.H{"productId": "1"})
	env.do(t, http.MethodPost, "/api/v1/cart/items", "", gin.H{"productId": "5"})

	w := env.do(t, http.MethodPost, "/api/v1/checkout/orders", token, gin.H{
		"paymentMethod": "card",
		"address":       gin.H{"city": "Portland"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide an address")

	w = env.do(t, http.MethodPost, "/api/v1/checkout/orders", token, gin.H{
		"paymentMethod": "CRYPTO",
		"address":       gin.H{"street": "5 Elm St", "city": "Portland"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/checkout/orders", token, gin.H{
		"paymentMethod": "card",
		"address":       gin.H{"street": "5 Elm St", "city": "Portland"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	placed := decode[struct {
		Order order.Order `json:"order"`
	}](t, w).Order
	assert.Equal(t, order.OrderStatusProcessing, placed.Status)
	assert.Equal(t, order.PaymentMethodCard, placed.PaymentMethod)
	assert.True(t, env.store.Cart().IsEmpty())

	w = env.do(t, http.MethodGet, "/api/v1/orders/"+placed.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, placed.Total, decode[order.Order](t, w).Total)

	w = env.do(t, http.MethodGet, "/api/v1/orders/"+placed.ID+"/receipt?format=html", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), placed.ID)

	w = env.do(t, http.MethodGet, "/api/v1/orders/ORD-MISSING", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/checkout/orders", token, gin.H{
		"paymentMethod": "UPI",
		"address":       gin.H{"street": "5 Elm St", "city": "Portland"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	orders := decode[[]order.Order](t, env.do(t, http.MethodGet, "/api/v1/orders", token, nil))
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}

func TestLocateAddress(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/v1/checkout/locate", token, gin.H{"lat": 45.5, "lng": -122.6})
	require.Equal(t, http.StatusOK, w.Code)
	addr := decode[order.Address](t, w)
	assert.Equal(t, "Portland", addr.City)
	require.NotNil(t, addr.Coordinates)
	assert.Equal(t, 45.5, addr.Coordinates.Lat)

	w = env.do(t, http.MethodPost, "/api/v1/checkout/locate", token, gin.H{"lat": 200, "lng": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/v1/profile", token, gin.H{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "555-0100", env.store.CurrentUser().Phone)
	assert.Equal(t, "Ada", env.store.CurrentUser().Name)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
