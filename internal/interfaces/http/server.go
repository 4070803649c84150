// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/config"
	"github.com/your-org/novastore/internal/domain/checkout"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/search"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/interfaces/http/handlers"
	"github.com/your-org/novastore/internal/interfaces/http/middleware"
	"github.com/your-org/novastore/internal/interfaces/http/routes"
	"github.com/your-org/novastore/internal/pkg/auth"
)

// HealthChecker reports the health of a backing service
type HealthChecker interface {
	Health() error
}

// Deps are the services the server exposes
type Deps struct {
	Store    *session.Store
	Catalog  *product.Catalog
	Tracker  *search.Tracker
	Checkout *checkout.Service
	Receipts handlers.ReceiptRenderer
	Redis    *redis.Client
	Storage  HealthChecker
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	deps       Deps
	log        *logrus.Logger
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance with routes installed
func NewServer(cfg *config.Config, deps Deps, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		deps:      deps,
		log:       log,
		gin:       gin.New(),
		startedAt: time.Now(),
	}

	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.WithError(err).Warn("Ignoring invalid TRUSTED_PROXIES")
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"base_url": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Recovery(s.log))
	s.gin.Use(middleware.Logger(s.log))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config, s.deps.Redis, s.log))
	s.gin.Use(middleware.RequestSizeLimit(1 << 20))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)

	h := &routes.Handlers{
		Products: handlers.NewProductHandler(s.deps.Catalog, s.deps.Tracker, s.deps.Store),
		Session:  handlers.NewSessionHandler(s.deps.Store, auth.NewJWTManager(s.config)),
		Cart:     handlers.NewCartHandler(s.deps.Store, s.deps.Catalog, s.config.Checkout.ShippingFee),
		Checkout: handlers.NewCheckoutHandler(s.deps.Checkout),
		Orders:   handlers.NewOrderHandler(s.deps.Store, s.deps.Receipts),
	}

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, h, auth.NewJWTManager(s.config), s.deps.Store)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if s.deps.Storage != nil {
		if err := s.deps.Storage.Health(); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		} else {
			checks["storage"] = "ok"
		}
	}

	if s.deps.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":           status,
		"checks":           checks,
		"persist_failures": s.deps.Store.PersistFailures(),
		"timestamp":        time.Now().UTC(),
		"uptime":           time.Since(s.startedAt).Round(time.Second).String(),
		"version":          s.config.App.Version,
		"environment":      s.config.App.Environment,
	})
}
