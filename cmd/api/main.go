// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/config"
	"github.com/your-org/novastore/internal/domain/checkout"
	"github.com/your-org/novastore/internal/domain/payment"
	"github.com/your-org/novastore/internal/domain/product"
	"github.com/your-org/novastore/internal/domain/search"
	"github.com/your-org/novastore/internal/domain/session"
	"github.com/your-org/novastore/internal/infrastructure/database/gormdb"
	"github.com/your-org/novastore/internal/infrastructure/database/redis"
	"github.com/your-org/novastore/internal/infrastructure/storage"
	"github.com/your-org/novastore/internal/interfaces/http"
	"github.com/your-org/novastore/internal/pkg/gemini"
	"github.com/your-org/novastore/internal/pkg/logger"
	"github.com/your-org/novastore/internal/pkg/pdf"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	}).Infof("Starting %s", cfg.App.Name)

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = redis.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
	}

	kv, health, closeKV := openStorage(cfg, log, redisClient)
	defer closeKV()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load catalog")
	}
	log.WithField("products", catalog.Len()).Info("Catalog loaded")

	store := session.New(kv, session.WithLogger(log))
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Load(loadCtx); err != nil {
		cancelLoad()
		log.WithError(err).Fatal("Failed to restore session state")
	}
	cancelLoad()

	ai, err := gemini.NewClient(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create AI client")
	}

	var recommender search.Recommender
	if ai.Enabled() {
		recommender = ai
	}
	tracker := search.NewTracker(catalog, recommender, search.TrackerConfig{
		QuietPeriod:    cfg.AI.QuietPeriod,
		Timeout:        cfg.AI.RequestTimeout,
		MinQueryLength: cfg.AI.MinQueryLength,
	}, log)
	defer tracker.Close()

	gateway := payment.NewSimulatedGateway(cfg.Checkout.ConfirmationLatency)
	checkoutService := checkout.NewService(store, gateway, ai, cfg.Checkout.ShippingFee, log)

	deps := http.Deps{
		Store:    store,
		Catalog:  catalog,
		Tracker:  tracker,
		Checkout: checkoutService,
		Receipts: pdf.NewService(cfg),
	}
	if redisClient != nil {
		deps.Redis = redisClient.Limiter()
	}
	if health != nil {
		deps.Storage = health
	}

	server := http.NewServer(cfg, deps, log)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.WithField("persist_failures", store.PersistFailures()).Info("Server shutdown completed")
}

// openStorage picks the key-value backend for session slices
func openStorage(cfg *config.Config, log *logrus.Logger, redisClient *redis.Client) (storage.KV, http.HealthChecker, func()) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		return redisClient.KV(cfg.Storage.KeyPrefix), redisClient, func() {}

	case config.StorageSQLite, config.StoragePostgres:
		db, err := gormdb.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		if err := gormdb.NewMigration(db.GetDB()).RunAutoMigrations(); err != nil {
			log.WithError(err).Fatal("Database migration failed")
		}
		return gormdb.NewKV(db.GetDB(), cfg.Storage.KeyPrefix), db, func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("Failed to close database")
			}
		}
	}

	mem := storage.NewMemory()
	return mem, nil, func() { _ = mem.Close() }
}

func loadCatalog(cfg *config.Config) (*product.Catalog, error) {
	if cfg.Catalog.File == "" {
		return product.DefaultCatalog(), nil
	}
	return product.LoadCatalogFile(cfg.Catalog.File)
}
