package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/retail/backend/internal/application/catalog"
	inventoryapp "github.com/retail/backend/internal/application/inventory"
	locationapp "github.com/retail/backend/internal/application/location"
	orderapp "github.com/retail/backend/internal/application/order"
	shippingapp "github.com/retail/backend/internal/application/shipping"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/infrastructure/cache"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/retail/backend/internal/infrastructure/logger"
	"github.com/retail/backend/internal/infrastructure/persistence"
	"github.com/retail/backend/internal/infrastructure/storage"
	"github.com/retail/backend/internal/interfaces/http/handler"
	"github.com/retail/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting retail backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Transaction scopes over the shared connection
	txScope := persistence.NewGormTransactionScope(db.DB)
	orderTxScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Standalone repositories for the read-mostly services
	locationRepo := persistence.NewGormSalesLocationRepository(db.DB)
	addressRepo := persistence.NewGormDeliveryAddressRepository(db.DB)
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Payment proof image store. Without a configured bucket the order flow
	// still accepts payment URLs, only base64 uploads are rejected.
	var imageStore orderapp.ImageStore
	if cfg.Storage.Bucket != "" && cfg.Storage.AccessKey != "" {
		s3Store, err := storage.NewS3ImageStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image store", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure payment proof bucket", zap.Error(err))
		}
		cancel()
		imageStore = s3Store
		log.Info("Image store initialized", zap.String("bucket", s3Store.GetBucket()))
	} else {
		log.Warn("Image store not configured, base64 payment uploads disabled")
	}

	// Application services
	productService := catalogapp.NewProductService(txScope, log)
	stockService := inventoryapp.NewStockService(txScope, log)
	locationService := locationapp.NewService(locationRepo, addressRepo, orderRepo, log)
	quoteService := shippingapp.NewQuoteService(shippingapp.Repositories{
		Locations:   locationRepo,
		Addresses:   addressRepo,
		Allocations: allocationRepo,
	}, log)
	orderService := orderapp.NewService(orderTxScope, imageStore, log)

	// Idempotency store for duplicate order suppression
	if cfg.Idempotency.Enabled {
		factory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
		idemStore, err := factory.CreateStore(cfg.Idempotency.Backend)
		if err != nil {
			log.Fatal("Failed to initialize idempotency store", zap.Error(err))
		}
		defer func() {
			if err := idemStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
		orderService.SetIdempotencyStore(idemStore, shared.IdempotencyConfig{
			Enabled: true,
			TTL:     cfg.Idempotency.TTL,
		})
		log.Info("Idempotency store initialized",
			zap.String("backend", cfg.Idempotency.Backend),
			zap.Duration("ttl", cfg.Idempotency.TTL),
		)
	}

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP layer
	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Product:  handler.NewProductHandler(productService),
			Stock:    handler.NewStockHandler(stockService),
			Order:    handler.NewOrderHandler(orderService),
			Location: handler.NewLocationHandler(locationService),
			Shipping: handler.NewShippingHandler(quoteService),
		},
		JWTService: jwtService,
		HTTP:       cfg.HTTP,
		Env:        cfg.App.Env,
		Logger:     log,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
