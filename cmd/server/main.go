// Command server runs the salespoint HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"salespoint/internal/core/types"
	"salespoint/internal/domain/auth"
	"salespoint/internal/domain/catalogs/customer"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/domain/invoice"
	"salespoint/internal/domain/sales"
	v1 "salespoint/internal/infrastructure/http/v1"
	pginvoice "salespoint/internal/infrastructure/invoice"
	"salespoint/internal/infrastructure/storage/postgres"
	"salespoint/internal/infrastructure/storage/postgres/auth_repo"
	"salespoint/internal/infrastructure/storage/postgres/catalog_repo"
	"salespoint/internal/infrastructure/storage/postgres/inventory_repo"
	"salespoint/internal/infrastructure/storage/postgres/sales_repo"
	"salespoint/pkg/logger"
)

func main() {
	ctx := context.Background()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "production") == "development",
	})
	if err != nil {
		panic(err)
	}
	ctx = logger.WithLogger(ctx, log)

	if getEnv("APP_ENV", "production") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := mustEnv(ctx, "DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		logger.Fatal(ctx, "database connection failed", "error", err)
	}
	defer pool.Close()

	taxRate, err := types.ParseTaxRate(getEnv("TAX_RATE", "0.10"))
	if err != nil {
		logger.Fatal(ctx, "invalid TAX_RATE", "error", err)
	}

	txm := postgres.NewTxManager(pool)

	actionStore, err := postgres.NewActionStore(txm)
	if err != nil {
		logger.Fatal(ctx, "action store init failed", "error", err)
	}

	inventoryService := inventory.NewService(inventory_repo.NewInventoryRepo(txm))
	productService := product.NewService(catalog_repo.NewProductRepo(txm))
	storeService := store.NewService(catalog_repo.NewStoreRepo(txm))
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txm))

	issuer := invoice.NewIssuer(pginvoice.NewPGSequencer(txm))

	salesConfig := sales.DefaultConfig()
	salesConfig.TaxRate = taxRate
	salesService := sales.NewService(
		salesConfig,
		sales_repo.NewTransactionRepo(txm),
		actionStore,
		inventoryService,
		issuer,
		productService,
		storeService,
		txm,
	)

	tokenIssuer := auth.NewTokenIssuer(mustEnv(ctx, "JWT_SECRET"), 0)
	authService := auth.NewService(auth_repo.NewUserRepo(txm), tokenIssuer)

	router := v1.NewRouter(v1.Deps{
		Pool:             pool,
		TokenIssuer:      tokenIssuer,
		AuthService:      authService,
		SalesService:     salesService,
		InventoryService: inventoryService,
		ProductService:   productService,
		StoreService:     storeService,
		CustomerService:  customerService,
	})

	addr := ":" + getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "graceful shutdown failed", "error", err)
	}
	logger.Info(ctx, "server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(ctx context.Context, key string) string {
	v := os.Getenv(key)
	if v == "" {
		logger.Fatal(ctx, "required environment variable missing", "key", key)
	}
	return v
}
