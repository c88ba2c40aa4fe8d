// Command seed loads a minimal working dataset: an admin account, a demo
// store, a few products and opening stock.
package main

import (
	"context"
	"os"

	"salespoint/internal/core/location"
	"salespoint/internal/domain/auth"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/infrastructure/storage/postgres"
	"salespoint/internal/infrastructure/storage/postgres/auth_repo"
	"salespoint/internal/infrastructure/storage/postgres/catalog_repo"
	"salespoint/internal/infrastructure/storage/postgres/inventory_repo"
	"salespoint/pkg/logger"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal(ctx, "DATABASE_URL is required")
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Fatal(ctx, "SEED_ADMIN_PASSWORD is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		logger.Fatal(ctx, "database connection failed", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	authService := auth.NewService(auth_repo.NewUserRepo(txm), auth.NewTokenIssuer("seed-unused", 0))
	storeService := store.NewService(catalog_repo.NewStoreRepo(txm))
	productService := product.NewService(catalog_repo.NewProductRepo(txm))
	inventoryService := inventory.NewService(inventory_repo.NewInventoryRepo(txm))

	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		admin, err := authService.Register(ctx, auth.RegisterInput{
			Username: "admin",
			FullName: "Administrator",
			Password: adminPassword,
			Roles:    []string{auth.RoleAdmin, auth.RoleManager, auth.RoleCashier},
		})
		if err != nil {
			return err
		}
		logger.Info(ctx, "admin created", "user_id", admin.ID)

		demoStore, err := storeService.Create(ctx, store.CreateInput{
			Code:    "MAIN",
			Name:    "Main Street Store",
			Address: "1 Main Street",
		})
		if err != nil {
			return err
		}

		products := []product.CreateInput{
			{Name: "Americano", SKU: "AM-01", UnitPrice: 1000, Category: "beverages", MinStock: 20},
			{Name: "Latte", SKU: "LA-01", UnitPrice: 1250, Category: "beverages", MinStock: 20},
			{Name: "Bagel", SKU: "BG-01", UnitPrice: 550, Category: "bakery", MinStock: 10},
			{Name: "Croissant", SKU: "CR-01", UnitPrice: 700, Category: "bakery", MinStock: 10},
		}
		for _, in := range products {
			p, err := productService.Create(ctx, in)
			if err != nil {
				return err
			}
			if err := inventoryService.Credit(ctx, p.ID, location.Store(demoStore.ID), 100); err != nil {
				return err
			}
			if err := inventoryService.Credit(ctx, p.ID, location.DistributionCenter(), 1000); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Fatal(ctx, "seed failed", "error", err)
	}

	logger.Info(ctx, "seed completed")
}
