// Package v1 assembles the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/domain/auth"
	"salespoint/internal/domain/catalogs/customer"
	"salespoint/internal/domain/catalogs/product"
	"salespoint/internal/domain/catalogs/store"
	"salespoint/internal/domain/inventory"
	"salespoint/internal/domain/sales"
	"salespoint/internal/infrastructure/http/v1/handlers"
	"salespoint/internal/infrastructure/http/v1/middleware"
	"salespoint/internal/infrastructure/storage/postgres"
)

// Deps carries everything the router needs.
type Deps struct {
	Pool        *postgres.Pool
	TokenIssuer *auth.TokenIssuer

	AuthService      *auth.Service
	SalesService     *sales.Service
	InventoryService *inventory.Service
	ProductService   *product.Service
	StoreService     *store.Service
	CustomerService  *customer.Service
}

// NewRouter builds the Gin engine with all v1 routes.
func NewRouter(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	health := handlers.NewHealthHandler(deps.Pool)
	engine.GET("/health/live", health.Live)
	engine.GET("/health/ready", health.Ready)

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	salesHandler := handlers.NewSalesHandler(deps.SalesService)
	inventoryHandler := handlers.NewInventoryHandler(deps.InventoryService)
	productHandler := handlers.NewProductHandler(deps.ProductService)
	storeHandler := handlers.NewStoreHandler(deps.StoreService)
	customerHandler := handlers.NewCustomerHandler(deps.CustomerService)

	api := engine.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.Auth(deps.TokenIssuer))
	{
		tx := authed.Group("/sales-transactions")
		tx.POST("", salesHandler.Checkout)
		tx.GET("", salesHandler.List)
		tx.GET("/:id", salesHandler.Get)
		tx.GET("/:id/receipt", salesHandler.Receipt)
		tx.GET("/:id/actions", salesHandler.Actions)

		// Reversals need the manager role.
		reversal := tx.Group("", middleware.RequireRole(auth.RoleManager))
		reversal.POST("/:id/cancel", salesHandler.Cancel)
		reversal.POST("/:id/refund", salesHandler.Refund)

		inv := authed.Group("/inventory")
		inv.GET("", inventoryHandler.List)
		inv.GET("/availability", inventoryHandler.Availability)
		inv.GET("/low-stock", inventoryHandler.LowStock)
		inv.POST("/receive", middleware.RequireRole(auth.RoleManager), inventoryHandler.Receive)

		catalog := authed.Group("/catalog")
		{
			products := catalog.Group("/products")
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", middleware.RequireRole(auth.RoleManager), productHandler.Create)
			products.PUT("/:id", middleware.RequireRole(auth.RoleManager), productHandler.Update)
			products.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), productHandler.Delete)

			stores := catalog.Group("/stores")
			stores.GET("", storeHandler.List)
			stores.GET("/:id", storeHandler.Get)
			stores.POST("", middleware.RequireRole(auth.RoleAdmin), storeHandler.Create)
			stores.PUT("/:id", middleware.RequireRole(auth.RoleAdmin), storeHandler.Update)
			stores.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), storeHandler.Delete)

			customers := catalog.Group("/customers")
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.Get)
			customers.POST("", customerHandler.Create)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", middleware.RequireRole(auth.RoleManager), customerHandler.Delete)
		}
	}

	return engine
}
