package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/auth"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/ledger"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/sales"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/application/usecase"
	"github.com/bubaa-a/Sijo-Perfum-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SaleUC     *sales.SaleUseCase
	LedgerUC   *ledger.LedgerUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Sales (protegido; anular ventas es de admin)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Accounts (protegido; la limpieza es de admin)
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.LedgerUC)
	// "/pending" va antes que "/:customerId" para que no lo capture el parámetro.
	accounts.Get("/pending", accountHandler.Pending)
	accounts.Post("/:customerId", accountHandler.Ensure)
	accounts.Get("/:customerId/balance", accountHandler.Balance)
	accounts.Get("/:customerId/movements", accountHandler.Movements)
	accounts.Post("/:customerId/payments", accountHandler.Pay)
	accounts.Get("/:customerId/payments", accountHandler.Payments)
	accounts.Delete("/:customerId", adminOnly, accountHandler.Cleanup)
}
