package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/almacen-kardex/internal/application/analytics"
	"github.com/jhoicas/almacen-kardex/internal/application/auth"
	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
	"github.com/jhoicas/almacen-kardex/internal/domain/access"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	UnitUC           *usecase.UnitUseCase
	GroupUC          *usecase.GroupUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	ImportUC         *inventory.ImportOpeningBalanceUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	PDFGenerator     inventory.ReportPDFGenerator
	UserRepo         repository.UserRepository
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	read := func(m access.Module) fiber.Handler { return RequireAccess(m, access.ActionRead) }
	write := func(m access.Module) fiber.Handler { return RequireAccess(m, access.ActionWrite) }

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo))
	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", read(access.ModuleUsers), userHandler.List)
	users.Post("/", write(access.ModuleUsers), userHandler.Create)
	users.Post("/:id/toggle", write(access.ModuleUsers), userHandler.Toggle)

	// Catálogos: se leen con permiso de productos, se editan desde configuración.
	catalogHandler := NewCatalogHandler(deps.UnitUC, deps.GroupUC)
	units := protected.Group("/units")
	units.Get("/", read(access.ModuleProducts), catalogHandler.ListUnits)
	units.Post("/", write(access.ModuleSettings), catalogHandler.CreateUnit)
	units.Post("/:id/toggle", write(access.ModuleSettings), catalogHandler.ToggleUnit)
	groups := protected.Group("/groups")
	groups.Get("/", read(access.ModuleProducts), catalogHandler.ListGroups)
	groups.Post("/", write(access.ModuleSettings), catalogHandler.CreateGroup)
	groups.Post("/:id/toggle", write(access.ModuleSettings), catalogHandler.ToggleGroup)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockUC, deps.ImportUC, deps.PDFGenerator)
	products := protected.Group("/products")
	products.Get("/", read(access.ModuleProducts), productHandler.List)
	products.Post("/", write(access.ModuleProducts), productHandler.Create)
	products.Get("/:id", read(access.ModuleProducts), productHandler.GetByID)
	products.Put("/:id", write(access.ModuleProducts), productHandler.Update)
	products.Post("/:id/toggle", write(access.ModuleProducts), productHandler.Toggle)
	products.Get("/:id/stock", read(access.ModuleProducts), inventoryHandler.Stock)

	// Kardex
	kardex := protected.Group("/kardex")
	kardex.Get("/:id", read(access.ModuleReports), inventoryHandler.Kardex)
	kardex.Get("/:id/pdf", read(access.ModuleReports), inventoryHandler.KardexPDF)

	// Movements
	movements := protected.Group("/movements")
	movements.Get("/", read(access.ModuleMovements), inventoryHandler.ListMovements)
	movements.Post("/", write(access.ModuleMovements), inventoryHandler.RegisterMovement)

	// Reportes de inventario
	inv := protected.Group("/inventory")
	inv.Get("/low-stock", read(access.ModuleReports), inventoryHandler.LowStock)
	inv.Get("/low-stock/pdf", read(access.ModuleReports), inventoryHandler.LowStockPDF)
	inv.Get("/summary", read(access.ModuleReports), inventoryHandler.Summary)
	inv.Post("/import", write(access.ModuleSettings), inventoryHandler.Import)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", read(access.ModuleReports), dashboardHandler.GetSummary)
}
