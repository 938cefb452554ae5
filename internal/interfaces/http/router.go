package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biztrack/biztrack-api/internal/application/auth"
	"github.com/biztrack/biztrack-api/internal/application/ledger"
	"github.com/biztrack/biztrack-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	LedgerUC    *ledger.UseCase
	BusinessUC  *auth.BusinessUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Business / pantalla de bloqueo. Setup, Get, Unlock y ResetPassword son
	// públicos: corren antes de que exista una sesión.
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	business := api.Group("/business")
	business.Post("/", businessHandler.Setup)
	business.Get("/", businessHandler.Get)
	business.Post("/unlock", businessHandler.Unlock)
	business.Post("/reset-password", businessHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token de la sesión de desbloqueo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protectedBusiness := protected.Group("/business")
	protectedBusiness.Put("/", businessHandler.Update)
	protectedBusiness.Put("/password", businessHandler.SetPassword)
	protectedBusiness.Put("/security-question", businessHandler.SetSecurityQA)
	protectedBusiness.Put("/reset-email", businessHandler.SetResetEmail)
	protectedBusiness.Put("/reminder-time", businessHandler.SetReminderTime)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/last-batch", productHandler.LastBatch)
	products.Delete("/:id", productHandler.Delete)

	// Inventory (protegido): reposición y venta
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inventory.Post("/restock", inventoryHandler.Restock)
	inventory.Post("/sell", inventoryHandler.Sell)

	// Analytics (protegido, solo lectura)
	analytics := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/profit-metrics", analyticsHandler.ProfitMetrics)
	analytics.Get("/daily-profit", analyticsHandler.DailyProfitSeries)
	analytics.Get("/weekly-profit", analyticsHandler.WeeklyProfitSeries)
	analytics.Get("/best-sellers", analyticsHandler.BestSellers)
	analytics.Get("/lossmaking", analyticsHandler.Lossmaking)
	analytics.Get("/total-sales", analyticsHandler.TotalSales)
	analytics.Get("/products/:id/metrics", analyticsHandler.ProductMetrics)
	analytics.Get("/products/:id/current-month", analyticsHandler.ProductCurrentMonthSales)
}
