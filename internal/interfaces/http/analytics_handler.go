package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biztrack/biztrack-api/internal/application/usecase"
)

// AnalyticsHandler maneja las consultas de analítica (protegido, solo lectura).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ProfitMetrics godoc
// @Summary      Ganancia de hoy, últimos 7 días y últimos 30 días
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfitMetricsDTO
// @Router       /api/analytics/profit-metrics [get]
func (h *AnalyticsHandler) ProfitMetrics(c *fiber.Ctx) error {
	out, err := h.uc.ProfitMetrics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyProfitSeries godoc
// @Summary      Serie diaria de ganancias (días sin ventas en cero)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás"  default(7)
// @Success      200   {array}  dto.SeriesPointDTO
// @Router       /api/analytics/daily-profit [get]
func (h *AnalyticsHandler) DailyProfitSeries(c *fiber.Ctx) error {
	out, err := h.uc.DailyProfitSeries(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WeeklyProfitSeries godoc
// @Summary      Serie semanal de ganancias (buckets de 7 días terminando hoy)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        weeks  query  int  false  "Semanas hacia atrás"  default(4)
// @Success      200    {array}  dto.SeriesPointDTO
// @Router       /api/analytics/weekly-profit [get]
func (h *AnalyticsHandler) WeeklyProfitSeries(c *fiber.Ctx) error {
	out, err := h.uc.WeeklyProfitSeries(c.Context(), c.QueryInt("weeks", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BestSellers godoc
// @Summary      Ranking de productos por unidades vendidas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Tamaño del ranking"  default(5)
// @Success      200    {array}  dto.ProductStatsDTO
// @Router       /api/analytics/best-sellers [get]
func (h *AnalyticsHandler) BestSellers(c *fiber.Ctx) error {
	out, err := h.uc.BestSellingProducts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lossmaking godoc
// @Summary      Productos con pérdida (profit agregado negativo o cero con ventas)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductStatsDTO
// @Router       /api/analytics/lossmaking [get]
func (h *AnalyticsHandler) Lossmaking(c *fiber.Ctx) error {
	out, err := h.uc.LossmakingProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductMetrics godoc
// @Summary      Métricas históricas de un producto más serie de 6 meses
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductMetricsDTO
// @Router       /api/analytics/products/{id}/metrics [get]
func (h *AnalyticsHandler) ProductMetrics(c *fiber.Ctx) error {
	out, err := h.uc.ProductMetrics(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductCurrentMonthSales godoc
// @Summary      Unidades vendidas por día del mes en curso (mes completo)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.DailySalesDTO
// @Router       /api/analytics/products/{id}/current-month [get]
func (h *AnalyticsHandler) ProductCurrentMonthSales(c *fiber.Ctx) error {
	out, err := h.uc.ProductCurrentMonthSales(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TotalSales godoc
// @Summary      Número total de ventas registradas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalSalesDTO
// @Router       /api/analytics/total-sales [get]
func (h *AnalyticsHandler) TotalSales(c *fiber.Ctx) error {
	out, err := h.uc.TotalSales(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
