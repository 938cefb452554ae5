package dto

import "github.com/shopspring/decimal"

// ProfitMetricsDTO ganancias del día, de los últimos 7 días y de los últimos
// 30 días, redondeadas a la unidad de moneda. Los campos *Display llevan el
// número formateado con separador de miles para mostrar directo en tarjetas.
type ProfitMetricsDTO struct {
	Daily          int64  `json:"daily"`
	Weekly         int64  `json:"weekly"`
	Monthly        int64  `json:"monthly"`
	DailyDisplay   string `json:"daily_display"`
	WeeklyDisplay  string `json:"weekly_display"`
	MonthlyDisplay string `json:"monthly_display"`
}

// SeriesPointDTO un punto de una serie temporal de ganancias.
// Label es la fecha ("2026-08-31") en la serie diaria o la etiqueta del
// bucket ("Week 2") en la semanal.
type SeriesPointDTO struct {
	Label  string `json:"label"`
	Profit int64  `json:"profit"`
	Count  int    `json:"count"`
}

// ProductStatsDTO totales de ventas de un producto para rankings.
// Profit va crudo, sin redondear (el redondeo aquí es asunto del cliente).
type ProductStatsDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	Profit       decimal.Decimal `json:"profit"`
}

// ProductMonthlyDTO agregado mensual de un producto. Month es la etiqueta
// corta del mes ("Jan", "Feb").
type ProductMonthlyDTO struct {
	Month     string `json:"month"`
	Profit    int64  `json:"profit"`
	TotalSold int64  `json:"total_sold"`
	Revenue   int64  `json:"revenue"`
}

// ProductMetricsDTO métricas históricas de un producto más la serie de los
// últimos meses. AvgProfit es promedio por venta (por fila, no por unidad).
type ProductMetricsDTO struct {
	TotalProfit  int64               `json:"total_profit"`
	TotalRevenue int64               `json:"total_revenue"`
	TotalSold    int64               `json:"total_sold"`
	AvgProfit    int64               `json:"avg_profit"`
	MonthlyData  []ProductMonthlyDTO `json:"monthly_data"`
}

// DailySalesDTO unidades vendidas en un día del mes en curso.
type DailySalesDTO struct {
	Day          string `json:"day"` // día del mes: "1".."31"
	QuantitySold int64  `json:"quantity_sold"`
	MonthLabel   string `json:"month_label"` // "Jan"
	MonthYear    string `json:"month_year"`  // "January 2026"
}

// TotalSalesDTO número total de ventas registradas.
type TotalSalesDTO struct {
	Count int64 `json:"count"`
}
