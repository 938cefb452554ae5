package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyProfitRow fila cruda de agregación por día. Solo aparecen los días con
// ventas; el use case rellena los días vacíos.
type DailyProfitRow struct {
	Day    time.Time // día calendario (componente de fecha, UTC)
	Profit decimal.Decimal
	Count  int
}

// DailyQuantityRow unidades vendidas de un producto en un día calendario.
type DailyQuantityRow struct {
	Day          time.Time
	QuantitySold int64
}

// MonthlyProductRow agregación mensual de ventas de un producto.
// Month en formato "YYYY-MM".
type MonthlyProductRow struct {
	Month     string
	Profit    decimal.Decimal
	TotalSold int64
	Revenue   decimal.Decimal
}

// ProductSalesRow agregación de ventas por producto (LEFT JOIN: productos sin
// ventas aparecen con cero).
type ProductSalesRow struct {
	ProductID    string
	Name         string
	QuantitySold int64
	Profit       decimal.Decimal
}

// ProductTotalsRow métricas históricas de un producto.
// AvgProfit es el promedio de profit por fila de venta (no por unidad).
type ProductTotalsRow struct {
	TotalProfit  decimal.Decimal
	TotalRevenue decimal.Decimal // Σ sellingPrice × quantitySold
	TotalSold    int64
	AvgProfit    decimal.Decimal
}

// AnalyticsRepository define las consultas de solo lectura sobre ventas y
// productos. Todas las comparaciones de fecha son por el componente de día
// calendario (UTC) del timestamp almacenado. Los montos se devuelven crudos,
// sin redondear: el redondeo es un asunto de presentación del use case.
type AnalyticsRepository interface {
	// SumProfitOn suma el profit de las ventas fechadas exactamente en `day`.
	SumProfitOn(ctx context.Context, day time.Time) (decimal.Decimal, error)

	// SumProfitAfter suma el profit de las ventas con fecha ESTRICTAMENTE
	// posterior a `day` (intervalo abierto: el día límite queda fuera).
	SumProfitAfter(ctx context.Context, day time.Time) (decimal.Decimal, error)

	// SumProfitBetween suma profit y cuenta ventas con fecha en [start, end],
	// ambos extremos INCLUIDOS (intervalo cerrado).
	SumProfitBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)

	// ProfitByDay agrupa profit y número de ventas por día calendario dentro
	// de [from, to] inclusive. Días sin ventas no aparecen.
	ProfitByDay(ctx context.Context, from, to time.Time) ([]DailyProfitRow, error)

	// ProductSalesRanking devuelve todos los productos con sus totales de
	// ventas (cero si no tienen), ordenados por QuantitySold descendente,
	// truncado a limit.
	ProductSalesRanking(ctx context.Context, limit int) ([]ProductSalesRow, error)

	// LossmakingProducts devuelve los productos con profit agregado negativo,
	// o cero habiendo vendido unidades, ordenados del peor al mejor.
	LossmakingProducts(ctx context.Context) ([]ProductSalesRow, error)

	// ProductTotals devuelve las métricas históricas del producto
	// (cero en todo si no tiene ventas).
	ProductTotals(ctx context.Context, productID string) (ProductTotalsRow, error)

	// ProductProfitByMonth agrupa las ventas del producto por año-mes del
	// timestamp, desde `from` inclusive. Meses sin ventas no aparecen.
	ProductProfitByMonth(ctx context.Context, productID string, from time.Time) ([]MonthlyProductRow, error)

	// ProductQuantityByDay suma unidades vendidas del producto por día dentro
	// de [from, to] inclusive. Días sin ventas no aparecen.
	ProductQuantityByDay(ctx context.Context, productID string, from, to time.Time) ([]DailyQuantityRow, error)

	// CountSales devuelve el número total de ventas registradas.
	CountSales(ctx context.Context) (int64, error)
}
