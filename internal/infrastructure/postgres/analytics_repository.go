package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación de AnalyticsRepository sobre PostgreSQL.
// Solo lectura: corre fuera de transacción, directo contra el pool, y por eso
// recibe el contexto del request en cada método. Las comparaciones de fecha
// usan created_at::date, el componente de día calendario del timestamp.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de consultas de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SumProfitOn suma el profit de las ventas fechadas exactamente en day.
func (r *AnalyticsRepo) SumProfitOn(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(profit), 0) FROM sales WHERE created_at::date = $1::date`,
		day,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum profit on day: %w", err)
	}
	return total, nil
}

// SumProfitAfter suma el profit de las ventas estrictamente posteriores a day
// (el día límite queda fuera).
func (r *AnalyticsRepo) SumProfitAfter(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(profit), 0) FROM sales WHERE created_at::date > $1::date`,
		day,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum profit after day: %w", err)
	}
	return total, nil
}

// SumProfitBetween suma profit y cuenta ventas en [start, end], ambos
// extremos incluidos.
func (r *AnalyticsRepo) SumProfitBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	var (
		total decimal.Decimal
		count int
	)
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(profit), 0), COUNT(*)
		 FROM sales
		 WHERE created_at::date BETWEEN $1::date AND $2::date`,
		start, end,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum profit between: %w", err)
	}
	return total, count, nil
}

// ProfitByDay agrupa profit y número de ventas por día calendario en
// [from, to]. Días sin ventas no aparecen en el resultado.
func (r *AnalyticsRepo) ProfitByDay(ctx context.Context, from, to time.Time) ([]repository.DailyProfitRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT created_at::date AS day, SUM(profit), COUNT(*)
		 FROM sales
		 WHERE created_at::date BETWEEN $1::date AND $2::date
		 GROUP BY day
		 ORDER BY day ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("profit by day: %w", err)
	}
	defer rows.Close()

	var result []repository.DailyProfitRow
	for rows.Next() {
		var row repository.DailyProfitRow
		if err := rows.Scan(&row.Day, &row.Profit, &row.Count); err != nil {
			return nil, fmt.Errorf("scan daily profit: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ProductSalesRanking lista todos los productos con sus totales de ventas
// (LEFT JOIN: productos sin ventas aparecen con cero), ordenados por unidades
// vendidas descendente, truncado a limit.
func (r *AnalyticsRepo) ProductSalesRanking(ctx context.Context, limit int) ([]repository.ProductSalesRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT p.id, p.name,
		        COALESCE(SUM(s.quantity_sold), 0)::bigint,
		        COALESCE(SUM(s.profit), 0)
		 FROM products p
		 LEFT JOIN sales s ON s.product_id = p.id
		 GROUP BY p.id, p.name
		 ORDER BY COALESCE(SUM(s.quantity_sold), 0) DESC, p.name ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("product sales ranking: %w", err)
	}
	defer rows.Close()
	return scanProductSalesRows(rows)
}

// LossmakingProducts lista los productos con profit agregado negativo, o cero
// habiendo vendido unidades, ordenados del peor al mejor.
func (r *AnalyticsRepo) LossmakingProducts(ctx context.Context) ([]repository.ProductSalesRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT p.id, p.name,
		        COALESCE(SUM(s.quantity_sold), 0)::bigint AS qty,
		        COALESCE(SUM(s.profit), 0) AS profit
		 FROM products p
		 JOIN sales s ON s.product_id = p.id
		 GROUP BY p.id, p.name
		 HAVING COALESCE(SUM(s.profit), 0) < 0
		     OR (COALESCE(SUM(s.profit), 0) = 0 AND COALESCE(SUM(s.quantity_sold), 0) > 0)
		 ORDER BY profit ASC, p.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("lossmaking products: %w", err)
	}
	defer rows.Close()
	return scanProductSalesRows(rows)
}

// ProductTotals métricas históricas de un producto; todo en cero si no tiene
// ventas. AvgProfit es el promedio por fila de venta, no por unidad.
func (r *AnalyticsRepo) ProductTotals(ctx context.Context, productID string) (repository.ProductTotalsRow, error) {
	var row repository.ProductTotalsRow
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(profit), 0),
		        COALESCE(SUM(selling_price * quantity_sold), 0),
		        COALESCE(SUM(quantity_sold), 0)::bigint,
		        COALESCE(AVG(profit), 0)
		 FROM sales
		 WHERE product_id = $1`,
		productID,
	).Scan(&row.TotalProfit, &row.TotalRevenue, &row.TotalSold, &row.AvgProfit)
	if err != nil {
		return repository.ProductTotalsRow{}, fmt.Errorf("product totals: %w", err)
	}
	return row, nil
}

// ProductProfitByMonth agrupa las ventas del producto por año-mes desde from
// inclusive. Meses sin ventas no aparecen.
func (r *AnalyticsRepo) ProductProfitByMonth(ctx context.Context, productID string, from time.Time) ([]repository.MonthlyProductRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT to_char(created_at, 'YYYY-MM') AS month,
		        SUM(profit),
		        SUM(quantity_sold)::bigint,
		        SUM(selling_price * quantity_sold)
		 FROM sales
		 WHERE product_id = $1 AND created_at::date >= $2::date
		 GROUP BY month
		 ORDER BY month ASC`,
		productID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("product profit by month: %w", err)
	}
	defer rows.Close()

	var result []repository.MonthlyProductRow
	for rows.Next() {
		var row repository.MonthlyProductRow
		if err := rows.Scan(&row.Month, &row.Profit, &row.TotalSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan monthly row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ProductQuantityByDay suma unidades vendidas del producto por día en
// [from, to]. Días sin ventas no aparecen.
func (r *AnalyticsRepo) ProductQuantityByDay(ctx context.Context, productID string, from, to time.Time) ([]repository.DailyQuantityRow, error) {
	rows, err := r.q.Query(ctx,
		`SELECT created_at::date AS day, SUM(quantity_sold)::bigint
		 FROM sales
		 WHERE product_id = $1 AND created_at::date BETWEEN $2::date AND $3::date
		 GROUP BY day
		 ORDER BY day ASC`,
		productID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("product quantity by day: %w", err)
	}
	defer rows.Close()

	var result []repository.DailyQuantityRow
	for rows.Next() {
		var row repository.DailyQuantityRow
		if err := rows.Scan(&row.Day, &row.QuantitySold); err != nil {
			return nil, fmt.Errorf("scan daily quantity: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountSales número total de ventas registradas.
func (r *AnalyticsRepo) CountSales(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

func scanProductSalesRows(rows pgx.Rows) ([]repository.ProductSalesRow, error) {
	var result []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.QuantitySold, &row.Profit); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
