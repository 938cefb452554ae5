package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
	"github.com/biztrack/biztrack-api/pkg/moneyfmt"
)

const (
	defaultDaysBack   = 7
	defaultWeeksBack  = 4
	defaultMonthsBack = 6
	defaultTopN       = 5
	maxTopN           = 100
)

// AnalyticsUseCase orquesta las consultas de analítica y aplica la lógica de
// calendario: relleno de días/meses sin ventas, límites de ventana y
// etiquetas. El repositorio devuelve montos crudos; el redondeo a unidad
// entera de moneda se aplica acá, en la frontera de presentación.
//
// Convenciones de ventana (se conservan tal cual del comportamiento
// histórico, ver SumProfitAfter vs SumProfitBetween en el repositorio):
//   - ProfitMetrics usa intervalos ABIERTOS (fecha > hoy−7 / hoy−30).
//   - WeeklyProfitSeries usa buckets CERRADOS [inicio, fin]: el día frontera
//     entre dos buckets adyacentes cuenta en ambos.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		analyticsRepo: analyticsRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// today devuelve el día calendario actual (UTC, medianoche).
func (uc *AnalyticsUseCase) today() time.Time {
	t := uc.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// roundUnit redondea al entero de moneda más cercano.
func roundUnit(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// ProfitMetrics devuelve la ganancia de hoy, de los últimos 7 días y de los
// últimos 30. Las tres consultas son independientes y se lanzan en paralelo.
func (uc *AnalyticsUseCase) ProfitMetrics(ctx context.Context) (*dto.ProfitMetricsDTO, error) {
	today := uc.today()

	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	dailyCh := make(chan sumResult, 1)
	weeklyCh := make(chan sumResult, 1)
	monthlyCh := make(chan sumResult, 1)

	go func() {
		total, err := uc.analyticsRepo.SumProfitOn(ctx, today)
		dailyCh <- sumResult{total, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.SumProfitAfter(ctx, today.AddDate(0, 0, -7))
		weeklyCh <- sumResult{total, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.SumProfitAfter(ctx, today.AddDate(0, 0, -30))
		monthlyCh <- sumResult{total, err}
	}()

	daily := <-dailyCh
	weekly := <-weeklyCh
	monthly := <-monthlyCh

	if daily.err != nil {
		return nil, fmt.Errorf("analytics: ganancia de hoy: %w", daily.err)
	}
	if weekly.err != nil {
		return nil, fmt.Errorf("analytics: ganancia semanal: %w", weekly.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("analytics: ganancia mensual: %w", monthly.err)
	}

	d, w, m := roundUnit(daily.total), roundUnit(weekly.total), roundUnit(monthly.total)
	return &dto.ProfitMetricsDTO{
		Daily:          d,
		Weekly:         w,
		Monthly:        m,
		DailyDisplay:   moneyfmt.Comma(d),
		WeeklyDisplay:  moneyfmt.Comma(w),
		MonthlyDisplay: moneyfmt.Comma(m),
	}, nil
}

// DailyProfitSeries devuelve una serie densa de los últimos daysBack días
// calendario, del más antiguo al más reciente, con cero en los días sin
// ventas.
func (uc *AnalyticsUseCase) DailyProfitSeries(ctx context.Context, daysBack int) ([]dto.SeriesPointDTO, error) {
	if daysBack <= 0 {
		daysBack = defaultDaysBack
	}
	today := uc.today()
	from := today.AddDate(0, 0, -(daysBack - 1))

	rows, err := uc.analyticsRepo.ProfitByDay(ctx, from, today)
	if err != nil {
		return nil, fmt.Errorf("analytics: serie diaria: %w", err)
	}
	byDay := make(map[string]repository.DailyProfitRow, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] = row
	}

	series := make([]dto.SeriesPointDTO, 0, daysBack)
	for day := from; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		point := dto.SeriesPointDTO{Label: key}
		if row, ok := byDay[key]; ok {
			point.Profit = roundUnit(row.Profit)
			point.Count = row.Count
		}
		series = append(series, point)
	}
	return series, nil
}

// WeeklyProfitSeries devuelve weeksBack buckets de 7 días terminando en hoy,
// del más antiguo al más reciente. Cada bucket suma sobre [fin−7d, fin] con
// ambos extremos incluidos y se etiqueta "Week k" (no alineado a semanas de
// calendario).
func (uc *AnalyticsUseCase) WeeklyProfitSeries(ctx context.Context, weeksBack int) ([]dto.SeriesPointDTO, error) {
	if weeksBack <= 0 {
		weeksBack = defaultWeeksBack
	}
	today := uc.today()

	series := make([]dto.SeriesPointDTO, 0, weeksBack)
	for i := weeksBack - 1; i >= 0; i-- {
		end := today.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -7)
		profit, count, err := uc.analyticsRepo.SumProfitBetween(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("analytics: serie semanal: %w", err)
		}
		series = append(series, dto.SeriesPointDTO{
			Label:  fmt.Sprintf("Week %d", i+1),
			Profit: roundUnit(profit),
			Count:  count,
		})
	}
	return series, nil
}

// BestSellingProducts devuelve todos los productos con sus totales de venta
// (cero si nunca vendieron), ordenados por unidades vendidas descendente,
// truncado a limit.
func (uc *AnalyticsUseCase) BestSellingProducts(ctx context.Context, limit int) ([]dto.ProductStatsDTO, error) {
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}
	rows, err := uc.analyticsRepo.ProductSalesRanking(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: ranking de productos: %w", err)
	}
	return toProductStats(rows), nil
}

// LossmakingProducts devuelve los productos con pérdida (profit agregado
// negativo, o cero habiendo vendido), del peor al mejor.
func (uc *AnalyticsUseCase) LossmakingProducts(ctx context.Context) ([]dto.ProductStatsDTO, error) {
	rows, err := uc.analyticsRepo.LossmakingProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: productos con pérdida: %w", err)
	}
	return toProductStats(rows), nil
}

func toProductStats(rows []repository.ProductSalesRow) []dto.ProductStatsDTO {
	stats := make([]dto.ProductStatsDTO, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, dto.ProductStatsDTO{
			ProductID:    row.ProductID,
			Name:         row.Name,
			QuantitySold: row.QuantitySold,
			Profit:       row.Profit,
		})
	}
	return stats
}

// ProductMetrics devuelve métricas históricas del producto más la serie de
// los últimos 6 meses calendario (más antiguo primero, meses sin ventas en
// cero). Llamadas repetidas sin mutaciones intermedias devuelven lo mismo.
func (uc *AnalyticsUseCase) ProductMetrics(ctx context.Context, productID string) (*dto.ProductMetricsDTO, error) {
	totals, err := uc.analyticsRepo.ProductTotals(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("analytics: métricas de producto: %w", err)
	}

	monthly, err := uc.productMonthlyData(ctx, productID, defaultMonthsBack)
	if err != nil {
		return nil, err
	}

	return &dto.ProductMetricsDTO{
		TotalProfit:  roundUnit(totals.TotalProfit),
		TotalRevenue: roundUnit(totals.TotalRevenue),
		TotalSold:    totals.TotalSold,
		AvgProfit:    roundUnit(totals.AvgProfit),
		MonthlyData:  monthly,
	}, nil
}

func (uc *AnalyticsUseCase) productMonthlyData(ctx context.Context, productID string, monthsBack int) ([]dto.ProductMonthlyDTO, error) {
	t := uc.now()
	// Primer día del mes más antiguo de la ventana. time.Date normaliza los
	// meses fuera de rango (agosto − 7 = enero del año anterior).
	from := time.Date(t.Year(), t.Month()-time.Month(monthsBack-1), 1, 0, 0, 0, 0, time.UTC)

	rows, err := uc.analyticsRepo.ProductProfitByMonth(ctx, productID, from)
	if err != nil {
		return nil, fmt.Errorf("analytics: serie mensual de producto: %w", err)
	}
	byMonth := make(map[string]repository.MonthlyProductRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	months := make([]dto.ProductMonthlyDTO, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		month := time.Date(t.Year(), t.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		point := dto.ProductMonthlyDTO{Month: month.Format("Jan")}
		if row, ok := byMonth[month.Format("2006-01")]; ok {
			point.Profit = roundUnit(row.Profit)
			point.TotalSold = row.TotalSold
			point.Revenue = roundUnit(row.Revenue)
		}
		months = append(months, point)
	}
	return months, nil
}

// ProductCurrentMonthSales devuelve una entrada por cada día calendario del
// mes EN CURSO (día 1 hasta el último día del mes, incluidos los días
// posteriores a hoy, que van en cero) con las unidades vendidas ese día.
func (uc *AnalyticsUseCase) ProductCurrentMonthSales(ctx context.Context, productID string) ([]dto.DailySalesDTO, error) {
	t := uc.now()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1) // último día del mes (febrero incluido)
	daysInMonth := last.Day()

	rows, err := uc.analyticsRepo.ProductQuantityByDay(ctx, productID, first, last)
	if err != nil {
		return nil, fmt.Errorf("analytics: ventas del mes en curso: %w", err)
	}
	byDay := make(map[int]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day.Day()] = row.QuantitySold
	}

	monthLabel := t.Format("Jan")
	monthYear := t.Format("January 2006")
	series := make([]dto.DailySalesDTO, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		series = append(series, dto.DailySalesDTO{
			Day:          strconv.Itoa(day),
			QuantitySold: byDay[day],
			MonthLabel:   monthLabel,
			MonthYear:    monthYear,
		})
	}
	return series, nil
}

// TotalSales devuelve el número total de ventas registradas.
func (uc *AnalyticsUseCase) TotalSales(ctx context.Context) (*dto.TotalSalesDTO, error) {
	count, err := uc.analyticsRepo.CountSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: total de ventas: %w", err)
	}
	return &dto.TotalSalesDTO{Count: count}, nil
}
