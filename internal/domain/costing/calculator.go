// Package costing implementa el motor de costeo del inventario (servicio de
// dominio puro): costo promedio ponderado sobre lotes vivos y plan de consumo
// FIFO. No toca persistencia; opera sobre los lotes que le pasa el caller.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/domain/entity"
)

// AverageCostPerUnit calcula el costo promedio ponderado por unidad:
// Σ(TotalCost) / Σ(Quantity) sobre los lotes con Quantity > 0.
// Devuelve cero si no hay lotes vivos (evita división por cero).
func AverageCostPerUnit(batches []*entity.StockBatch) decimal.Decimal {
	totalCost := decimal.Zero
	var totalQty int64
	for _, b := range batches {
		if b.Exhausted() {
			continue
		}
		totalCost = totalCost.Add(b.TotalCost)
		totalQty += b.Quantity
	}
	if totalQty == 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(totalQty))
}

// Depletion es el efecto del consumo sobre un lote: cuántas unidades se toman
// y el estado resultante del lote.
type Depletion struct {
	BatchID      int64
	Take         int64
	NewQuantity  int64
	NewTotalCost decimal.Decimal
}

// ConsumeFIFO arma el plan de consumo de `quantity` unidades sobre los lotes
// recibidos, en el orden dado (el caller los entrega por CreatedAt ascendente,
// empates por orden de inserción). De cada lote se toma
// min(lote.Quantity, restante) y TotalCost baja proporcionalmente, de modo que
// el costo unitario del lote se conserva. Al agotarse un lote su TotalCost
// queda exactamente en cero, sin residuos de redondeo decimal.
//
// Precondición del caller: quantity <= Σ lotes vivos. No modifica los lotes ni
// el TotalQuantity del producto; ambos son responsabilidad del caller para
// mantener la actualización atómica con la venta.
func ConsumeFIFO(batches []*entity.StockBatch, quantity int64) []Depletion {
	remaining := quantity
	var plan []Depletion
	for _, b := range batches {
		if remaining <= 0 {
			break
		}
		if b.Exhausted() {
			continue
		}
		take := b.Quantity
		if remaining < take {
			take = remaining
		}
		newQty := b.Quantity - take
		var newCost decimal.Decimal
		if newQty == 0 {
			newCost = decimal.Zero
		} else {
			perUnit := b.TotalCost.Div(decimal.NewFromInt(b.Quantity))
			newCost = b.TotalCost.Sub(perUnit.Mul(decimal.NewFromInt(take)))
		}
		plan = append(plan, Depletion{
			BatchID:      b.ID,
			Take:         take,
			NewQuantity:  newQty,
			NewTotalCost: newCost,
		})
		remaining -= take
	}
	return plan
}
