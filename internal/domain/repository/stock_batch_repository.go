package repository

import (
	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/domain/entity"
)

// StockBatchRepository define el puerto de persistencia de lotes de stock.
// Usado dentro de transacciones para garantizar consistencia con el producto.
type StockBatchRepository interface {
	// Create persiste el lote y asigna su ID (secuencial: el ID crece en
	// orden de inserción, lo que resuelve empates de CreatedAt en FIFO).
	Create(batch *entity.StockBatch) error
	// ListLiveForUpdate devuelve los lotes con Quantity > 0 del producto,
	// ordenados por CreatedAt ascendente (empates por ID), con bloqueo de
	// fila para el consumo FIFO.
	ListLiveForUpdate(productID string) ([]*entity.StockBatch, error)
	// ApplyDepletion fija quantity y totalCost restantes de un lote.
	ApplyDepletion(batchID int64, newQuantity int64, newTotalCost decimal.Decimal) error
	// GetLast devuelve el lote más reciente del producto (vivo o agotado),
	// o (nil, nil) si no hay lotes. Usado para prellenar el costo de compra.
	GetLast(productID string) (*entity.StockBatch, error)
	DeleteByProduct(productID string) error
}
