package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote de compra/reposición de un producto.
// Quantity y TotalCost son los restantes del lote: al consumir unidades,
// TotalCost baja proporcionalmente para conservar el costo unitario del lote.
// Un lote con Quantity = 0 está agotado: se conserva como historial pero se
// excluye de los cálculos de costo.
type StockBatch struct {
	ID            int64
	ProductID     string
	OrderingPrice decimal.Decimal // costo unitario al crear el lote (informativo)
	TotalCost     decimal.Decimal // costo restante atribuible al lote
	Quantity      int64           // unidades restantes del lote
	CreatedAt     time.Time       // define el orden FIFO de consumo
}

// Exhausted indica si el lote ya no tiene unidades.
func (b *StockBatch) Exhausted() bool {
	return b.Quantity <= 0
}
