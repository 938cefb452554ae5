package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del negocio.
// TotalQuantity es derivado: debe ser igual a la suma de Quantity de todos sus
// lotes (stock_batches) vivos. SellingPrice es el precio de referencia del
// producto; el precio real se registra por venta en Sale.
type Product struct {
	ID            string
	Name          string
	ImageURI      *string
	SellingPrice  decimal.Decimal
	TotalQuantity int64
	Currency      string // código ISO, ej. "USD", "MWK"
	UpdatedAt     time.Time
}
