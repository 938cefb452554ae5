package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. Inmutable una vez creada; solo se
// elimina en cascada al borrar el producto.
// SellingPrice se guarda POR UNIDAD (total cobrado / cantidad).
// Profit es con signo: puede ser negativo si se vendió bajo costo.
type Sale struct {
	ID           int64
	ProductID    string
	QuantitySold int64
	SellingPrice decimal.Decimal
	Profit       decimal.Decimal
	CreatedAt    time.Time
}
