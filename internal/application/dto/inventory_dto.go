package dto

import "github.com/shopspring/decimal"

// RestockRequest entrada para registrar una reposición de stock.
// TotalCost es el costo TOTAL de la compra (no por unidad).
type RestockRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// RestockResponse devuelve el lote creado.
type RestockResponse struct {
	BatchID int64 `json:"batch_id"`
}

// SellRequest entrada para registrar una venta.
// TotalPrice es el monto TOTAL cobrado por todas las unidades.
type SellRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SellResponse devuelve la venta registrada.
type SellResponse struct {
	SaleID int64 `json:"sale_id"`
}
