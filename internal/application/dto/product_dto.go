package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	ImageURI     *string         `json:"image_uri"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Currency     string          `json:"currency"` // default "USD"
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ImageURI       *string         `json:"image_uri,omitempty"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	TotalQuantity  int64           `json:"total_quantity"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockBatchResponse representación HTTP de un lote (para prellenar el costo
// de la última compra en el formulario de reposición).
type StockBatchResponse struct {
	ID            int64           `json:"id"`
	ProductID     string          `json:"product_id"`
	OrderingPrice decimal.Decimal `json:"ordering_price"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Quantity      int64           `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}
