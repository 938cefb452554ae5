package postgres

import (
	"context"
	"fmt"

	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL
// (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y asigna el ID generado. SellingPrice ya viene por
// unidad y Profit ya calculado: acá no hay lógica de costeo.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, quantity_sold, selling_price, profit, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sale.ProductID, sale.QuantitySold, sale.SellingPrice, sale.Profit, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las ventas del producto (cascada del borrado
// de producto).
func (r *SaleRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete sales by product: %w", err)
	}
	return nil
}
