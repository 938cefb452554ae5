package ledger

import (
	"context"

	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario: si fn devuelve error no queda ningún estado parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		batchRepo repository.StockBatchRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
