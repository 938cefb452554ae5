// Package ledger implementa el libro de inventario: reposiciones (lotes),
// ventas con cálculo de ganancia y borrado en cascada de productos.
//
// Política de costeo: la ganancia de una venta se calcula con el costo
// promedio ponderado de TODOS los lotes vivos (foto tomada antes de agotar
// stock), mientras que el consumo físico de lotes es FIFO. Es el comporta-
// miento histórico del producto y se conserva tal cual; no unificar sin
// decisión de producto.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/costing"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

// UseCase ejecuta las operaciones de mutación del inventario. Cada operación
// corre dentro de una transacción (TxRunner) con bloqueo de la fila del
// producto, de modo que dos ventas concurrentes del mismo producto no puedan
// pasar ambas la verificación de stock.
type UseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewUseCase construye el caso de uso del libro de inventario.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Restock registra una compra/reposición: crea un lote nuevo fechado "ahora"
// con OrderingPrice = totalCost/quantity e incrementa TotalQuantity del
// producto, todo en una transacción. Devuelve el ID del lote creado.
//
// Errores: ErrInvalidInput si quantity <= 0 o totalCost < 0;
// ErrNotFound si el producto no existe. Sin mutaciones en ambos casos.
func (uc *UseCase) Restock(ctx context.Context, productID string, quantity int64, totalCost decimal.Decimal) (int64, error) {
	if productID == "" || quantity <= 0 || totalCost.IsNegative() {
		return 0, domain.ErrInvalidInput
	}

	now := uc.now()
	var batchID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		batchRepo repository.StockBatchRepository,
		_ repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		batch := &entity.StockBatch{
			ProductID:     productID,
			OrderingPrice: totalCost.Div(decimal.NewFromInt(quantity)),
			TotalCost:     totalCost,
			Quantity:      quantity,
			CreatedAt:     now,
		}
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		batchID = batch.ID

		return productRepo.AdjustQuantity(productID, quantity, now)
	})
	if err != nil {
		return 0, err
	}
	return batchID, nil
}

// Sell registra una venta: calcula la ganancia contra el costo promedio
// ponderado de los lotes vivos, guarda la venta con el precio POR UNIDAD,
// consume lotes en orden FIFO y descuenta TotalQuantity del producto. Todo en
// una transacción: un fallo a mitad de camino no deja estado parcial.
// totalPrice es el monto TOTAL cobrado por las quantity unidades.
//
// Errores: ErrInvalidInput (quantity <= 0 o totalPrice < 0), ErrNotFound
// (producto inexistente), ErrInsufficientStock (quantity > stock actual).
// Todos se rechazan antes de cualquier mutación.
func (uc *UseCase) Sell(ctx context.Context, productID string, quantity int64, totalPrice decimal.Decimal) (int64, error) {
	if productID == "" || quantity <= 0 || totalPrice.IsNegative() {
		return 0, domain.ErrInvalidInput
	}

	now := uc.now()
	var saleID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		batchRepo repository.StockBatchRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.TotalQuantity < quantity {
			return domain.ErrInsufficientStock
		}

		batches, err := batchRepo.ListLiveForUpdate(productID)
		if err != nil {
			return err
		}

		// Foto del costo promedio ANTES de agotar lotes, sobre todos los
		// lotes vivos (no solo los que se van a consumir).
		qty := decimal.NewFromInt(quantity)
		avgCost := costing.AverageCostPerUnit(batches)
		profit := totalPrice.Sub(avgCost.Mul(qty))

		sale := &entity.Sale{
			ProductID:    productID,
			QuantitySold: quantity,
			SellingPrice: totalPrice.Div(qty),
			Profit:       profit,
			CreatedAt:    now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		saleID = sale.ID

		for _, dep := range costing.ConsumeFIFO(batches, quantity) {
			if err := batchRepo.ApplyDepletion(dep.BatchID, dep.NewQuantity, dep.NewTotalCost); err != nil {
				return err
			}
		}

		return productRepo.AdjustQuantity(productID, -quantity, now)
	})
	if err != nil {
		return 0, err
	}
	return saleID, nil
}

// DeleteProduct elimina el producto con todos sus lotes y ventas en cascada,
// en una sola transacción. Irreversible: no hay soft-delete.
func (uc *UseCase) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		batchRepo repository.StockBatchRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := batchRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		if err := saleRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		return productRepo.Delete(productID)
	})
}
