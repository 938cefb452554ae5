package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del puerto StockBatchRepository sobre
// PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste el lote y asigna el ID secuencial generado.
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (product_id, ordering_price, total_cost, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		batch.ProductID, batch.OrderingPrice, batch.TotalCost, batch.Quantity, batch.CreatedAt,
	).Scan(&batch.ID)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// ListLiveForUpdate devuelve los lotes vivos del producto en orden FIFO
// (CreatedAt ascendente, empates por ID secuencial = orden de inserción) con
// bloqueo de fila.
func (r *StockBatchRepo) ListLiveForUpdate(productID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT id, product_id, ordering_price, total_cost, quantity, created_at
		FROM stock_batches
		WHERE product_id = $1 AND quantity > 0
		ORDER BY created_at ASC, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list live batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.OrderingPrice, &b.TotalCost, &b.Quantity, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// ApplyDepletion fija la cantidad y el costo restantes de un lote tras un
// consumo FIFO.
func (r *StockBatchRepo) ApplyDepletion(batchID int64, newQuantity int64, newTotalCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_batches SET quantity = $2, total_cost = $3 WHERE id = $1`,
		batchID, newQuantity, newTotalCost,
	)
	if err != nil {
		return fmt.Errorf("apply batch depletion: %w", err)
	}
	return nil
}

// GetLast devuelve el lote más reciente del producto, o (nil, nil) si no hay.
func (r *StockBatchRepo) GetLast(productID string) (*entity.StockBatch, error) {
	query := `
		SELECT id, product_id, ordering_price, total_cost, quantity, created_at
		FROM stock_batches
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	var b entity.StockBatch
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.ID, &b.ProductID, &b.OrderingPrice, &b.TotalCost, &b.Quantity, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last batch: %w", err)
	}
	return &b, nil
}

// DeleteByProduct elimina todos los lotes del producto (cascada del borrado
// de producto).
func (r *StockBatchRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_batches WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete batches by product: %w", err)
	}
	return nil
}
