package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, image_uri, selling_price, total_quantity, currency, updated_at`

// Create persiste un producto nuevo. TotalQuantity inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.ImageURI, product.SellingPrice,
		product.TotalQuantity, product.Currency, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// El bloqueo serializa las mutaciones concurrentes del mismo producto: dos
// ventas simultáneas no pueden pasar ambas la verificación de stock.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(id, true)
}

func (r *ProductRepo) get(id string, forUpdate bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.ImageURI, &p.SellingPrice, &p.TotalQuantity, &p.Currency, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos ordenados por nombre, con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.ImageURI, &p.SellingPrice, &p.TotalQuantity, &p.Currency, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// AdjustQuantity suma delta a TotalQuantity (negativo para descontar) y
// actualiza UpdatedAt.
func (r *ProductRepo) AdjustQuantity(id string, delta int64, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET total_quantity = total_quantity + $2, updated_at = $3 WHERE id = $1`,
		id, delta, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	return nil
}

// Delete elimina el producto. Los lotes y ventas deben borrarse antes, en la
// misma transacción (lo hace el caso de uso del ledger).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
