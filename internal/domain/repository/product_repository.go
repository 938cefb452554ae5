package repository

import (
	"time"

	"github.com/biztrack/biztrack-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia de productos.
// Las implementaciones devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar las mutaciones concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// AdjustQuantity suma delta (puede ser negativo) a TotalQuantity y
	// actualiza UpdatedAt.
	AdjustQuantity(id string, delta int64, updatedAt time.Time) error
	Delete(id string) error
}
