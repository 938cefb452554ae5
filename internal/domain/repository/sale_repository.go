package repository

import "github.com/biztrack/biztrack-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia de ventas.
// Las ventas son inmutables: solo se crean y se eliminan en cascada.
type SaleRepository interface {
	// Create persiste la venta y asigna su ID.
	Create(sale *entity.Sale) error
	DeleteByProduct(productID string) error
}
