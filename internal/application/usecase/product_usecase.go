package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
	"github.com/biztrack/biztrack-api/pkg/moneyfmt"
)

// ProductUseCase registro y consulta de productos. Las mutaciones de stock no
// pasan por acá: reposición y venta son del libro de inventario (ledger).
type ProductUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.StockBatchRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, batchRepo repository.StockBatchRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, batchRepo: batchRepo}
}

// Create registra un producto nuevo con stock cero. La moneda por defecto es
// USD.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		ImageURI:      in.ImageURI,
		SellingPrice:  in.SellingPrice,
		TotalQuantity: 0,
		Currency:      currency,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// LastBatch devuelve el lote más reciente del producto, para prellenar el
// costo de compra en el formulario de reposición. ErrNotFound si el producto
// no tiene lotes.
func (uc *ProductUseCase) LastBatch(productID string) (*dto.StockBatchResponse, error) {
	batch, err := uc.batchRepo.GetLast(productID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.StockBatchResponse{
		ID:            batch.ID,
		ProductID:     batch.ProductID,
		OrderingPrice: batch.OrderingPrice,
		TotalCost:     batch.TotalCost,
		Quantity:      batch.Quantity,
		CreatedAt:     batch.CreatedAt,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		ImageURI:       p.ImageURI,
		SellingPrice:   p.SellingPrice,
		TotalQuantity:  p.TotalQuantity,
		Currency:       p.Currency,
		CurrencySymbol: moneyfmt.Symbol(p.Currency),
		UpdatedAt:      p.UpdatedAt,
	}
}
