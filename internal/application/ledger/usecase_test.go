package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biztrack/biztrack-api/internal/domain"
	"github.com/biztrack/biztrack-api/internal/domain/entity"
	"github.com/biztrack/biztrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner trabaja sobre una copia del estado y solo
// publica los cambios si fn no falla, igual que el commit/rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products    map[string]*entity.Product
	batches     []*entity.StockBatch
	sales       []*entity.Sale
	nextBatchID int64
	nextSaleID  int64

	failSaleCreate bool // simula un fallo de infraestructura a mitad de la tx
}

func newMemStore() *memStore {
	return &memStore{
		products:    make(map[string]*entity.Product),
		nextBatchID: 1,
		nextSaleID:  1,
	}
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:       make(map[string]*entity.Product, len(s.products)),
		nextBatchID:    s.nextBatchID,
		nextSaleID:     s.nextSaleID,
		failSaleCreate: s.failSaleCreate,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, b := range s.batches {
		cb := *b
		c.batches = append(c.batches, &cb)
	}
	for _, sale := range s.sales {
		cs := *sale
		c.sales = append(c.sales, &cs)
	}
	return c
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustQuantity(id string, delta int64, updatedAt time.Time) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.TotalQuantity += delta
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeBatchRepo struct{ s *memStore }

func (r *fakeBatchRepo) Create(b *entity.StockBatch) error {
	b.ID = r.s.nextBatchID
	r.s.nextBatchID++
	cb := *b
	r.s.batches = append(r.s.batches, &cb)
	return nil
}

func (r *fakeBatchRepo) ListLiveForUpdate(productID string) ([]*entity.StockBatch, error) {
	// Los lotes se insertan en orden; como todos comparten fecha en los tests,
	// el orden del slice ya es el FIFO (ID ascendente).
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.Quantity > 0 {
			cb := *b
			out = append(out, &cb)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) ApplyDepletion(batchID int64, newQuantity int64, newTotalCost decimal.Decimal) error {
	for _, b := range r.s.batches {
		if b.ID == batchID {
			b.Quantity = newQuantity
			b.TotalCost = newTotalCost
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeBatchRepo) GetLast(productID string) (*entity.StockBatch, error) {
	for i := len(r.s.batches) - 1; i >= 0; i-- {
		if r.s.batches[i].ProductID == productID {
			cb := *r.s.batches[i]
			return &cb, nil
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) DeleteByProduct(productID string) error {
	var kept []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ProductID != productID {
			kept = append(kept, b)
		}
	}
	r.s.batches = kept
	return nil
}

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.s.failSaleCreate {
		return errors.New("fallo simulado al insertar venta")
	}
	sale.ID = r.s.nextSaleID
	r.s.nextSaleID++
	cs := *sale
	r.s.sales = append(r.s.sales, &cs)
	return nil
}

func (r *fakeSaleRepo) DeleteByProduct(productID string) error {
	var kept []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.ProductID != productID {
			kept = append(kept, sale)
		}
	}
	r.s.sales = kept
	return nil
}

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	batchRepo repository.StockBatchRepository,
	saleRepo repository.SaleRepository,
) error) error {
	work := r.s.clone()
	err := fn(&fakeProductRepo{s: work}, &fakeBatchRepo{s: work}, &fakeSaleRepo{s: work})
	if err != nil {
		return err // rollback: el estado original queda intacto
	}
	*r.s = *work // commit
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestUseCase(store *memStore) *UseCase {
	uc := NewUseCase(&fakeTxRunner{s: store})
	uc.now = func() time.Time { return testNow }
	return uc
}

func seedProduct(store *memStore, id string, qty int64) {
	store.products[id] = &entity.Product{
		ID:            id,
		Name:          "Azúcar 1kg",
		SellingPrice:  decimal.NewFromInt(25),
		TotalQuantity: qty,
		Currency:      "USD",
		UpdatedAt:     testNow.Add(-24 * time.Hour),
	}
}

func seedBatch(store *memStore, productID string, qty int64, totalCost string) {
	store.batches = append(store.batches, &entity.StockBatch{
		ID:        store.nextBatchID,
		ProductID: productID,
		OrderingPrice: decimal.RequireFromString(totalCost).
			Div(decimal.NewFromInt(qty)),
		TotalCost: decimal.RequireFromString(totalCost),
		Quantity:  qty,
		CreatedAt: testNow.Add(-time.Hour),
	})
	store.nextBatchID++
}

// sumLiveBatches suma las unidades de los lotes vivos de un producto.
func sumLiveBatches(store *memStore, productID string) int64 {
	var total int64
	for _, b := range store.batches {
		if b.ProductID == productID {
			total += b.Quantity
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_CreaLoteYSumaCantidad(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0)
	uc := newTestUseCase(store)

	batchID, err := uc.Restock(context.Background(), "p1", 10, decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, int64(1), batchID)

	require.Len(t, store.batches, 1)
	b := store.batches[0]
	assert.Equal(t, int64(10), b.Quantity)
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(250)))
	assert.True(t, b.OrderingPrice.Equal(decimal.NewFromInt(25)),
		"OrderingPrice debe ser el costo por unidad (250/10)")
	assert.Equal(t, testNow, b.CreatedAt)

	assert.Equal(t, int64(10), store.products["p1"].TotalQuantity)
}

func TestRestock_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 0)
	uc := newTestUseCase(store)

	_, err := uc.Restock(context.Background(), "p1", 0, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Restock(context.Background(), "p1", -3, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Restock(context.Background(), "p1", 5, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.batches, "ninguna validación fallida debe dejar lotes")
}

func TestRestock_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	_, err := uc.Restock(context.Background(), "nope", 5, decimal.NewFromInt(50))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.batches)
}

func TestRestock_CostoCeroPermitido(t *testing.T) {
	// Mercadería regalada o promocional: costo total 0 es válido.
	store := newMemStore()
	seedProduct(store, "p1", 0)
	uc := newTestUseCase(store)

	_, err := uc.Restock(context.Background(), "p1", 4, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, store.batches[0].OrderingPrice.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Sell
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_GananciaConPromedioPonderado(t *testing.T) {
	// Lotes: 5 u / 50 + 5 u / 100 → promedio 15 por unidad.
	// Venta: 2 unidades por 40 en total → ganancia 40 − 2×15 = 10.
	store := newMemStore()
	seedProduct(store, "p1", 10)
	seedBatch(store, "p1", 5, "50")
	seedBatch(store, "p1", 5, "100")
	uc := newTestUseCase(store)

	saleID, err := uc.Sell(context.Background(), "p1", 2, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saleID)

	require.Len(t, store.sales, 1)
	sale := store.sales[0]
	assert.True(t, sale.Profit.Equal(decimal.NewFromInt(10)),
		"ganancia debe ser 10, fue %s", sale.Profit)
	assert.True(t, sale.SellingPrice.Equal(decimal.NewFromInt(20)),
		"el precio guardado es POR UNIDAD (40/2)")
	assert.Equal(t, int64(2), sale.QuantitySold)
	assert.Equal(t, testNow, sale.CreatedAt)
}

func TestSell_ConsumeFIFOYDescuentaCantidad(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	seedBatch(store, "p1", 5, "50")
	seedBatch(store, "p1", 5, "100")
	uc := newTestUseCase(store)

	_, err := uc.Sell(context.Background(), "p1", 7, decimal.NewFromInt(140))
	require.NoError(t, err)

	// El primer lote se agota; el segundo queda con 3 u y 60 de costo.
	assert.Equal(t, int64(0), store.batches[0].Quantity)
	assert.True(t, store.batches[0].TotalCost.IsZero())
	assert.Equal(t, int64(3), store.batches[1].Quantity)
	assert.True(t, store.batches[1].TotalCost.Equal(decimal.NewFromInt(60)))

	assert.Equal(t, int64(3), store.products["p1"].TotalQuantity)
}

func TestSell_StockInsuficiente_NoMuta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 3)
	seedBatch(store, "p1", 3, "30")
	uc := newTestUseCase(store)

	_, err := uc.Sell(context.Background(), "p1", 4, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, store.sales, "venta rechazada no debe registrarse")
	assert.Equal(t, int64(3), store.products["p1"].TotalQuantity)
	assert.Equal(t, int64(3), store.batches[0].Quantity)
}

func TestSell_DrenajeTotal(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 5)
	seedBatch(store, "p1", 2, "20")
	seedBatch(store, "p1", 3, "30")
	uc := newTestUseCase(store)

	// Promedio: 50/5 = 10. Venta de todo por 100 → ganancia 50.
	_, err := uc.Sell(context.Background(), "p1", 5, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Equal(t, int64(0), store.products["p1"].TotalQuantity)
	for _, b := range store.batches {
		assert.Equal(t, int64(0), b.Quantity)
		assert.True(t, b.TotalCost.IsZero())
	}
	assert.True(t, store.sales[0].Profit.Equal(decimal.NewFromInt(50)))
}

func TestSell_ErrorAMitadDeTransaccion_RollbackCompleto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 5)
	seedBatch(store, "p1", 5, "50")
	store.failSaleCreate = true
	uc := newTestUseCase(store)

	_, err := uc.Sell(context.Background(), "p1", 2, decimal.NewFromInt(50))
	require.Error(t, err)

	// Nada cambió: ni venta, ni lotes, ni cantidad del producto.
	assert.Empty(t, store.sales)
	assert.Equal(t, int64(5), store.products["p1"].TotalQuantity)
	assert.Equal(t, int64(5), store.batches[0].Quantity)
}

func TestSell_ConservacionDeCantidad(t *testing.T) {
	// Tras cualquier secuencia de reposiciones y ventas, TotalQuantity del
	// producto debe coincidir con la suma de los lotes vivos.
	store := newMemStore()
	seedProduct(store, "p1", 0)
	uc := newTestUseCase(store)
	ctx := context.Background()

	_, err := uc.Restock(ctx, "p1", 10, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = uc.Restock(ctx, "p1", 6, decimal.NewFromInt(90))
	require.NoError(t, err)
	_, err = uc.Sell(ctx, "p1", 12, decimal.NewFromInt(300))
	require.NoError(t, err)
	_, err = uc.Restock(ctx, "p1", 3, decimal.NewFromInt(45))
	require.NoError(t, err)
	_, err = uc.Sell(ctx, "p1", 5, decimal.NewFromInt(125))
	require.NoError(t, err)

	p := store.products["p1"]
	assert.Equal(t, int64(2), p.TotalQuantity)
	assert.Equal(t, p.TotalQuantity, sumLiveBatches(store, "p1"),
		"TotalQuantity debe coincidir con la suma de lotes vivos")
}

func TestSell_SinLotesPeroConCantidad_GananciaEsElPrecio(t *testing.T) {
	// Caso borde heredado: si TotalQuantity alcanza pero no hay lotes vivos,
	// el promedio es cero y toda la venta cuenta como ganancia.
	store := newMemStore()
	seedProduct(store, "p1", 2)
	uc := newTestUseCase(store)

	_, err := uc.Sell(context.Background(), "p1", 2, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.True(t, store.sales[0].Profit.Equal(decimal.NewFromInt(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_CascadaCompleta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 5)
	seedProduct(store, "p2", 1)
	seedBatch(store, "p1", 5, "50")
	seedBatch(store, "p2", 1, "10")
	uc := newTestUseCase(store)
	ctx := context.Background()

	_, err := uc.Sell(ctx, "p1", 1, decimal.NewFromInt(20))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, "p1"))

	assert.NotContains(t, store.products, "p1")
	assert.Contains(t, store.products, "p2", "solo se borra el producto pedido")
	assert.Equal(t, int64(1), sumLiveBatches(store, "p2"))
	for _, b := range store.batches {
		assert.NotEqual(t, "p1", b.ProductID, "no deben quedar lotes del producto borrado")
	}
	assert.Empty(t, store.sales, "las ventas del producto borrado se van con él")
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)
	assert.ErrorIs(t, uc.DeleteProduct(context.Background(), "nope"), domain.ErrNotFound)
}
