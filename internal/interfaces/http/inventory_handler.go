package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biztrack/biztrack-api/internal/application/dto"
	"github.com/biztrack/biztrack-api/internal/application/ledger"
)

// InventoryHandler maneja las mutaciones del libro de inventario (protegido).
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Restock godoc
// @Summary      Registrar reposición de stock (crea un lote)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "Reposición (total_cost es el costo total de la compra)"
// @Success      201   {object}  dto.RestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	batchID, err := h.uc.Restock(c.Context(), in.ProductID, in.Quantity, in.TotalCost)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RestockResponse{BatchID: batchID})
}

// Sell godoc
// @Summary      Registrar venta (consume lotes FIFO y calcula ganancia)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellRequest  true  "Venta (total_price es el monto total cobrado)"
// @Success      201   {object}  dto.SellResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	saleID, err := h.uc.Sell(c.Context(), in.ProductID, in.Quantity, in.TotalPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SellResponse{SaleID: saleID})
}
