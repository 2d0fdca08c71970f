package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/inventory"
)

// InventoryHandler maneja consultas y ajustes del libro de stock (protegido).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ProductStock godoc
// @Summary      Existencias de un producto por bodega
// @Description  Las cantidades pueden ser negativas cuando hubo sobreventa.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Router       /api/products/{productId}/stock [get]
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.uc.ProductStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de existencias
// @Description  Aplica un delta (positivo o negativo) y registra el movimiento de ajuste.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      204   "Sin contenido"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.Delta.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, warehouse_id y delta son requeridos"})
	}
	if err := h.uc.Adjust(c.Context(), GetUserID(c), in.ProductID, in.WarehouseID, in.Delta, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reserve godoc
// @Summary      Reservar existencias
// @Description  Rechaza la reserva si las existencias disponibles no la cubren.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "Reserva"
// @Success      204   "Sin contenido"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.WarehouseID == "" || !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, warehouse_id y quantity positiva son requeridos"})
	}
	if err := h.uc.Reserve(c.Context(), in.ProductID, in.WarehouseID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar una reserva
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "Reserva a liberar"
// @Success      204   "Sin contenido"
// @Router       /api/inventory/reservations/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.WarehouseID == "" || !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, warehouse_id y quantity positiva son requeridos"})
	}
	if err := h.uc.Release(c.Context(), in.ProductID, in.WarehouseID, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
