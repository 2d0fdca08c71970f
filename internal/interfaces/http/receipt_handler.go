package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/receiving"
)

// ReceiptHandler maneja las peticiones HTTP para recepciones (protegido).
type ReceiptHandler struct {
	receive *receiving.ReceiveOrderUseCase
	query   *receiving.ReceiptQueryUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receive *receiving.ReceiveOrderUseCase, query *receiving.ReceiptQueryUseCase) *ReceiptHandler {
	return &ReceiptHandler{receive: receive, query: query}
}

// ReceiveFromOrder godoc
// @Summary      Recibir una orden con distribución explícita por bodega
// @Description  La suma por producto debe igualar la cantidad ordenada. Los errores de validación se devuelven todos a la vez. La recepción incrementa el stock, marca la orden como received y corre la resolución de costos pendientes en la misma transacción.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string                   true  "ID de la orden de compra"
// @Param        body     body  dto.ReceiveOrderRequest  true  "Distribución por producto"
// @Success      201      {object}  dto.ReceiptResponse
// @Failure      400      {object}  dto.ValidationErrorsResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/receipts/from-order/{orderId} [post]
func (h *ReceiptHandler) ReceiveFromOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "orderId es requerido"})
	}
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.receive.ReceiveFromOrder(c.Context(), orderID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción por ID
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByOrder godoc
// @Summary      Obtener la recepción de una orden
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/by-order/{orderId} [get]
func (h *ReceiptHandler) GetByOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "orderId es requerido"})
	}
	out, err := h.query.GetByOrder(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
