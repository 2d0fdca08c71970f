package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/billing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP para facturas de cliente
// (protegido). La venta nunca se bloquea por falta de stock.
type InvoiceHandler struct {
	record *billing.RecordSaleUseCase
	query  *billing.InvoiceQueryUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(record *billing.RecordSaleUseCase, query *billing.InvoiceQueryUseCase) *InvoiceHandler {
	return &InvoiceHandler{record: record, query: query}
}

// Create godoc
// @Summary      Registrar venta (factura de cliente)
// @Description  Descuenta stock de las bodegas indicadas aunque quede en negativo. Las líneas sin existencias suficientes quedan con costo pendiente hasta la próxima recepción.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customer-invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la venta requiere al menos una línea"})
	}
	out, err := h.record.RecordSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customer-invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        pending  query  bool    false  "true = solo con líneas de costo pendiente"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        limit    query  int     false  "Límite (default 50)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/customer-invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("pending"); raw != "" {
		pending := raw == "true" || raw == "1"
		filter.Pending = &pending
	}
	var err error
	if filter.From, filter.To, err = parseDateRange(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.query.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateRange lee los query params from/to como RFC3339 (ambos opcionales).
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
