package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/reporting"
)

// ReportHandler maneja las vistas de corrección de costos y el reporte de
// utilidad (protegido).
type ReportHandler struct {
	uc *reporting.CorrectionReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.CorrectionReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ListPending godoc
// @Summary      Facturas con costo pendiente
// @Description  Solo las líneas pendientes de cada factura, con el conteo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.PendingInvoiceResponse
// @Router       /api/customer-invoices/pending [get]
func (h *ReportHandler) ListPending(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.ListPending(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCorrected godoc
// @Summary      Facturas con costos ya corregidos
// @Description  Facturas que tuvieron líneas pendientes y quedaron totalmente resueltas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.CorrectedInvoiceResponse
// @Router       /api/customer-invoices/corrected [get]
func (h *ReportHandler) ListCorrected(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.ListCorrected(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profit godoc
// @Summary      Reporte de utilidad
// @Description  Utilidad confirmada (solo líneas resueltas) y estimada (incluye pendientes con costo placeholder). has_pending_costs marca cuando el estimado no es autoritativo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.ProfitReportResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.ProfitReport(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
