package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// CorrectionReportUseCase materializa las vistas derivadas del ciclo de
// corrección de costos: pendientes, corregidas y el reporte de utilidades con
// separación explícita entre confirmado y estimado.
type CorrectionReportUseCase struct {
	invoiceRepo repository.CustomerInvoiceRepository
}

// NewCorrectionReportUseCase construye el caso de uso.
func NewCorrectionReportUseCase(invoiceRepo repository.CustomerInvoiceRepository) *CorrectionReportUseCase {
	return &CorrectionReportUseCase{invoiceRepo: invoiceRepo}
}

// ListPending facturas con al menos una línea de costo pendiente en el rango:
// devuelve solo las líneas pendientes más el conteo.
func (uc *CorrectionReportUseCase) ListPending(_ context.Context, from, to *time.Time) ([]dto.PendingInvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListPending(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp := dto.PendingInvoiceResponse{
			InvoiceID: inv.ID,
			Number:    inv.Number,
			Date:      inv.Date,
		}
		for i := range inv.Items {
			it := &inv.Items[i]
			if !it.CostPricePending {
				continue
			}
			resp.PendingLines = append(resp.PendingLines, itemToDTO(it))
		}
		resp.PendingCount = len(resp.PendingLines)
		if resp.PendingCount > 0 {
			out = append(out, resp)
		}
	}
	return out, nil
}

// ListCorrected facturas que estuvieron pendientes y cuya corrección total
// (CostCorrectedAt) cayó dentro del rango, con sus líneas resueltas.
func (uc *CorrectionReportUseCase) ListCorrected(_ context.Context, from, to *time.Time) ([]dto.CorrectedInvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListCorrected(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CorrectedInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		if inv.CostCorrectedAt == nil || inv.HasPending() {
			continue
		}
		resp := dto.CorrectedInvoiceResponse{
			InvoiceID:   inv.ID,
			Number:      inv.Number,
			Date:        inv.Date,
			CorrectedAt: *inv.CostCorrectedAt,
		}
		for i := range inv.Items {
			it := &inv.Items[i]
			if it.ResolvedAt == nil {
				continue
			}
			resp.ResolvedLines = append(resp.ResolvedLines, itemToDTO(it))
		}
		out = append(out, resp)
	}
	return out, nil
}

// ProfitReport agrega ingresos, costos y utilidad del rango. La utilidad
// confirmada usa solo líneas resueltas; la estimada incluye las pendientes con
// su costo placeholder. Si hay alguna pendiente el flag lo dice explícitamente:
// el estimado nunca se presenta como autoritativo en silencio.
func (uc *CorrectionReportUseCase) ProfitReport(_ context.Context, from, to *time.Time) (*dto.ProfitReportResponse, error) {
	invoices, err := uc.invoiceRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.ProfitReportResponse{From: from, To: to}
	confirmedRevenue := decimal.Zero
	for _, inv := range invoices {
		for i := range inv.Items {
			it := &inv.Items[i]
			lineCost := it.Quantity.Mul(it.CostPrice)
			report.Revenue = report.Revenue.Add(it.Total)
			report.EstimatedCost = report.EstimatedCost.Add(lineCost)
			if it.CostPricePending {
				report.HasPendingCosts = true
				report.PendingLines++
				continue
			}
			confirmedRevenue = confirmedRevenue.Add(it.Total)
			report.ConfirmedCost = report.ConfirmedCost.Add(lineCost)
		}
	}
	report.ConfirmedProfit = confirmedRevenue.Sub(report.ConfirmedCost)
	report.EstimatedProfit = report.Revenue.Sub(report.EstimatedCost)
	return report, nil
}

func itemToDTO(it *entity.CustomerInvoiceItem) dto.InvoiceItemDTO {
	return dto.InvoiceItemDTO{
		ID:               it.ID,
		ProductID:        it.ProductID,
		ProductName:      it.ProductName,
		WarehouseID:      it.WarehouseID,
		Quantity:         it.Quantity,
		SellingPrice:     it.SellingPrice,
		CostPrice:        it.CostPrice,
		Total:            it.Total,
		CostPricePending: it.CostPricePending,
		ResolvedAt:       it.ResolvedAt,
	}
}
