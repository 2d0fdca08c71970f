package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JahongirOfficial/climart-sub004/internal/application/reporting"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de facturas (solo las consultas que usa el reporte)
// ──────────────────────────────────────────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices []*entity.CustomerInvoice
}

func (s *stubInvoiceRepo) Create(*entity.CustomerInvoice) error { return nil }
func (s *stubInvoiceRepo) GetByID(string) (*entity.CustomerInvoice, error) {
	return nil, nil
}
func (s *stubInvoiceRepo) List(repository.InvoiceFilter) ([]*entity.CustomerInvoice, error) {
	return s.invoices, nil
}
func (s *stubInvoiceRepo) ListPendingItemsByProduct(string) ([]*entity.CustomerInvoiceItem, error) {
	return nil, nil
}
func (s *stubInvoiceRepo) ResolveItem(string, decimal.Decimal, string, time.Time) error { return nil }
func (s *stubInvoiceRepo) CountPendingItems(string) (int, error)                        { return 0, nil }
func (s *stubInvoiceRepo) MarkCostCorrected(string, time.Time) error                    { return nil }

func (s *stubInvoiceRepo) ListPending(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	var out []*entity.CustomerInvoice
	for _, inv := range s.invoices {
		if inv.HasPending() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) ListCorrected(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	var out []*entity.CustomerInvoice
	for _, inv := range s.invoices {
		if inv.CostCorrectedAt != nil {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) ListByDateRange(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	return s.invoices, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func ts(day int) time.Time {
	return time.Date(2026, time.April, day, 12, 0, 0, 0, time.UTC)
}

// mixedInvoice factura con una línea confirmada (venta 30, costo 12) y una
// pendiente (venta 50, costo placeholder 20).
func mixedInvoice() *entity.CustomerInvoice {
	return &entity.CustomerInvoice{
		ID:     "inv-mixta",
		Number: "FV-100",
		Date:   ts(2),
		Total:  d(80),
		Items: []entity.CustomerInvoiceItem{
			{
				ID: "it-ok", InvoiceID: "inv-mixta", ProductID: "prod-a",
				Quantity: d(3), SellingPrice: d(10), CostPrice: d(4), Total: d(30),
			},
			{
				ID: "it-pend", InvoiceID: "inv-mixta", ProductID: "prod-b",
				Quantity: d(5), SellingPrice: d(10), CostPrice: d(4), Total: d(50),
				CostPricePending: true,
			},
		},
	}
}

func correctedInvoice() *entity.CustomerInvoice {
	correctedAt := ts(10)
	resolvedAt := ts(10)
	return &entity.CustomerInvoice{
		ID:              "inv-corr",
		Number:          "FV-101",
		Date:            ts(3),
		Total:           d(50),
		CostCorrectedAt: &correctedAt,
		Items: []entity.CustomerInvoiceItem{
			{
				ID: "it-res", InvoiceID: "inv-corr", ProductID: "prod-b",
				Quantity: d(5), SellingPrice: d(10), CostPrice: d(6), Total: d(50),
				ResolvedAt: &resolvedAt, ResolvedReceiptID: "rcpt-9",
			},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// La vista de pendientes devuelve solo las líneas pendientes, no toda la factura.
func TestListPending_SoloLineasPendientes(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []*entity.CustomerInvoice{mixedInvoice(), correctedInvoice()}}
	uc := reporting.NewCorrectionReportUseCase(repo)

	out, err := uc.ListPending(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out, 1, "solo la factura con pendientes debe aparecer")
	assert.Equal(t, "inv-mixta", out[0].InvoiceID)
	require.Len(t, out[0].PendingLines, 1)
	assert.Equal(t, "it-pend", out[0].PendingLines[0].ID)
	assert.Equal(t, 1, out[0].PendingCount)
}

// La vista de corregidas exige corrección total: facturas aún pendientes no entran.
func TestListCorrected_SoloTotalmenteResueltas(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []*entity.CustomerInvoice{mixedInvoice(), correctedInvoice()}}
	uc := reporting.NewCorrectionReportUseCase(repo)

	out, err := uc.ListCorrected(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "inv-corr", out[0].InvoiceID)
	assert.Equal(t, ts(10), out[0].CorrectedAt)
	require.Len(t, out[0].ResolvedLines, 1)
	assert.True(t, out[0].ResolvedLines[0].CostPrice.Equal(d(6)),
		"la línea corregida debe mostrar el costo real de la recepción")
}

// Con líneas pendientes el reporte separa confirmado y estimado y lo declara.
func TestProfitReport_PendientesSeparanConfirmadoDeEstimado(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []*entity.CustomerInvoice{mixedInvoice()}}
	uc := reporting.NewCorrectionReportUseCase(repo)

	report, err := uc.ProfitReport(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.True(t, report.Revenue.Equal(d(80)), "30 + 50")
	assert.True(t, report.ConfirmedCost.Equal(d(12)), "solo la línea resuelta: 3×4")
	assert.True(t, report.ConfirmedProfit.Equal(d(18)), "30 - 12: la pendiente no participa")
	assert.True(t, report.EstimatedCost.Equal(d(32)), "3×4 + 5×4 con el placeholder")
	assert.True(t, report.EstimatedProfit.Equal(d(48)), "80 - 32")
	assert.True(t, report.HasPendingCosts, "el estimado no es autoritativo y debe declararse")
	assert.Equal(t, 1, report.PendingLines)
}

// Sin pendientes, confirmado y estimado coinciden y el flag queda apagado.
func TestProfitReport_SinPendientesCoinciden(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []*entity.CustomerInvoice{correctedInvoice()}}
	uc := reporting.NewCorrectionReportUseCase(repo)

	report, err := uc.ProfitReport(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.True(t, report.ConfirmedCost.Equal(report.EstimatedCost))
	assert.True(t, report.ConfirmedProfit.Equal(report.EstimatedProfit))
	assert.True(t, report.ConfirmedProfit.Equal(d(20)), "50 - 5×6")
	assert.False(t, report.HasPendingCosts)
	assert.Equal(t, 0, report.PendingLines)
}

func TestProfitReport_SinFacturas(t *testing.T) {
	uc := reporting.NewCorrectionReportUseCase(&stubInvoiceRepo{})

	report, err := uc.ProfitReport(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, report.Revenue.IsZero())
	assert.True(t, report.ConfirmedProfit.IsZero())
	assert.False(t, report.HasPendingCosts)
}
