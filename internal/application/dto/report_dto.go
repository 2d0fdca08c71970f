package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingInvoiceResponse factura con líneas de costo pendiente: solo las líneas
// pendientes más el conteo.
type PendingInvoiceResponse struct {
	InvoiceID    string           `json:"invoice_id"`
	Number       string           `json:"number"`
	Date         time.Time        `json:"date"`
	PendingLines []InvoiceItemDTO `json:"pending_lines"`
	PendingCount int              `json:"pending_count"`
}

// CorrectedInvoiceResponse factura que estuvo pendiente y quedó totalmente
// resuelta: las líneas corregidas con su momento de resolución.
type CorrectedInvoiceResponse struct {
	InvoiceID     string           `json:"invoice_id"`
	Number        string           `json:"number"`
	Date          time.Time        `json:"date"`
	CorrectedAt   time.Time        `json:"corrected_at"`
	ResolvedLines []InvoiceItemDTO `json:"resolved_lines"`
}

// ProfitReportResponse agregado de ingresos/costos/utilidad del rango.
// ConfirmedProfit solo usa líneas resueltas; EstimatedProfit incluye las
// pendientes con su costo placeholder. HasPendingCosts avisa que el estimado no
// es autoritativo — nunca se mezclan en silencio.
type ProfitReportResponse struct {
	From            *time.Time      `json:"from,omitempty"`
	To              *time.Time      `json:"to,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	ConfirmedCost   decimal.Decimal `json:"confirmed_cost"`
	ConfirmedProfit decimal.Decimal `json:"confirmed_profit"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	HasPendingCosts bool            `json:"has_pending_costs"`
	PendingLines    int             `json:"pending_lines"`
}
