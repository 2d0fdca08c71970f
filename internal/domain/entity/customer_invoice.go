package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInvoice representa una factura de venta a cliente. Puede mezclar
// líneas con costo confirmado y líneas con costo pendiente (sobreventa).
// CostCorrectedAt se estampa cuando la última línea pendiente queda resuelta;
// alimenta la vista de "corregidas".
type CustomerInvoice struct {
	ID              string
	Number          string
	PartnerID       string // cliente
	Date            time.Time
	Total           decimal.Decimal
	Items           []CustomerInvoiceItem
	CostCorrectedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
}

// CustomerInvoiceItem línea de factura de cliente.
// Mientras CostPricePending sea true, CostPrice es solo un placeholder (último
// costo conocido del producto) y no debe usarse para utilidades confirmadas.
type CustomerInvoiceItem struct {
	ID                string
	InvoiceID         string
	ProductID         string
	ProductName       string
	WarehouseID       string
	Quantity          decimal.Decimal
	SellingPrice      decimal.Decimal
	CostPrice         decimal.Decimal
	Total             decimal.Decimal
	CostPricePending  bool
	ResolvedAt        *time.Time // cuándo se resolvió el costo pendiente
	ResolvedReceiptID string     // recepción que aportó el costo
}

// ConfirmedCost devuelve el costo de la línea solo si ya es confiable.
func (it *CustomerInvoiceItem) ConfirmedCost() (decimal.Decimal, bool) {
	if it.CostPricePending {
		return decimal.Zero, false
	}
	return it.CostPrice, true
}

// PendingCount cuenta las líneas con costo pendiente.
func (inv *CustomerInvoice) PendingCount() int {
	n := 0
	for i := range inv.Items {
		if inv.Items[i].CostPricePending {
			n++
		}
	}
	return n
}

// HasPending indica si la factura tiene al menos una línea con costo pendiente.
func (inv *CustomerInvoice) HasPending() bool {
	return inv.PendingCount() > 0
}
