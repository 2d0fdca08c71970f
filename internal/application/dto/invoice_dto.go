package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta: cantidad de un producto desde una bodega.
// Si SellingPrice es cero se usa el precio vigente del producto.
type SaleItemRequest struct {
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// RecordSaleRequest alta de factura de cliente. La venta nunca se bloquea por
// falta de stock: la bodega queda en negativo y la línea con costo pendiente.
type RecordSaleRequest struct {
	PartnerID string            `json:"partner_id"`
	Number    string            `json:"number"`
	Date      *time.Time        `json:"date"`
	Items     []SaleItemRequest `json:"items"`
}

// InvoiceItemDTO línea de factura en respuestas.
type InvoiceItemDTO struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	WarehouseID      string          `json:"warehouse_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	Total            decimal.Decimal `json:"total"`
	CostPricePending bool            `json:"cost_price_pending"`
	ResolvedAt       *time.Time      `json:"resolved_at,omitempty"`
}

// InvoiceResponse factura de cliente con sus líneas.
type InvoiceResponse struct {
	ID           string           `json:"id"`
	Number       string           `json:"number"`
	PartnerID    string           `json:"partner_id"`
	Date         time.Time        `json:"date"`
	Total        decimal.Decimal  `json:"total"`
	Items        []InvoiceItemDTO `json:"items"`
	PendingCount int              `json:"pending_count"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
