package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas de cliente.
type InvoiceFilter struct {
	Pending *bool // nil = todas; true = con líneas pendientes; false = sin pendientes
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// CustomerInvoiceRepository define el puerto de persistencia para facturas de
// cliente y sus líneas, incluidas las consultas del resolutor de costos y de
// las vistas de corrección.
type CustomerInvoiceRepository interface {
	Create(invoice *entity.CustomerInvoice) error
	GetByID(id string) (*entity.CustomerInvoice, error)
	List(filter InvoiceFilter) ([]*entity.CustomerInvoice, error)

	// ListPendingItemsByProduct devuelve las líneas con costo pendiente de un
	// producto, ordenadas por fecha de factura ascendente (la venta más antigua
	// primero) — el orden que exige el emparejamiento FIFO.
	ListPendingItemsByProduct(productID string) ([]*entity.CustomerInvoiceItem, error)

	// ResolveItem reescribe el costo de la línea, limpia el flag pendiente,
	// estampa la resolución y actualiza updated_at de la factura.
	ResolveItem(itemID string, cost decimal.Decimal, receiptID string, at time.Time) error

	// CountPendingItems cuenta las líneas aún pendientes de una factura.
	CountPendingItems(invoiceID string) (int, error)

	// MarkCostCorrected estampa el momento en que la factura quedó totalmente
	// resuelta (alimenta la vista de corregidas).
	MarkCostCorrected(invoiceID string, at time.Time) error

	// ListPending facturas con al menos una línea pendiente dentro del rango de fechas.
	ListPending(from, to *time.Time) ([]*entity.CustomerInvoice, error)

	// ListCorrected facturas cuya corrección total cayó dentro del rango.
	ListCorrected(from, to *time.Time) ([]*entity.CustomerInvoice, error)

	// ListByDateRange facturas (con líneas) por fecha de venta, para el reporte de utilidades.
	ListByDateRange(from, to *time.Time) ([]*entity.CustomerInvoice, error)
}
