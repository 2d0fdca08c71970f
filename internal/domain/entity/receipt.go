package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt representa la recepción física de una orden de compra, con la
// distribución por bodega ya validada. Es inmutable una vez creada: es la
// unidad que consume el resolutor de costos pendientes.
type Receipt struct {
	ID            string
	OrderID       string
	ReceivedAt    time.Time
	Items         []ReceiptItem
	CostAppliedAt *time.Time // marca de resolución ya ejecutada (idempotencia por ID de recepción)
	CreatedAt     time.Time
	CreatedBy     string
}

// ReceiptItem línea de recepción: cantidad de un producto destinada a una
// bodega, con el costo unitario capturado de la orden. La resolución de costos
// pendientes siempre toma este costo, nunca el costo vigente del producto.
type ReceiptItem struct {
	ID          string
	ReceiptID   string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
}

// QuantityByProduct suma las cantidades recibidas por producto (todas las bodegas).
func (r *Receipt) QuantityByProduct() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(r.Items))
	for _, it := range r.Items {
		totals[it.ProductID] = totals[it.ProductID].Add(it.Quantity)
	}
	return totals
}

// UnitCostByProduct devuelve el costo unitario por producto dentro de la recepción.
func (r *Receipt) UnitCostByProduct() map[string]decimal.Decimal {
	costs := make(map[string]decimal.Decimal, len(r.Items))
	for _, it := range r.Items {
		costs[it.ProductID] = it.UnitCost
	}
	return costs
}
