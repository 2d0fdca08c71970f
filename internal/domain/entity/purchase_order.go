package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrderStatusPending   = "pending"   // creada, pendiente de recepción
	OrderStatusReceived  = "received"  // recibida, stock incrementado
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder representa una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID        string
	Number    string
	PartnerID string // proveedor
	Status    string // pending, received, cancelled
	Date      time.Time
	Total     decimal.Decimal
	Items     []PurchaseOrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// PurchaseOrderItem línea de una orden de compra. Price es el costo unitario
// pactado con el proveedor; es el costo que hereda la recepción.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}
