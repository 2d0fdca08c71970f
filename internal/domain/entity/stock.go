package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un producto en una bodega.
// Quantity puede ser negativa: una venta sobre stock insuficiente se registra
// igual (sobreventa) y la cantidad queda en negativo hasta la próxima recepción.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reserved    decimal.Decimal
	UpdatedAt   time.Time
}
