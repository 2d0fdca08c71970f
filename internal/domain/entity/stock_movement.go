package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementTypeRECEIPT    = "RECEIPT"    // entrada por recepción de orden de compra
	MovementTypeSALE       = "SALE"       // salida por factura de cliente
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// StockMovement es el asiento del libro de stock: todo ajuste de cantidad pasa
// por aquí con referencia al documento que lo originó (recepción o factura).
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	UnitCost    decimal.Decimal
	Reference   string // ID de la recepción o factura
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
