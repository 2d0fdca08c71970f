package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden de compra.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreatePurchaseOrderRequest alta de orden de compra (queda en pending).
type CreatePurchaseOrderRequest struct {
	PartnerID string             `json:"partner_id"`
	Number    string             `json:"number"`
	Date      *time.Time         `json:"date"`
	Items     []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest cambio de estado de la orden. status=received
// dispara la recepción con el plan de distribución por defecto (una bodega).
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemDTO línea de orden de compra en respuestas.
type OrderItemDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	PartnerID string          `json:"partner_id"`
	Status    string          `json:"status"`
	Date      time.Time       `json:"date"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// DistributionLineRequest pareja (bodega, cantidad) dentro de la distribución de un producto.
type DistributionLineRequest struct {
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReceiveOrderRequest distribución explícita por producto para recibir una orden.
// La suma por producto debe igualar la cantidad ordenada.
type ReceiveOrderRequest struct {
	Distribution map[string][]DistributionLineRequest `json:"distribution"`
}

// ReceiptResponse recepción creada, con su distribución por bodega.
type ReceiptResponse struct {
	ID         string              `json:"id"`
	OrderID    string              `json:"order_id"`
	ReceivedAt time.Time           `json:"received_at"`
	Items      []ReceiptItemDTO    `json:"items"`
	Resolution ResolutionResultDTO `json:"cost_resolution"`
}

// ReceiptItemDTO línea de recepción.
type ReceiptItemDTO struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// ResolutionResultDTO resumen de la pasada del resolutor de costos tras la recepción.
type ResolutionResultDTO struct {
	ResolvedLines int  `json:"resolved_lines"`
	AlreadyDone   bool `json:"already_done"` // recepción ya procesada antes (reentrega)
}
