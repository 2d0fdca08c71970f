package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// ProductResponse producto con precios de referencia vigentes.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockLevelDTO existencia de un producto en una bodega.
type StockLevelDTO struct {
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reserved    decimal.Decimal `json:"reserved"`
}

// ProductStockResponse existencias por bodega más el agregado.
type ProductStockResponse struct {
	ProductID string          `json:"product_id"`
	Levels    []StockLevelDTO `json:"levels"`
	Total     decimal.Decimal `json:"total"`
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePartnerRequest alta de tercero (proveedor o cliente).
type CreatePartnerRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // SUPPLIER, CUSTOMER, BOTH
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PartnerResponse tercero en respuestas.
type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustStockRequest ajuste manual de existencias (delta positivo o negativo).
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Delta       decimal.Decimal `json:"delta"`
	Notes       string          `json:"notes"`
}

// ReserveStockRequest reserva o liberación de existencias en una bodega.
type ReserveStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}
