package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// CostPrice es el costo de referencia vigente; cada recepción captura su propio
// costo unitario, que es el que usa la resolución de costos pendientes.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Unit         string // unidad de medida (u, kg, m, caja...)
	CostPrice    decimal.Decimal // costo de referencia vigente (placeholder para ventas pendientes)
	SellingPrice decimal.Decimal // precio de venta vigente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
