package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	IsDefault bool // bodega por defecto para el plan de distribución inicial
	CreatedAt time.Time
	UpdatedAt time.Time
}
