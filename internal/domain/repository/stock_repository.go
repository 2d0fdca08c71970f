package repository

import (
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// StockRepository define el puerto del libro de stock (producto × bodega).
// Adjust y AdjustReserved son el único camino de mutación de cantidades:
// ningún componente escribe cantidades directamente. Usado dentro de
// transacciones para garantizar consistencia (todo o nada por recepción).
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	// Adjust aplica un delta (positivo o negativo) y devuelve la nueva cantidad.
	// Acepta deltas que dejan la cantidad en negativo: la sobreventa es un
	// estado transitorio válido, no un error.
	Adjust(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error)
	// AdjustReserved aplica un delta al reservado y devuelve el nuevo valor.
	AdjustReserved(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	// LockProduct serializa dentro de la tx las operaciones sobre un producto
	// (pg_advisory_xact_lock): recepciones concurrentes del mismo producto
	// deben resolver pendientes en orden.
	LockProduct(productID string) error
}
