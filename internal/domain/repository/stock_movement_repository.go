package repository

import (
	"time"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del diario de movimientos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
