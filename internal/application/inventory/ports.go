package inventory

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para ajustes manuales y
// reservas del libro de stock.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
