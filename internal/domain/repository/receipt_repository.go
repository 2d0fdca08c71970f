package repository

import (
	"time"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para recepciones.
// Una recepción es inmutable una vez creada; solo se estampa CostAppliedAt
// cuando el resolutor de costos la procesa (idempotencia por ID de recepción).
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	// GetByIDForUpdate lee la recepción bloqueando su fila. El resolutor la usa
	// para comprobar CostAppliedAt sin carreras con una reentrega concurrente.
	GetByIDForUpdate(id string) (*entity.Receipt, error)
	GetByOrderID(orderID string) (*entity.Receipt, error)
	MarkCostApplied(id string, at time.Time) error
}
