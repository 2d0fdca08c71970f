package repository

import "github.com/JahongirOfficial/climart-sub004/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE) para
	// serializar recepciones concurrentes de la misma orden.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
}
