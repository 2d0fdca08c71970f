package repository

import "github.com/JahongirOfficial/climart-sub004/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}

// PartnerRepository define el puerto de persistencia para terceros (proveedores/clientes).
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	List(partnerType string, limit, offset int) ([]*entity.Partner, error)
}
