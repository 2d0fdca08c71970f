package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// WarehouseUseCase CRUD mínimo de bodegas.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo}
}

// Create alta de bodega.
func (uc *WarehouseUseCase) Create(_ context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// List todas las bodegas.
func (uc *WarehouseUseCase) List(_ context.Context) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List()
}

// PartnerUseCase CRUD mínimo de terceros (proveedores y clientes).
type PartnerUseCase struct {
	partnerRepo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(partnerRepo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{partnerRepo: partnerRepo}
}

// Create alta de tercero.
func (uc *PartnerUseCase) Create(_ context.Context, in dto.CreatePartnerRequest) (*entity.Partner, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.PartnerTypeSupplier, entity.PartnerTypeCustomer, entity.PartnerTypeBoth:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	partner := &entity.Partner{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.partnerRepo.Create(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// List terceros, opcionalmente filtrados por tipo.
func (uc *PartnerUseCase) List(_ context.Context, partnerType string, limit, offset int) ([]*entity.Partner, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.partnerRepo.List(partnerType, limit, offset)
}
