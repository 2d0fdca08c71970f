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

// ProductUseCase CRUD mínimo de productos (colaborador de lectura para el núcleo).
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create alta de producto.
func (uc *ProductUseCase) Create(_ context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve el producto con sus precios de referencia vigentes.
func (uc *ProductUseCase) GetByID(_ context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List listado paginado.
func (uc *ProductUseCase) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.productRepo.List(limit, offset)
}
