package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// StockUseCase operaciones directas sobre el libro de stock: consulta por
// bodega, ajuste manual y reserva/liberación. Todo pasa por el contrato de
// ajuste del repositorio, nunca por escritura directa de cantidades.
type StockUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // lectura fuera de tx (pool)
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo}
}

// ProductStock existencias de un producto en todas sus bodegas más el agregado.
// Invariante: el total es la suma de las cantidades por bodega.
func (uc *StockUseCase) ProductStock(_ context.Context, productID string) (*dto.ProductStockResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	levels, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductStockResponse{ProductID: productID, Total: decimal.Zero}
	for _, s := range levels {
		resp.Levels = append(resp.Levels, dto.StockLevelDTO{
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			Reserved:    s.Reserved,
		})
		resp.Total = resp.Total.Add(s.Quantity)
	}
	return resp, nil
}

// Adjust registra un ajuste manual (positivo o negativo) con su asiento en el diario.
func (uc *StockUseCase) Adjust(ctx context.Context, userID, productID, warehouseID string, delta decimal.Decimal, notes string) error {
	if productID == "" || warehouseID == "" || delta.IsZero() {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if _, err := stockRepo.Adjust(productID, warehouseID, delta); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			WarehouseID: warehouseID,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    delta,
			Reference:   notes,
			Date:        now,
			CreatedAt:   now,
			CreatedBy:   userID,
		})
	})
}

// Reserve aparta unidades ya existentes (no descuenta cantidad). El reservado
// nunca supera la cantidad disponible una vez el stock está saneado.
func (uc *StockUseCase) Reserve(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	if productID == "" || warehouseID == "" || !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if stock.Reserved.Add(qty).GreaterThan(stock.Quantity) {
			return domain.ErrConflict
		}
		_, err = stockRepo.AdjustReserved(productID, warehouseID, qty)
		return err
	})
}

// Release libera unidades reservadas.
func (uc *StockUseCase) Release(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	if productID == "" || warehouseID == "" || !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if stock.Reserved.LessThan(qty) {
			return domain.ErrInvalidInput
		}
		_, err = stockRepo.AdjustReserved(productID, warehouseID, qty.Neg())
		return err
	})
}
