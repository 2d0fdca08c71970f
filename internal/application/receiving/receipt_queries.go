package receiving

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// ReceiptQueryUseCase consultas de solo lectura sobre recepciones.
type ReceiptQueryUseCase struct {
	receiptRepo repository.ReceiptRepository
}

// NewReceiptQueryUseCase construye el caso de uso.
func NewReceiptQueryUseCase(receiptRepo repository.ReceiptRepository) *ReceiptQueryUseCase {
	return &ReceiptQueryUseCase{receiptRepo: receiptRepo}
}

// GetByID devuelve la recepción con sus líneas.
func (uc *ReceiptQueryUseCase) GetByID(_ context.Context, id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return receiptToResponse(receipt), nil
}

// GetByOrder devuelve la recepción de una orden de compra (una orden se recibe
// completa en una sola recepción).
func (uc *ReceiptQueryUseCase) GetByOrder(_ context.Context, orderID string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return receiptToResponse(receipt), nil
}

func receiptToResponse(r *entity.Receipt) *dto.ReceiptResponse {
	resp := &dto.ReceiptResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ReceivedAt: r.ReceivedAt,
		Resolution: dto.ResolutionResultDTO{AlreadyDone: r.CostAppliedAt != nil},
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, dto.ReceiptItemDTO{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	return resp
}
