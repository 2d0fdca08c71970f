package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/ports"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// PurchaseOrderUseCase alta y consulta de órdenes de compra. La recepción
// (transición a received) es responsabilidad del paquete receiving.
type PurchaseOrderUseCase struct {
	orderRepo   repository.PurchaseOrderRepository
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	audit       ports.AuditRecorder
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	orderRepo repository.PurchaseOrderRepository,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	audit ports.AuditRecorder,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		orderRepo:   orderRepo,
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		audit:       audit,
	}
}

// Create alta de orden de compra en estado pending.
func (uc *PurchaseOrderUseCase) Create(_ context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.PartnerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	partner, err := uc.partnerRepo.GetByID(in.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("OC-%d", now.Unix())
	}

	orderID := uuid.New().String()
	order := &entity.PurchaseOrder{
		ID:        orderID,
		Number:    number,
		PartnerID: in.PartnerID,
		Status:    entity.OrderStatusPending,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
	}

	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lineTotal := item.Quantity.Mul(item.Price)
		total = total.Add(lineTotal)
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       lineTotal,
		})
	}
	order.Total = total

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.audit.Record(ports.AuditEntry{
		Action:     "create",
		Entity:     "purchase_order",
		EntityID:   orderID,
		EntityName: number,
		UserID:     userID,
	})
	return order, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List listado por estado.
func (uc *PurchaseOrderUseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.orderRepo.List(status, limit, offset)
}

// Cancel pasa una orden pendiente a cancelled. Una orden recibida no se cancela.
func (uc *PurchaseOrderUseCase) Cancel(_ context.Context, userID, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return domain.ErrOrderNotPending
	}
	if err := uc.orderRepo.UpdateStatus(id, entity.OrderStatusCancelled); err != nil {
		return err
	}
	uc.audit.Record(ports.AuditEntry{
		Action:     "update",
		Entity:     "purchase_order",
		EntityID:   id,
		EntityName: order.Number,
		UserID:     userID,
	})
	return nil
}
