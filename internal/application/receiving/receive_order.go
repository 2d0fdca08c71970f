package receiving

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JahongirOfficial/climart-sub004/internal/application/costing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/ports"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/allocation"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// Reintentos ante conflicto de concurrencia en el libro de stock. El payload se
// reenvía idéntico (mismo receipt id), así la operación es idempotente.
const (
	maxRetries = 3
	retryBase  = 50 * time.Millisecond
)

// ReceiveOrderUseCase orquesta la recepción de una orden de compra:
// distribución validada → incrementos del libro por bodega → recepción
// inmutable → orden en received → pasada síncrona del resolutor de costos.
// Todo dentro de una sola transacción.
type ReceiveOrderUseCase struct {
	txRunner      TxRunner
	orderRepo     repository.PurchaseOrderRepository
	warehouseRepo repository.WarehouseRepository
	resolver      *costing.CostResolverUseCase
	audit         ports.AuditRecorder
}

// NewReceiveOrderUseCase construye el caso de uso.
func NewReceiveOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	warehouseRepo repository.WarehouseRepository,
	resolver *costing.CostResolverUseCase,
	audit ports.AuditRecorder,
) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		resolver:      resolver,
		audit:         audit,
	}
}

// ReceiveFromOrder recibe la orden con una distribución explícita por bodega.
// Errores de validación se devuelven completos como allocation.ValidationErrors
// sin aplicar nada.
func (uc *ReceiveOrderUseCase) ReceiveFromOrder(ctx context.Context, orderID, userID string, in dto.ReceiveOrderRequest) (*dto.ReceiptResponse, error) {
	if orderID == "" || len(in.Distribution) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.loadPendingOrder(orderID)
	if err != nil {
		return nil, err
	}

	dist := make(allocation.Distribution, len(in.Distribution))
	for productID, lines := range in.Distribution {
		converted := make([]allocation.Line, len(lines))
		for i, ln := range lines {
			converted[i] = allocation.Line{WarehouseID: ln.WarehouseID, Quantity: ln.Quantity}
		}
		dist[productID] = converted
	}

	if errs := uc.validate(dist, order); len(errs) > 0 {
		return nil, errs
	}
	return uc.receive(ctx, order, dist, userID)
}

// MarkReceived recibe la orden con el plan por defecto: todo a la bodega por
// defecto (o la primera). Respaldo del PATCH de estado a "received".
func (uc *ReceiveOrderUseCase) MarkReceived(ctx context.Context, orderID, userID string) (*dto.ReceiptResponse, error) {
	order, err := uc.loadPendingOrder(orderID)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouseRepo.List()
	if err != nil {
		return nil, err
	}
	if len(warehouses) == 0 {
		return nil, domain.ErrInvalidInput
	}
	dist := allocation.Plan(order.Items, warehouses)
	if errs := allocation.Validate(dist, order.Items); len(errs) > 0 {
		return nil, errs
	}
	return uc.receive(ctx, order, dist, userID)
}

func (uc *ReceiveOrderUseCase) loadPendingOrder(orderID string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}
	return order, nil
}

// validate corre la validación del planificador más la existencia de las bodegas.
func (uc *ReceiveOrderUseCase) validate(dist allocation.Distribution, order *entity.PurchaseOrder) allocation.ValidationErrors {
	errs := allocation.Validate(dist, order.Items)

	warehouses, err := uc.warehouseRepo.List()
	if err != nil {
		return append(errs, allocation.ValidationError{
			Code:    "WAREHOUSE_LOOKUP",
			Message: "no se pudieron consultar las bodegas",
		})
	}
	known := make(map[string]bool, len(warehouses))
	for _, wh := range warehouses {
		known[wh.ID] = true
	}
	for productID, lines := range dist {
		for _, ln := range lines {
			if !known[ln.WarehouseID] {
				errs = append(errs, allocation.ValidationError{
					ProductID:   productID,
					WarehouseID: ln.WarehouseID,
					Code:        "UNKNOWN_WAREHOUSE",
					Message:     "la bodega no existe",
				})
			}
		}
	}
	return errs
}

// receive aplica la recepción completa en una transacción y reintenta ante
// conflicto de concurrencia con el MISMO payload (mismo receipt id).
func (uc *ReceiveOrderUseCase) receive(ctx context.Context, order *entity.PurchaseOrder, dist allocation.Distribution, userID string) (*dto.ReceiptResponse, error) {
	grouped := allocation.GroupByWarehouse(dist, order.Items)
	receiptID := uuid.New().String()
	now := time.Now()

	receipt := &entity.Receipt{
		ID:         receiptID,
		OrderID:    order.ID,
		ReceivedAt: now,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	for _, wr := range grouped {
		for _, ln := range wr.Lines {
			receipt.Items = append(receipt.Items, entity.ReceiptItem{
				ID:          uuid.New().String(),
				ReceiptID:   receiptID,
				ProductID:   ln.ProductID,
				WarehouseID: wr.WarehouseID,
				Quantity:    ln.Quantity,
				UnitCost:    ln.UnitCost,
			})
		}
	}

	var resolution costing.Result
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = uc.txRunner.RunReceiving(ctx, func(
			orderRepo repository.PurchaseOrderRepository,
			receiptRepo repository.ReceiptRepository,
			stockRepo repository.StockRepository,
			movRepo repository.StockMovementRepository,
			invoiceRepo repository.CustomerInvoiceRepository,
		) error {
			// Relee la orden con bloqueo: dos recepciones simultáneas de la
			// misma orden no pueden pasar ambas por aquí.
			locked, err := orderRepo.GetForUpdate(order.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			if locked.Status != entity.OrderStatusPending {
				return domain.ErrOrderNotPending
			}

			if err := receiptRepo.Create(receipt); err != nil {
				return err
			}
			for _, it := range receipt.Items {
				if _, err := stockRepo.Adjust(it.ProductID, it.WarehouseID, it.Quantity); err != nil {
					return err
				}
				mov := &entity.StockMovement{
					ID:          uuid.New().String(),
					ProductID:   it.ProductID,
					WarehouseID: it.WarehouseID,
					Type:        entity.MovementTypeRECEIPT,
					Quantity:    it.Quantity,
					UnitCost:    it.UnitCost,
					Reference:   receiptID,
					Date:        now,
					CreatedAt:   now,
					CreatedBy:   userID,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
			}
			if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusReceived); err != nil {
				return err
			}

			// Resolutor de costos: síncrono, en la misma tx que los incrementos.
			resolution, err = uc.resolver.ResolveInTx(receiptRepo, invoiceRepo, stockRepo, receiptID, now)
			return err
		})
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
		log.Warn().
			Str("order_id", order.ID).
			Str("receipt_id", receiptID).
			Int("attempt", attempt+1).
			Msg("conflicto de concurrencia al recibir, reintentando")
		time.Sleep(retryBase << attempt)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ports.AuditEntry{
		Action:   "receive",
		Entity:   "receipt",
		EntityID: receiptID,
		UserID:   userID,
	})

	resp := &dto.ReceiptResponse{
		ID:         receiptID,
		OrderID:    order.ID,
		ReceivedAt: now,
		Resolution: dto.ResolutionResultDTO{
			ResolvedLines: resolution.ResolvedLines,
			AlreadyDone:   resolution.AlreadyDone,
		},
	}
	for _, it := range receipt.Items {
		resp.Items = append(resp.Items, dto.ReceiptItemDTO{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	return resp, nil
}
