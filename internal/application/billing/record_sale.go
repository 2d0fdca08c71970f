package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/application/ports"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// RecordSaleUseCase registra una factura de cliente descontando stock.
//
// Decisión de negocio explícita: la venta NUNCA se bloquea por falta de stock.
// Si la bodega no alcanza, la cantidad queda en negativo (sobreventa) y la
// línea se marca con costo pendiente usando el costo vigente del producto como
// placeholder; la exactitud del costo se difiere a la próxima recepción.
// No "arreglar" esto rechazando ventas sobrevendidas.
type RecordSaleUseCase struct {
	txRunner    TxRunner
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	audit       ports.AuditRecorder
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(
	txRunner TxRunner,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	audit ports.AuditRecorder,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:    txRunner,
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		audit:       audit,
	}
}

// RecordSale crea la factura y descuenta el stock línea por línea en una sola
// transacción. Líneas pendientes y resueltas pueden convivir en la misma factura.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, userID string, in dto.RecordSaleRequest) (*dto.InvoiceResponse, error) {
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

	// Validar productos y precios fuera de la tx (solo lectura)
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.WarehouseID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.SellingPrice.IsZero() {
			in.Items[i].SellingPrice = product.SellingPrice
		}
	}

	now := time.Now()
	saleDate := now
	if in.Date != nil {
		saleDate = *in.Date
	}
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("FV-%d", now.Unix())
	}

	invoiceID := uuid.New().String()
	invoice := &entity.CustomerInvoice{
		ID:        invoiceID,
		Number:    number,
		PartnerID: in.PartnerID,
		Date:      saleDate,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.CustomerInvoiceRepository,
	) error {
		total := decimal.Zero
		for _, item := range in.Items {
			product := productsByID[item.ProductID]

			// Bloquea la fila de stock y decide si el costo queda pendiente
			// ANTES de descontar: pendiente si la bodega no cubre la cantidad.
			stock, err := stockRepo.GetForUpdate(item.ProductID, item.WarehouseID)
			if err != nil {
				return err
			}
			pending := stock.Quantity.LessThan(item.Quantity)

			// Descuenta igual: la cantidad puede quedar en negativo.
			if _, err := stockRepo.Adjust(item.ProductID, item.WarehouseID, item.Quantity.Neg()); err != nil {
				return err
			}

			if pending {
				log.Info().
					Str("invoice_id", invoiceID).
					Str("product_id", item.ProductID).
					Str("warehouse_id", item.WarehouseID).
					Msg("venta sobre stock insuficiente: línea con costo pendiente")
			}

			lineTotal := item.Quantity.Mul(item.SellingPrice)
			total = total.Add(lineTotal)
			invoice.Items = append(invoice.Items, entity.CustomerInvoiceItem{
				ID:               uuid.New().String(),
				InvoiceID:        invoiceID,
				ProductID:        item.ProductID,
				ProductName:      product.Name,
				WarehouseID:      item.WarehouseID,
				Quantity:         item.Quantity,
				SellingPrice:     item.SellingPrice,
				CostPrice:        product.CostPrice, // placeholder mientras pending sea true
				Total:            lineTotal,
				CostPricePending: pending,
			})

			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				WarehouseID: item.WarehouseID,
				Type:        entity.MovementTypeSALE,
				Quantity:    item.Quantity.Neg(),
				UnitCost:    product.CostPrice,
				Reference:   invoiceID,
				Date:        saleDate,
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		invoice.Total = total
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ports.AuditEntry{
		Action:     "create",
		Entity:     "customer_invoice",
		EntityID:   invoiceID,
		EntityName: number,
		UserID:     userID,
	})

	return InvoiceToResponse(invoice), nil
}

// InvoiceToResponse mapea la entidad al DTO de respuesta.
func InvoiceToResponse(inv *entity.CustomerInvoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		PartnerID:    inv.PartnerID,
		Date:         inv.Date,
		Total:        inv.Total,
		PendingCount: inv.PendingCount(),
		UpdatedAt:    inv.UpdatedAt,
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		resp.Items = append(resp.Items, dto.InvoiceItemDTO{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			WarehouseID:      it.WarehouseID,
			Quantity:         it.Quantity,
			SellingPrice:     it.SellingPrice,
			CostPrice:        it.CostPrice,
			Total:            it.Total,
			CostPricePending: it.CostPricePending,
			ResolvedAt:       it.ResolvedAt,
		})
	}
	return resp
}
