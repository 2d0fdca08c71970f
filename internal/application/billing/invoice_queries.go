package billing

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// InvoiceQueryUseCase consultas de facturas de cliente (fuera de transacción).
type InvoiceQueryUseCase struct {
	invoiceRepo repository.CustomerInvoiceRepository
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoiceRepo repository.CustomerInvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo}
}

// GetByID devuelve una factura con sus líneas.
func (uc *InvoiceQueryUseCase) GetByID(_ context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return InvoiceToResponse(inv), nil
}

// List devuelve facturas filtradas por pendiente y rango de fechas.
func (uc *InvoiceQueryUseCase) List(_ context.Context, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceToResponse(inv))
	}
	return out, nil
}
