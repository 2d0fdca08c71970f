package costing

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Lo usa ResolveReceipt cuando el resolutor se
// reinvoca fuera del flujo de recepción (reentrega de un job/webhook).
type TxRunner interface {
	RunResolution(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		invoiceRepo repository.CustomerInvoiceRepository,
		stockRepo repository.StockRepository,
	) error) error
}
