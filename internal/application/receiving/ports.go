package receiving

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la recepción completa (todas las
// líneas de todas las bodegas, el cambio de estado de la orden y la pasada del
// resolutor) se aplique como una sola unidad atómica.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.ReceiptRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.CustomerInvoiceRepository,
	) error) error
}
