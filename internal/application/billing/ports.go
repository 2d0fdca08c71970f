package billing

import (
	"context"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Una venta con varias líneas se aplica completa
// o no se aplica.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.CustomerInvoiceRepository,
	) error) error
}
