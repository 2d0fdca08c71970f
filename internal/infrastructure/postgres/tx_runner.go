package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JahongirOfficial/climart-sub004/internal/application/billing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/costing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/inventory"
	"github.com/JahongirOfficial/climart-sub004/internal/application/receiving"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos de transacción de cada caso de uso.
var _ receiving.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ costing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización salen como domain.ErrConflict para que el caso de uso
// reintente el payload completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunReceiving transacción de recepción: orden + recepción + libro + diario + resolutor.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.CustomerInvoiceRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewPurchaseOrderRepository(q),
			NewReceiptRepository(q),
			NewStockRepository(q),
			NewStockMovementRepository(q),
			NewCustomerInvoiceRepository(q),
		)
	})
}

// RunSale transacción de venta: libro + diario + factura.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.CustomerInvoiceRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockRepository(q),
			NewStockMovementRepository(q),
			NewCustomerInvoiceRepository(q),
		)
	})
}

// RunStock transacción de ajuste/reserva manual.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewStockRepository(q), NewStockMovementRepository(q))
	})
}

// RunResolution transacción del resolutor fuera del flujo de recepción (reentregas).
func (r *TxRunner) RunResolution(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	invoiceRepo repository.CustomerInvoiceRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewReceiptRepository(q),
			NewCustomerInvoiceRepository(q),
			NewStockRepository(q),
		)
	})
}
