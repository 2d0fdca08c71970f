package costing

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// CostResolverUseCase resuelve líneas de venta con costo pendiente cuando llega
// stock nuevo: emparejamiento FIFO entre la venta pendiente más antigua y la
// cantidad sin consumir de la recepción recién confirmada.
//
// Reglas:
//   - El costo asignado sale SIEMPRE del costo unitario de la recepción
//     consumida, nunca del costo vigente del producto.
//   - Una línea se resuelve solo si la recepción puede cubrir su cantidad
//     completa; no hay resolución parcial por línea. La primera línea que no
//     alcanza a cubrirse detiene el recorrido de ese producto (FIFO estricto).
//   - Idempotencia por ID de recepción: la marca CostAppliedAt hace que una
//     segunda entrega de la misma recepción sea un no-op.
type CostResolverUseCase struct {
	txRunner TxRunner
}

// NewCostResolverUseCase construye el resolutor.
func NewCostResolverUseCase(txRunner TxRunner) *CostResolverUseCase {
	return &CostResolverUseCase{txRunner: txRunner}
}

// Result resumen de una pasada de resolución.
type Result struct {
	ResolvedLines int
	AlreadyDone   bool // la recepción ya había sido procesada (reentrega)
}

// ResolveInTx ejecuta la pasada de resolución con los repositorios de la
// transacción del caller (la misma tx que aplicó los incrementos del libro).
// Se invoca de forma síncrona tras confirmar la recepción.
func (uc *CostResolverUseCase) ResolveInTx(
	receiptRepo repository.ReceiptRepository,
	invoiceRepo repository.CustomerInvoiceRepository,
	stockRepo repository.StockRepository,
	receiptID string,
	now time.Time,
) (Result, error) {
	// Lectura con bloqueo de fila: la marca de idempotencia se comprueba bajo
	// el lock de la recepción, así una reentrega concurrente espera y ve
	// CostAppliedAt estampado en vez de chocar en MarkCostApplied.
	receipt, err := receiptRepo.GetByIDForUpdate(receiptID)
	if err != nil {
		return Result{}, err
	}
	if receipt == nil {
		return Result{}, domain.ErrNotFound
	}
	if receipt.CostAppliedAt != nil {
		// Reentrega del mismo receipt id: no-op, no se consume ni resuelve nada dos veces.
		log.Info().Str("receipt_id", receiptID).Msg("resolución ya aplicada, se ignora la reentrega")
		return Result{AlreadyDone: true}, nil
	}

	quantities := receipt.QuantityByProduct()
	costs := receipt.UnitCostByProduct()

	// Orden determinista de productos para que el bloqueo por producto no
	// genere interbloqueos entre recepciones concurrentes.
	productIDs := make([]string, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	result := Result{}
	for _, productID := range productIDs {
		// Serializa recepciones concurrentes del mismo producto: sin esto dos
		// recepciones podrían resolver pendientes fuera de orden FIFO.
		if err := stockRepo.LockProduct(productID); err != nil {
			return Result{}, err
		}
		resolved, err := uc.resolveProduct(invoiceRepo, receipt, productID, quantities[productID], costs[productID], now)
		if err != nil {
			return Result{}, err
		}
		result.ResolvedLines += resolved
	}

	if err := receiptRepo.MarkCostApplied(receiptID, now); err != nil {
		return Result{}, err
	}
	return result, nil
}

// resolveProduct recorre las líneas pendientes del producto de la venta más
// antigua a la más reciente y consume la cantidad disponible de la recepción.
func (uc *CostResolverUseCase) resolveProduct(
	invoiceRepo repository.CustomerInvoiceRepository,
	receipt *entity.Receipt,
	productID string,
	available decimal.Decimal,
	unitCost decimal.Decimal,
	now time.Time,
) (int, error) {
	pending, err := invoiceRepo.ListPendingItemsByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		// Resultado normal, no un error: todavía no hay ventas adelantadas de este producto.
		log.Info().
			Str("receipt_id", receipt.ID).
			Str("product_id", productID).
			Msg("sin líneas pendientes para el producto")
		return 0, nil
	}

	resolved := 0
	for _, item := range pending {
		if available.LessThan(item.Quantity) {
			// La recepción no cubre la línea completa: la línea sigue
			// pendiente y espera la próxima recepción. No se salta a líneas
			// más recientes — eso rompería el orden FIFO del costo.
			break
		}
		if err := invoiceRepo.ResolveItem(item.ID, unitCost, receipt.ID, now); err != nil {
			return resolved, err
		}
		available = available.Sub(item.Quantity)
		resolved++

		left, err := invoiceRepo.CountPendingItems(item.InvoiceID)
		if err != nil {
			return resolved, err
		}
		if left == 0 {
			// Última línea pendiente de la factura: pasa a la vista de corregidas.
			if err := invoiceRepo.MarkCostCorrected(item.InvoiceID, now); err != nil {
				return resolved, err
			}
		}
	}
	return resolved, nil
}

// ResolveReceipt reejecuta la resolución para una recepción en su propia
// transacción (reentrega de un job). Gracias a CostAppliedAt la segunda pasada
// es un no-op.
func (uc *CostResolverUseCase) ResolveReceipt(ctx context.Context, receiptID string) (Result, error) {
	var result Result
	err := uc.txRunner.RunResolution(ctx, func(
		receiptRepo repository.ReceiptRepository,
		invoiceRepo repository.CustomerInvoiceRepository,
		stockRepo repository.StockRepository,
	) error {
		var err error
		result, err = uc.ResolveInTx(receiptRepo, invoiceRepo, stockRepo, receiptID, time.Now())
		return err
	})
	return result, err
}
