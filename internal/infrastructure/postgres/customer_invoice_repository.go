package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

var _ repository.CustomerInvoiceRepository = (*CustomerInvoiceRepo)(nil)

// CustomerInvoiceRepo implementación sobre PostgreSQL (usable con pool o tx).
type CustomerInvoiceRepo struct {
	q Querier
}

// NewCustomerInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerInvoiceRepository(q Querier) *CustomerInvoiceRepo {
	return &CustomerInvoiceRepo{q: q}
}

const invoiceColumns = `id, number, partner_id, date, total, cost_corrected_at, created_at, updated_at, COALESCE(created_by, '')`

const itemColumns = `id, invoice_id, product_id, product_name, warehouse_id, quantity, selling_price, cost_price, total, cost_price_pending, resolved_at, COALESCE(resolved_receipt_id, '')`

// Create persiste la factura con sus líneas.
func (r *CustomerInvoiceRepo) Create(invoice *entity.CustomerInvoice) error {
	ctx := context.Background()
	query := `
		INSERT INTO customer_invoices (id, number, partner_id, date, total, cost_corrected_at, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if invoice.CreatedBy != "" {
		createdBy = &invoice.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.PartnerID, invoice.Date, invoice.Total,
		invoice.CostCorrectedAt, invoice.CreatedAt, invoice.UpdatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer invoice: %w", err)
	}
	itemQuery := `
		INSERT INTO customer_invoice_items (id, invoice_id, product_id, product_name, warehouse_id, quantity, selling_price, cost_price, total, cost_price_pending, resolved_at, resolved_receipt_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''))`
	for _, it := range invoice.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.InvoiceID, it.ProductID, it.ProductName, it.WarehouseID,
			it.Quantity, it.SellingPrice, it.CostPrice, it.Total,
			it.CostPricePending, it.ResolvedAt, it.ResolvedReceiptID,
		); err != nil {
			return fmt.Errorf("insert customer invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *CustomerInvoiceRepo) GetByID(id string) (*entity.CustomerInvoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM customer_invoices WHERE id = $1`
	inv, err := r.scanInvoiceRow(r.q.QueryRow(ctx, query, id))
	if err != nil || inv == nil {
		return inv, err
	}
	if err := r.loadItems(ctx, []*entity.CustomerInvoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List facturas según filtro, más recientes primero, con líneas.
func (r *CustomerInvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.CustomerInvoice, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `
		SELECT ` + invoiceColumns + `
		FROM customer_invoices i
		WHERE ($1::timestamptz IS NULL OR i.date >= $1)
		  AND ($2::timestamptz IS NULL OR i.date <= $2)
		  AND ($3::boolean IS NULL OR $3 = EXISTS (
			SELECT 1 FROM customer_invoice_items it
			WHERE it.invoice_id = i.id AND it.cost_price_pending))
		ORDER BY i.date DESC
		LIMIT $4 OFFSET $5`
	return r.queryInvoices(query, filter.From, filter.To, filter.Pending, limit, filter.Offset)
}

// ListPendingItemsByProduct líneas con costo pendiente de un producto, la venta
// más antigua primero (orden FIFO del resolutor). Bloquea las filas de las
// líneas para que dos resoluciones concurrentes no pisen la misma línea.
func (r *CustomerInvoiceRepo) ListPendingItemsByProduct(productID string) ([]*entity.CustomerInvoiceItem, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, it.product_name, it.warehouse_id,
		       it.quantity, it.selling_price, it.cost_price, it.total,
		       it.cost_price_pending, it.resolved_at, COALESCE(it.resolved_receipt_id, '')
		FROM customer_invoice_items it
		JOIN customer_invoices i ON i.id = it.invoice_id
		WHERE it.product_id = $1 AND it.cost_price_pending
		ORDER BY i.date ASC, i.created_at ASC
		FOR UPDATE OF it`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list pending items: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerInvoiceItem
	for rows.Next() {
		it, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ResolveItem reescribe el costo de la línea desde la recepción, limpia el flag
// pendiente y actualiza updated_at de la factura.
func (r *CustomerInvoiceRepo) ResolveItem(itemID string, cost decimal.Decimal, receiptID string, at time.Time) error {
	ctx := context.Background()
	query := `
		UPDATE customer_invoice_items
		SET cost_price = $2, cost_price_pending = false, resolved_at = $3, resolved_receipt_id = $4
		WHERE id = $1 AND cost_price_pending`
	tag, err := r.q.Exec(ctx, query, itemID, cost, at, receiptID)
	if err != nil {
		return fmt.Errorf("resolve invoice item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// La línea ya no estaba pendiente: doble resolución.
		return domain.ErrConflict
	}
	_, err = r.q.Exec(ctx, `
		UPDATE customer_invoices SET updated_at = $2
		WHERE id = (SELECT invoice_id FROM customer_invoice_items WHERE id = $1)`, itemID, at)
	if err != nil {
		return fmt.Errorf("touch invoice updated_at: %w", err)
	}
	return nil
}

// CountPendingItems cuenta las líneas aún pendientes de una factura.
func (r *CustomerInvoiceRepo) CountPendingItems(invoiceID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM customer_invoice_items
		WHERE invoice_id = $1 AND cost_price_pending`, invoiceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending items: %w", err)
	}
	return n, nil
}

// MarkCostCorrected estampa la corrección total de la factura.
func (r *CustomerInvoiceRepo) MarkCostCorrected(invoiceID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE customer_invoices SET cost_corrected_at = $2, updated_at = $2
		WHERE id = $1`, invoiceID, at)
	if err != nil {
		return fmt.Errorf("mark cost corrected: %w", err)
	}
	return nil
}

// ListPending facturas con alguna línea pendiente en el rango de fechas de venta.
func (r *CustomerInvoiceRepo) ListPending(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM customer_invoices i
		WHERE EXISTS (
			SELECT 1 FROM customer_invoice_items it
			WHERE it.invoice_id = i.id AND it.cost_price_pending)
		  AND ($1::timestamptz IS NULL OR i.date >= $1)
		  AND ($2::timestamptz IS NULL OR i.date <= $2)
		ORDER BY i.date ASC`
	return r.queryInvoices(query, from, to)
}

// ListCorrected facturas cuya corrección total cayó dentro del rango.
func (r *CustomerInvoiceRepo) ListCorrected(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM customer_invoices i
		WHERE i.cost_corrected_at IS NOT NULL
		  AND ($1::timestamptz IS NULL OR i.cost_corrected_at >= $1)
		  AND ($2::timestamptz IS NULL OR i.cost_corrected_at <= $2)
		ORDER BY i.cost_corrected_at ASC`
	return r.queryInvoices(query, from, to)
}

// ListByDateRange facturas por fecha de venta (reporte de utilidades).
func (r *CustomerInvoiceRepo) ListByDateRange(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM customer_invoices i
		WHERE ($1::timestamptz IS NULL OR i.date >= $1)
		  AND ($2::timestamptz IS NULL OR i.date <= $2)
		ORDER BY i.date ASC`
	return r.queryInvoices(query, from, to)
}

func (r *CustomerInvoiceRepo) queryInvoices(query string, args ...any) ([]*entity.CustomerInvoice, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customer invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerInvoice
	for rows.Next() {
		var inv entity.CustomerInvoice
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.PartnerID, &inv.Date, &inv.Total,
			&inv.CostCorrectedAt, &inv.CreatedAt, &inv.UpdatedAt, &inv.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan customer invoice: %w", err)
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CustomerInvoiceRepo) scanInvoiceRow(row pgx.Row) (*entity.CustomerInvoice, error) {
	var inv entity.CustomerInvoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.PartnerID, &inv.Date, &inv.Total,
		&inv.CostCorrectedAt, &inv.CreatedAt, &inv.UpdatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer invoice: %w", err)
	}
	return &inv, nil
}

func (r *CustomerInvoiceRepo) loadItems(ctx context.Context, invoices []*entity.CustomerInvoice) error {
	query := `SELECT ` + itemColumns + ` FROM customer_invoice_items WHERE invoice_id = $1 ORDER BY product_name`
	for _, inv := range invoices {
		rows, err := r.q.Query(ctx, query, inv.ID)
		if err != nil {
			return fmt.Errorf("list invoice items: %w", err)
		}
		for rows.Next() {
			it, err := scanInvoiceItem(rows)
			if err != nil {
				rows.Close()
				return err
			}
			inv.Items = append(inv.Items, *it)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func scanInvoiceItem(rows pgx.Rows) (*entity.CustomerInvoiceItem, error) {
	var it entity.CustomerInvoiceItem
	if err := rows.Scan(
		&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.WarehouseID,
		&it.Quantity, &it.SellingPrice, &it.CostPrice, &it.Total,
		&it.CostPricePending, &it.ResolvedAt, &it.ResolvedReceiptID,
	); err != nil {
		return nil, fmt.Errorf("scan invoice item: %w", err)
	}
	return &it, nil
}
