package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste la recepción con sus líneas. La recepción es inmutable:
// después de esto solo se estampa cost_applied_at.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	ctx := context.Background()
	query := `
		INSERT INTO receipts (id, order_id, received_at, cost_applied_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if receipt.CreatedBy != "" {
		createdBy = &receipt.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		receipt.ID, receipt.OrderID, receipt.ReceivedAt, receipt.CostAppliedAt,
		receipt.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	itemQuery := `
		INSERT INTO receipt_items (id, receipt_id, product_id, warehouse_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range receipt.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.ReceiptID, it.ProductID, it.WarehouseID, it.Quantity, it.UnitCost,
		); err != nil {
			return fmt.Errorf("insert receipt item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la recepción con sus líneas.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	return r.getBy("id", id, false)
}

// GetByIDForUpdate obtiene la recepción bloqueando su fila (SELECT ... FOR
// UPDATE). Dos resoluciones concurrentes de la misma recepción quedan
// serializadas aquí: la segunda ve cost_applied_at ya estampado.
func (r *ReceiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	return r.getBy("id", id, true)
}

// GetByOrderID obtiene la recepción de una orden (a lo sumo una).
func (r *ReceiptRepo) GetByOrderID(orderID string) (*entity.Receipt, error) {
	return r.getBy("order_id", orderID, false)
}

func (r *ReceiptRepo) getBy(column, value string, forUpdate bool) (*entity.Receipt, error) {
	ctx := context.Background()
	lock := ""
	if forUpdate {
		lock = " FOR UPDATE"
	}
	query := fmt.Sprintf(`
		SELECT id, order_id, received_at, cost_applied_at, created_at, COALESCE(created_by, '')
		FROM receipts WHERE %s = $1%s`, column, lock)
	var rec entity.Receipt
	err := r.q.QueryRow(ctx, query, value).Scan(
		&rec.ID, &rec.OrderID, &rec.ReceivedAt, &rec.CostAppliedAt, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}

	itemQuery := `
		SELECT id, receipt_id, product_id, warehouse_id, quantity, unit_cost
		FROM receipt_items WHERE receipt_id = $1 ORDER BY warehouse_id, product_id`
	rows, err := r.q.Query(ctx, itemQuery, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.WarehouseID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		rec.Items = append(rec.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkCostApplied estampa la marca de resolución ejecutada (idempotencia por ID).
func (r *ReceiptRepo) MarkCostApplied(id string, at time.Time) error {
	query := `UPDATE receipts SET cost_applied_at = $2 WHERE id = $1 AND cost_applied_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark cost applied: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Ya estaba marcada: la idempotencia la garantiza el resolutor leyendo
		// cost_applied_at antes; llegar aquí dos veces es un conflicto real.
		return domain.ErrConflict
	}
	return nil
}
