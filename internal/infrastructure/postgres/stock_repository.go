package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
// Adjust es el único camino de escritura de cantidades: upsert con delta en un
// solo statement, devolviendo la cantidad resultante.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero, Reserved: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero, Reserved: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Adjust aplica un delta a la cantidad (upsert) y devuelve la cantidad nueva.
// Deltas negativos que dejan la cantidad bajo cero se aceptan sin error:
// la sobreventa es un estado transitorio válido del libro.
func (r *StockRepo) Adjust(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, delta).Scan(&newQty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return newQty, nil
}

// AdjustReserved aplica un delta al reservado y devuelve el reservado nuevo.
func (r *StockRepo) AdjustReserved(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, reserved, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET reserved = stock.reserved + EXCLUDED.reserved, updated_at = now()
		RETURNING reserved`
	var newReserved decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, delta).Scan(&newReserved)
	if err != nil {
		return decimal.Zero, fmt.Errorf("adjust reserved: %w", err)
	}
	return newReserved, nil
}

// ListByProduct existencias del producto en todas las bodegas con registro.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, reserved, updated_at
		FROM stock WHERE product_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// LockProduct serializa dentro de la tx las operaciones sobre un producto
// (pg_advisory_xact_lock). El lock se libera solo al terminar la transacción.
func (r *StockRepo) LockProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, productID)
	if err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}
