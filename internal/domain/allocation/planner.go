package allocation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// Line es una pareja (bodega, cantidad) dentro de la distribución de un producto.
type Line struct {
	WarehouseID string
	Quantity    decimal.Decimal
}

// Distribution mapea cada producto de la orden a sus líneas por bodega.
// Invariante dura: la suma de cantidades por producto debe ser exactamente
// la cantidad ordenada — ni unidades perdidas ni duplicadas.
type Distribution map[string][]Line

// WarehouseReceipt agrupa la distribución validada por bodega destino:
// es la estructura que se entrega al libro de stock (una por bodega).
type WarehouseReceipt struct {
	WarehouseID string
	Lines       []ReceiptLine
}

// ReceiptLine cantidad de un producto destinada a la bodega, con su costo unitario de la orden.
type ReceiptLine struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// Plan construye la distribución por defecto: 100% de cada línea de la orden
// a la bodega por defecto (o la primera disponible) salvo que el operador la ajuste.
func Plan(items []entity.PurchaseOrderItem, warehouses []*entity.Warehouse) Distribution {
	if len(warehouses) == 0 {
		return Distribution{}
	}
	target := warehouses[0]
	for _, wh := range warehouses {
		if wh.IsDefault {
			target = wh
			break
		}
	}
	dist := make(Distribution, len(items))
	for _, it := range items {
		dist[it.ProductID] = []Line{{WarehouseID: target.ID, Quantity: it.Quantity}}
	}
	return dist
}

// Validate verifica la distribución contra los ítems de la orden y devuelve
// TODOS los problemas encontrados como lista (no solo el primero), para que el
// operador pueda corregirlos de una vez. Lista vacía = distribución aceptada.
func Validate(dist Distribution, items []entity.PurchaseOrderItem) ValidationErrors {
	var errs ValidationErrors

	known := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		known[it.ProductID] = it.Quantity
	}

	// Productos en la distribución que no están en la orden
	for productID := range dist {
		if _, ok := known[productID]; !ok {
			errs = append(errs, ValidationError{
				ProductID: productID,
				Code:      CodeUnknownProduct,
				Message:   "el producto no pertenece a la orden",
			})
		}
	}

	for _, it := range items {
		lines := dist[it.ProductID]
		if len(lines) == 0 {
			errs = append(errs, ValidationError{
				ProductID: it.ProductID,
				Code:      CodeMissingDistribution,
				Message:   "el producto no tiene distribución asignada",
			})
			continue
		}

		sum := decimal.Zero
		seen := make(map[string]bool, len(lines))
		for _, ln := range lines {
			if !ln.Quantity.GreaterThan(decimal.Zero) {
				errs = append(errs, ValidationError{
					ProductID:   it.ProductID,
					WarehouseID: ln.WarehouseID,
					Code:        CodeNonPositiveQuantity,
					Message:     "la cantidad distribuida debe ser mayor que cero",
				})
			}
			if seen[ln.WarehouseID] {
				errs = append(errs, ValidationError{
					ProductID:   it.ProductID,
					WarehouseID: ln.WarehouseID,
					Code:        CodeDuplicateWarehouse,
					Message:     "la bodega aparece más de una vez para el mismo producto",
				})
			}
			seen[ln.WarehouseID] = true
			sum = sum.Add(ln.Quantity)
		}

		// Regla dura: sum(distribución) == cantidad ordenada. Recortar la
		// cantidad sin reasignar el resto se rechaza como distribución
		// incompleta, nunca se descartan unidades en silencio.
		switch {
		case sum.LessThan(it.Quantity):
			errs = append(errs, ValidationError{
				ProductID: it.ProductID,
				Code:      CodeIncompleteDistribution,
				Message:   "distribución incompleta: la suma es menor que la cantidad ordenada",
			})
		case sum.GreaterThan(it.Quantity):
			errs = append(errs, ValidationError{
				ProductID: it.ProductID,
				Code:      CodeExcessDistribution,
				Message:   "distribución excedida: la suma es mayor que la cantidad ordenada",
			})
		}
	}

	return errs
}

// GroupByWarehouse reagrupa la distribución validada por bodega destino (no por
// producto), heredando el costo unitario de cada línea de la orden. El orden de
// bodegas es determinista para que la aplicación al libro sea reproducible.
func GroupByWarehouse(dist Distribution, items []entity.PurchaseOrderItem) []WarehouseReceipt {
	costs := make(map[string]decimal.Decimal, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		costs[it.ProductID] = it.Price
		order = append(order, it.ProductID)
	}

	byWarehouse := make(map[string][]ReceiptLine)
	for _, productID := range order {
		for _, ln := range dist[productID] {
			byWarehouse[ln.WarehouseID] = append(byWarehouse[ln.WarehouseID], ReceiptLine{
				ProductID: productID,
				Quantity:  ln.Quantity,
				UnitCost:  costs[productID],
			})
		}
	}

	warehouseIDs := make([]string, 0, len(byWarehouse))
	for id := range byWarehouse {
		warehouseIDs = append(warehouseIDs, id)
	}
	sort.Strings(warehouseIDs)

	receipts := make([]WarehouseReceipt, 0, len(warehouseIDs))
	for _, id := range warehouseIDs {
		receipts = append(receipts, WarehouseReceipt{WarehouseID: id, Lines: byWarehouse[id]})
	}
	return receipts
}
