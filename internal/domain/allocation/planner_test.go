package allocation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JahongirOfficial/climart-sub004/internal/domain/allocation"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func orderItems() []entity.PurchaseOrderItem {
	return []entity.PurchaseOrderItem{
		{ProductID: "prod-widget", Quantity: qty(10), Price: decimal.NewFromInt(4)},
		{ProductID: "prod-gadget", Quantity: qty(5), Price: decimal.NewFromInt(7)},
	}
}

func warehouses() []*entity.Warehouse {
	return []*entity.Warehouse{
		{ID: "wh-norte", Name: "Norte"},
		{ID: "wh-central", Name: "Central", IsDefault: true},
	}
}

func codesOf(errs allocation.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Plan
// ──────────────────────────────────────────────────────────────────────────────

// El plan por defecto manda el 100% de cada línea a la bodega marcada default.
func TestPlan_TodoALaBodegaPorDefecto(t *testing.T) {
	dist := allocation.Plan(orderItems(), warehouses())

	require.Len(t, dist, 2, "debe haber una entrada por producto")
	require.Len(t, dist["prod-widget"], 1)
	assert.Equal(t, "wh-central", dist["prod-widget"][0].WarehouseID,
		"la bodega default debe recibir toda la cantidad")
	assert.True(t, dist["prod-widget"][0].Quantity.Equal(qty(10)))
}

// Sin bodega default, se usa la primera disponible.
func TestPlan_SinDefaultUsaLaPrimera(t *testing.T) {
	whs := []*entity.Warehouse{
		{ID: "wh-a", Name: "A"},
		{ID: "wh-b", Name: "B"},
	}
	dist := allocation.Plan(orderItems(), whs)

	assert.Equal(t, "wh-a", dist["prod-gadget"][0].WarehouseID)
}

func TestPlan_SinBodegasDevuelveVacio(t *testing.T) {
	dist := allocation.Plan(orderItems(), nil)
	assert.Empty(t, dist)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_DistribucionExactaPasa(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {
			{WarehouseID: "wh-central", Quantity: qty(6)},
			{WarehouseID: "wh-norte", Quantity: qty(4)},
		},
		"prod-gadget": {
			{WarehouseID: "wh-central", Quantity: qty(5)},
		},
	}
	errs := allocation.Validate(dist, orderItems())
	assert.Empty(t, errs, "una distribución que suma exacto no debe producir errores")
}

// La suma menor a lo ordenado se rechaza: no se descartan unidades en silencio.
func TestValidate_SumaMenorEsIncompleta(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {{WarehouseID: "wh-central", Quantity: qty(7)}},
		"prod-gadget": {{WarehouseID: "wh-central", Quantity: qty(5)}},
	}
	errs := allocation.Validate(dist, orderItems())

	require.Len(t, errs, 1)
	assert.Equal(t, allocation.CodeIncompleteDistribution, errs[0].Code)
	assert.Equal(t, "prod-widget", errs[0].ProductID)
}

func TestValidate_SumaMayorEsExceso(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {{WarehouseID: "wh-central", Quantity: qty(12)}},
		"prod-gadget": {{WarehouseID: "wh-central", Quantity: qty(5)}},
	}
	errs := allocation.Validate(dist, orderItems())

	require.Len(t, errs, 1)
	assert.Equal(t, allocation.CodeExcessDistribution, errs[0].Code)
}

func TestValidate_ProductoSinDistribucion(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {{WarehouseID: "wh-central", Quantity: qty(10)}},
	}
	errs := allocation.Validate(dist, orderItems())

	require.Len(t, errs, 1)
	assert.Equal(t, allocation.CodeMissingDistribution, errs[0].Code)
	assert.Equal(t, "prod-gadget", errs[0].ProductID)
}

func TestValidate_ProductoDesconocidoEnDistribucion(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget":   {{WarehouseID: "wh-central", Quantity: qty(10)}},
		"prod-gadget":   {{WarehouseID: "wh-central", Quantity: qty(5)}},
		"prod-fantasma": {{WarehouseID: "wh-central", Quantity: qty(1)}},
	}
	errs := allocation.Validate(dist, orderItems())

	require.Len(t, errs, 1)
	assert.Equal(t, allocation.CodeUnknownProduct, errs[0].Code)
	assert.Equal(t, "prod-fantasma", errs[0].ProductID)
}

// La validación reporta TODOS los problemas a la vez, nunca solo el primero.
func TestValidate_ReportaTodosLosErroresJuntos(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {
			{WarehouseID: "wh-central", Quantity: qty(0)}, // cantidad no positiva
			{WarehouseID: "wh-central", Quantity: qty(3)}, // bodega duplicada
		},
		// prod-gadget sin distribución
	}
	errs := allocation.Validate(dist, orderItems())

	codes := codesOf(errs)
	assert.Contains(t, codes, allocation.CodeNonPositiveQuantity)
	assert.Contains(t, codes, allocation.CodeDuplicateWarehouse)
	assert.Contains(t, codes, allocation.CodeMissingDistribution)
	assert.Contains(t, codes, allocation.CodeIncompleteDistribution,
		"0+3 < 10 también debe reportarse como incompleta")
	assert.GreaterOrEqual(t, len(errs), 4,
		"todos los problemas deben venir en una sola respuesta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GroupByWarehouse
// ──────────────────────────────────────────────────────────────────────────────

// El agrupamiento por bodega es determinista (orden lexicográfico de bodega)
// y cada línea hereda el costo unitario pactado en la orden.
func TestGroupByWarehouse_OrdenDeterministaYCostoHeredado(t *testing.T) {
	dist := allocation.Distribution{
		"prod-widget": {
			{WarehouseID: "wh-norte", Quantity: qty(4)},
			{WarehouseID: "wh-central", Quantity: qty(6)},
		},
		"prod-gadget": {
			{WarehouseID: "wh-norte", Quantity: qty(5)},
		},
	}
	grouped := allocation.GroupByWarehouse(dist, orderItems())

	require.Len(t, grouped, 2)
	assert.Equal(t, "wh-central", grouped[0].WarehouseID, "las bodegas deben venir ordenadas")
	assert.Equal(t, "wh-norte", grouped[1].WarehouseID)

	for _, wr := range grouped {
		for _, ln := range wr.Lines {
			switch ln.ProductID {
			case "prod-widget":
				assert.True(t, ln.UnitCost.Equal(decimal.NewFromInt(4)),
					"la línea debe heredar el precio de la orden")
			case "prod-gadget":
				assert.True(t, ln.UnitCost.Equal(decimal.NewFromInt(7)))
			}
		}
	}
}
