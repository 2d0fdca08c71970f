package costing_test

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JahongirOfficial/climart-sub004/internal/application/costing"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReceiptRepo struct {
	receipts    map[string]*entity.Receipt
	lockedReads int
}

func newFakeReceiptRepo(receipts ...*entity.Receipt) *fakeReceiptRepo {
	m := make(map[string]*entity.Receipt, len(receipts))
	for _, r := range receipts {
		m[r.ID] = r
	}
	return &fakeReceiptRepo{receipts: m}
}

func (f *fakeReceiptRepo) Create(r *entity.Receipt) error {
	f.receipts[r.ID] = r
	return nil
}

func (f *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	return f.receipts[id], nil
}

func (f *fakeReceiptRepo) GetByIDForUpdate(id string) (*entity.Receipt, error) {
	f.lockedReads++
	return f.receipts[id], nil
}

func (f *fakeReceiptRepo) GetByOrderID(orderID string) (*entity.Receipt, error) {
	for _, r := range f.receipts {
		if r.OrderID == orderID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) MarkCostApplied(id string, at time.Time) error {
	r, ok := f.receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.CostAppliedAt != nil {
		return domain.ErrConflict
	}
	r.CostAppliedAt = &at
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.CustomerInvoice
}

func newFakeInvoiceRepo(invoices ...*entity.CustomerInvoice) *fakeInvoiceRepo {
	m := make(map[string]*entity.CustomerInvoice, len(invoices))
	for _, inv := range invoices {
		m[inv.ID] = inv
	}
	return &fakeInvoiceRepo{invoices: m}
}

func (f *fakeInvoiceRepo) Create(inv *entity.CustomerInvoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.CustomerInvoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) List(repository.InvoiceFilter) ([]*entity.CustomerInvoice, error) {
	out := make([]*entity.CustomerInvoice, 0, len(f.invoices))
	for _, inv := range f.invoices {
		out = append(out, inv)
	}
	return out, nil
}

// ListPendingItemsByProduct replica el orden del repositorio real: fecha de
// factura ascendente, la venta más antigua primero.
func (f *fakeInvoiceRepo) ListPendingItemsByProduct(productID string) ([]*entity.CustomerInvoiceItem, error) {
	type dated struct {
		item *entity.CustomerInvoiceItem
		date time.Time
	}
	var found []dated
	for _, inv := range f.invoices {
		for i := range inv.Items {
			it := &inv.Items[i]
			if it.ProductID == productID && it.CostPricePending {
				found = append(found, dated{item: it, date: inv.Date})
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].date.Before(found[j].date) })
	out := make([]*entity.CustomerInvoiceItem, len(found))
	for i, d := range found {
		out[i] = d.item
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ResolveItem(itemID string, cost decimal.Decimal, receiptID string, at time.Time) error {
	for _, inv := range f.invoices {
		for i := range inv.Items {
			it := &inv.Items[i]
			if it.ID != itemID {
				continue
			}
			if !it.CostPricePending {
				return domain.ErrConflict
			}
			it.CostPrice = cost
			it.CostPricePending = false
			it.ResolvedAt = &at
			it.ResolvedReceiptID = receiptID
			inv.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvoiceRepo) CountPendingItems(invoiceID string) (int, error) {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return inv.PendingCount(), nil
}

func (f *fakeInvoiceRepo) MarkCostCorrected(invoiceID string, at time.Time) error {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.CostCorrectedAt = &at
	return nil
}

func (f *fakeInvoiceRepo) ListPending(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	var out []*entity.CustomerInvoice
	for _, inv := range f.invoices {
		if inv.HasPending() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListCorrected(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	var out []*entity.CustomerInvoice
	for _, inv := range f.invoices {
		if inv.CostCorrectedAt != nil && !inv.HasPending() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListByDateRange(from, to *time.Time) ([]*entity.CustomerInvoice, error) {
	return f.List(repository.InvoiceFilter{})
}

type fakeStockRepo struct {
	locked []string
}

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) Adjust(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return delta, nil
}

func (f *fakeStockRepo) AdjustReserved(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return delta, nil
}

func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) LockProduct(productID string) error {
	f.locked = append(f.locked, productID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de escenario
// ──────────────────────────────────────────────────────────────────────────────

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 10, 0, 0, 0, time.UTC)
}

// pendingInvoice crea una factura con una sola línea pendiente del producto.
func pendingInvoice(id string, date time.Time, productID string, quantity int64) *entity.CustomerInvoice {
	return &entity.CustomerInvoice{
		ID:     id,
		Number: "FV-" + id,
		Date:   date,
		Items: []entity.CustomerInvoiceItem{
			{
				ID:               id + "-it1",
				InvoiceID:        id,
				ProductID:        productID,
				Quantity:         d(quantity),
				SellingPrice:     d(10),
				CostPrice:        d(4), // placeholder
				CostPricePending: true,
			},
		},
	}
}

func widgetReceipt(id string, quantity int64, unitCost int64) *entity.Receipt {
	return &entity.Receipt{
		ID:         id,
		OrderID:    "order-" + id,
		ReceivedAt: day(20),
		Items: []entity.ReceiptItem{
			{ID: id + "-it1", ReceiptID: id, ProductID: "prod-widget", WarehouseID: "wh-central", Quantity: d(quantity), UnitCost: d(unitCost)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveInTx
// ──────────────────────────────────────────────────────────────────────────────

// La recepción cubre la línea pendiente completa: la línea toma el costo de la
// recepción (no el costo vigente del producto) y la factura pasa a corregida.
func TestResolveInTx_LineaCubiertaTomaCostoDeLaRecepcion(t *testing.T) {
	inv := pendingInvoice("inv-1", day(1), "prod-widget", 5)
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 10, 6))
	invoices := newFakeInvoiceRepo(inv)
	stock := &fakeStockRepo{}
	uc := costing.NewCostResolverUseCase(nil)

	now := day(20)
	result, err := uc.ResolveInTx(receipts, invoices, stock, "rcpt-1", now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ResolvedLines)
	assert.False(t, result.AlreadyDone)

	it := &inv.Items[0]
	assert.False(t, it.CostPricePending, "la línea debe quedar resuelta")
	assert.True(t, it.CostPrice.Equal(d(6)),
		"el costo debe salir de la recepción consumida, no del placeholder")
	assert.Equal(t, "rcpt-1", it.ResolvedReceiptID)
	require.NotNil(t, it.ResolvedAt)
	require.NotNil(t, inv.CostCorrectedAt,
		"sin líneas pendientes restantes la factura se marca corregida")
	assert.Equal(t, []string{"prod-widget"}, stock.locked,
		"el producto debe bloquearse antes de resolver")
}

// FIFO: con dos ventas pendientes, la más antigua se resuelve primero y
// consume cantidad de la recepción antes que la más reciente.
func TestResolveInTx_FIFOLaVentaMasAntiguaPrimero(t *testing.T) {
	older := pendingInvoice("inv-old", day(1), "prod-widget", 6)
	newer := pendingInvoice("inv-new", day(5), "prod-widget", 6)
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 8, 6))
	invoices := newFakeInvoiceRepo(older, newer)
	uc := costing.NewCostResolverUseCase(nil)

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ResolvedLines,
		"8 unidades cubren la venta antigua (6) pero no la siguiente (6)")
	assert.False(t, older.Items[0].CostPricePending, "la venta más antigua se resuelve")
	assert.True(t, newer.Items[0].CostPricePending, "la más reciente sigue pendiente")
}

// FIFO estricto: si la recepción no cubre la línea más antigua, no se salta a
// líneas más recientes aunque sí alcanzaran.
func TestResolveInTx_SinCoberturaTotalNoSaltaLineas(t *testing.T) {
	older := pendingInvoice("inv-old", day(1), "prod-widget", 10)
	newer := pendingInvoice("inv-new", day(5), "prod-widget", 2)
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 4, 6))
	invoices := newFakeInvoiceRepo(older, newer)
	uc := costing.NewCostResolverUseCase(nil)

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)

	assert.Equal(t, 0, result.ResolvedLines,
		"la recepción (4) no cubre la línea más antigua (10): nada se resuelve")
	assert.True(t, older.Items[0].CostPricePending)
	assert.True(t, newer.Items[0].CostPricePending,
		"la línea reciente no debe resolverse fuera de orden")
}

// No hay resolución parcial: una línea se resuelve completa o no se resuelve.
func TestResolveInTx_SinResolucionParcialPorLinea(t *testing.T) {
	inv := pendingInvoice("inv-1", day(1), "prod-widget", 7)
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 5, 6))
	invoices := newFakeInvoiceRepo(inv)
	uc := costing.NewCostResolverUseCase(nil)

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)

	assert.Equal(t, 0, result.ResolvedLines)
	assert.True(t, inv.Items[0].CostPricePending,
		"5 unidades no cubren una línea de 7: sigue pendiente entera")
}

// Idempotencia por ID de recepción: la segunda pasada con el mismo receipt es
// un no-op y no vuelve a consumir cantidad ni a reescribir costos.
func TestResolveInTx_ReentregaEsNoOp(t *testing.T) {
	first := pendingInvoice("inv-1", day(1), "prod-widget", 5)
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 10, 6))
	invoices := newFakeInvoiceRepo(first)
	uc := costing.NewCostResolverUseCase(nil)

	_, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)

	// Nueva venta pendiente después de la primera pasada. Si la reentrega
	// volviera a consumir la recepción, esta línea se resolvería mal.
	second := pendingInvoice("inv-2", day(21), "prod-widget", 3)
	require.NoError(t, invoices.Create(second))

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(22))
	require.NoError(t, err)

	assert.True(t, result.AlreadyDone, "la reentrega debe reportarse como ya aplicada")
	assert.Equal(t, 0, result.ResolvedLines)
	assert.True(t, second.Items[0].CostPricePending,
		"la reentrega no debe resolver líneas nuevas")
	assert.Equal(t, 2, receipts.lockedReads,
		"ambas pasadas comprueban la marca bajo bloqueo de fila de la recepción")
}

// La factura solo pasa a corregida cuando TODAS sus líneas quedan resueltas.
func TestResolveInTx_FacturaConVariasLineasCorrigeSoloAlFinal(t *testing.T) {
	inv := &entity.CustomerInvoice{
		ID:     "inv-multi",
		Number: "FV-multi",
		Date:   day(1),
		Items: []entity.CustomerInvoiceItem{
			{ID: "it-widget", InvoiceID: "inv-multi", ProductID: "prod-widget", Quantity: d(5), CostPrice: d(4), CostPricePending: true},
			{ID: "it-gadget", InvoiceID: "inv-multi", ProductID: "prod-gadget", Quantity: d(2), CostPrice: d(9), CostPricePending: true},
		},
	}
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 10, 6))
	invoices := newFakeInvoiceRepo(inv)
	uc := costing.NewCostResolverUseCase(nil)

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ResolvedLines)
	assert.Nil(t, inv.CostCorrectedAt,
		"queda una línea pendiente de otro producto: la factura no está corregida")

	// Llega la recepción del otro producto.
	gadgetReceipt := &entity.Receipt{
		ID:         "rcpt-2",
		OrderID:    "order-2",
		ReceivedAt: day(25),
		Items: []entity.ReceiptItem{
			{ID: "rcpt-2-it1", ReceiptID: "rcpt-2", ProductID: "prod-gadget", WarehouseID: "wh-central", Quantity: d(2), UnitCost: d(11)},
		},
	}
	require.NoError(t, receipts.Create(gadgetReceipt))

	result, err = uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-2", day(25))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ResolvedLines)
	require.NotNil(t, inv.CostCorrectedAt,
		"resuelta la última línea, la factura pasa a corregida")
	assert.True(t, inv.Items[1].CostPrice.Equal(d(11)))
}

// Recepción de un producto sin ventas adelantadas: resultado normal, cero resueltas.
func TestResolveInTx_SinPendientesNoEsError(t *testing.T) {
	receipts := newFakeReceiptRepo(widgetReceipt("rcpt-1", 10, 6))
	invoices := newFakeInvoiceRepo()
	uc := costing.NewCostResolverUseCase(nil)

	result, err := uc.ResolveInTx(receipts, invoices, &fakeStockRepo{}, "rcpt-1", day(20))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ResolvedLines)
	assert.False(t, result.AlreadyDone)
}

func TestResolveInTx_RecepcionInexistente(t *testing.T) {
	uc := costing.NewCostResolverUseCase(nil)
	_, err := uc.ResolveInTx(newFakeReceiptRepo(), newFakeInvoiceRepo(), &fakeStockRepo{}, "rcpt-nope", day(20))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
