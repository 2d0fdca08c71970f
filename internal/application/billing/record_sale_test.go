package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JahongirOfficial/climart-sub004/internal/application/billing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/repository"
	infraaudit "github.com/JahongirOfficial/climart-sub004/internal/infrastructure/audit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, warehouseID string }

type memStockRepo struct {
	levels map[stockKey]decimal.Decimal
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{levels: make(map[stockKey]decimal.Decimal)}
}

func (m *memStockRepo) set(productID, warehouseID string, qty decimal.Decimal) {
	m.levels[stockKey{productID, warehouseID}] = qty
}

func (m *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    m.levels[stockKey{productID, warehouseID}],
	}, nil
}

func (m *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return m.Get(productID, warehouseID)
}

func (m *memStockRepo) Adjust(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	k := stockKey{productID, warehouseID}
	m.levels[k] = m.levels[k].Add(delta)
	return m.levels[k], nil
}

func (m *memStockRepo) AdjustReserved(productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return delta, nil
}

func (m *memStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, q := range m.levels {
		if k.productID == productID {
			out = append(out, &entity.Stock{ProductID: k.productID, WarehouseID: k.warehouseID, Quantity: q})
		}
	}
	return out, nil
}

func (m *memStockRepo) LockProduct(productID string) error { return nil }

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (m *memMovementRepo) Create(mov *entity.StockMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}

func (m *memMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return m.movements, nil
}

func (m *memMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movements {
		if mov.Reference == reference {
			out = append(out, mov)
		}
	}
	return out, nil
}

type memInvoiceRepo struct {
	created []*entity.CustomerInvoice
}

func (m *memInvoiceRepo) Create(inv *entity.CustomerInvoice) error {
	m.created = append(m.created, inv)
	return nil
}

func (m *memInvoiceRepo) GetByID(id string) (*entity.CustomerInvoice, error) {
	for _, inv := range m.created {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoiceRepo) List(repository.InvoiceFilter) ([]*entity.CustomerInvoice, error) {
	return m.created, nil
}

func (m *memInvoiceRepo) ListPendingItemsByProduct(string) ([]*entity.CustomerInvoiceItem, error) {
	return nil, nil
}

func (m *memInvoiceRepo) ResolveItem(string, decimal.Decimal, string, time.Time) error { return nil }
func (m *memInvoiceRepo) CountPendingItems(string) (int, error)                        { return 0, nil }
func (m *memInvoiceRepo) MarkCostCorrected(string, time.Time) error                    { return nil }
func (m *memInvoiceRepo) ListPending(*time.Time, *time.Time) ([]*entity.CustomerInvoice, error) {
	return nil, nil
}
func (m *memInvoiceRepo) ListCorrected(*time.Time, *time.Time) ([]*entity.CustomerInvoice, error) {
	return nil, nil
}
func (m *memInvoiceRepo) ListByDateRange(*time.Time, *time.Time) ([]*entity.CustomerInvoice, error) {
	return m.created, nil
}

// saleTxRunner ejecuta el callback directamente contra los fakes (sin tx real).
type saleTxRunner struct {
	stock    *memStockRepo
	movs     *memMovementRepo
	invoices *memInvoiceRepo
}

func (r *saleTxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.CustomerInvoiceRepository,
) error) error {
	return fn(r.stock, r.movs, r.invoices)
}

type memPartnerRepo struct {
	partners map[string]*entity.Partner
}

func (m *memPartnerRepo) Create(p *entity.Partner) error {
	m.partners[p.ID] = p
	return nil
}
func (m *memPartnerRepo) GetByID(id string) (*entity.Partner, error) { return m.partners[id], nil }
func (m *memPartnerRepo) List(string, int, int) ([]*entity.Partner, error) {
	return nil, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (m *memProductRepo) Create(p *entity.Product) error {
	m.products[p.ID] = p
	return nil
}
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) { return m.products[id], nil }
func (m *memProductRepo) List(int, int) ([]*entity.Product, error)   { return nil, nil }
func (m *memProductRepo) Update(*entity.Product) error               { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type saleFixture struct {
	uc       *billing.RecordSaleUseCase
	stock    *memStockRepo
	movs     *memMovementRepo
	invoices *memInvoiceRepo
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	stock := newMemStockRepo()
	movs := &memMovementRepo{}
	invoices := &memInvoiceRepo{}
	partners := &memPartnerRepo{partners: map[string]*entity.Partner{
		"cli-1": {ID: "cli-1", Name: "Cliente Uno", Type: entity.PartnerTypeCustomer},
	}}
	products := &memProductRepo{products: map[string]*entity.Product{
		"prod-widget": {ID: "prod-widget", SKU: "WID", Name: "Widget", CostPrice: d(4), SellingPrice: d(10)},
	}}
	runner := &saleTxRunner{stock: stock, movs: movs, invoices: invoices}
	uc := billing.NewRecordSaleUseCase(runner, partners, products, infraaudit.Noop{})
	return &saleFixture{uc: uc, stock: stock, movs: movs, invoices: invoices}
}

func saleRequest(quantity int64) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		PartnerID: "cli-1",
		Number:    "FV-001",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-widget", WarehouseID: "wh-central", Quantity: d(quantity)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordSale
// ──────────────────────────────────────────────────────────────────────────────

// Con stock suficiente la línea queda con costo confirmado (placeholder pero
// no pendiente) y el stock baja sin quedar negativo.
func TestRecordSale_ConStockSuficiente(t *testing.T) {
	f := newSaleFixture(t)
	f.stock.set("prod-widget", "wh-central", d(10))

	resp, err := f.uc.RecordSale(context.Background(), "user-1", saleRequest(4))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].CostPricePending, "con stock suficiente no hay costo pendiente")
	assert.True(t, resp.Items[0].SellingPrice.Equal(d(10)),
		"precio cero en la petición usa el precio vigente del producto")
	assert.True(t, resp.Total.Equal(d(40)))

	remaining := f.stock.levels[stockKey{"prod-widget", "wh-central"}]
	assert.True(t, remaining.Equal(d(6)), "10 - 4 = 6")
}

// Decisión de negocio central: la sobreventa NUNCA bloquea. El stock queda en
// negativo y la línea se marca con costo pendiente.
func TestRecordSale_SobreventaNoBloquea(t *testing.T) {
	f := newSaleFixture(t)
	f.stock.set("prod-widget", "wh-central", d(2))

	resp, err := f.uc.RecordSale(context.Background(), "user-1", saleRequest(5))
	require.NoError(t, err, "la venta sobre stock insuficiente debe aceptarse")

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].CostPricePending,
		"sin stock suficiente la línea queda con costo pendiente")
	assert.True(t, resp.Items[0].CostPrice.Equal(d(4)),
		"el costo placeholder es el costo vigente del producto")
	assert.Equal(t, 1, resp.PendingCount)

	remaining := f.stock.levels[stockKey{"prod-widget", "wh-central"}]
	assert.True(t, remaining.Equal(d(-3)), "2 - 5 = -3: el negativo es un estado válido")
}

// Venta sin stock en absoluto (fila inexistente): misma regla, queda pendiente.
func TestRecordSale_SinFilaDeStock(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.uc.RecordSale(context.Background(), "user-1", saleRequest(3))
	require.NoError(t, err)
	assert.True(t, resp.Items[0].CostPricePending)

	remaining := f.stock.levels[stockKey{"prod-widget", "wh-central"}]
	assert.True(t, remaining.Equal(d(-3)))
}

// Cada línea registra su movimiento SALE con la factura como referencia.
func TestRecordSale_RegistraMovimiento(t *testing.T) {
	f := newSaleFixture(t)
	f.stock.set("prod-widget", "wh-central", d(10))

	resp, err := f.uc.RecordSale(context.Background(), "user-1", saleRequest(4))
	require.NoError(t, err)

	require.Len(t, f.movs.movements, 1)
	mov := f.movs.movements[0]
	assert.Equal(t, entity.MovementTypeSALE, mov.Type)
	assert.True(t, mov.Quantity.Equal(d(-4)), "el movimiento de venta es negativo")
	assert.Equal(t, resp.ID, mov.Reference)
}

func TestRecordSale_ClienteInexistente(t *testing.T) {
	f := newSaleFixture(t)
	req := saleRequest(1)
	req.PartnerID = "cli-nope"

	_, err := f.uc.RecordSale(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_CantidadNoPositiva(t *testing.T) {
	f := newSaleFixture(t)
	req := saleRequest(0)

	_, err := f.uc.RecordSale(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_SinLineas(t *testing.T) {
	f := newSaleFixture(t)
	_, err := f.uc.RecordSale(context.Background(), "user-1", dto.RecordSaleRequest{PartnerID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
