package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/billing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/catalog"
	"github.com/JahongirOfficial/climart-sub004/internal/application/inventory"
	"github.com/JahongirOfficial/climart-sub004/internal/application/receiving"
	"github.com/JahongirOfficial/climart-sub004/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *catalog.ProductUseCase
	WarehouseUC    *catalog.WarehouseUseCase
	PartnerUC      *catalog.PartnerUseCase
	OrderUC        *catalog.PurchaseOrderUseCase
	ReceiveOrder   *receiving.ReceiveOrderUseCase
	ReceiptQueries *receiving.ReceiptQueryUseCase
	RecordSale     *billing.RecordSaleUseCase
	InvoiceQueries *billing.InvoiceQueryUseCase
	Reports        *reporting.CorrectionReportUseCase
	StockUC        *inventory.StockUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)

	// Partners (protegido)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.OrderUC, deps.ReceiveOrder)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	// Receipts (protegido)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiveOrder, deps.ReceiptQueries)
	receipts.Post("/from-order/:orderId", receiptHandler.ReceiveFromOrder)
	receipts.Get("/by-order/:orderId", receiptHandler.GetByOrder)
	receipts.Get("/:id", receiptHandler.GetByID)

	// Customer invoices (protegido). Las rutas fijas van antes de /:id.
	invoices := protected.Group("/customer-invoices")
	invoiceHandler := NewInvoiceHandler(deps.RecordSale, deps.InvoiceQueries)
	reportHandler := NewReportHandler(deps.Reports)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/pending", reportHandler.ListPending)
	invoices.Get("/corrected", reportHandler.ListCorrected)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reports.Get("/profit", reportHandler.Profit)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	products.Get("/:productId/stock", inventoryHandler.ProductStock)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Post("/reservations", inventoryHandler.Reserve)
	invGroup.Post("/reservations/release", inventoryHandler.Release)
}
