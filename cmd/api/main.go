package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/JahongirOfficial/climart-sub004/internal/application/billing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/catalog"
	"github.com/JahongirOfficial/climart-sub004/internal/application/costing"
	"github.com/JahongirOfficial/climart-sub004/internal/application/inventory"
	"github.com/JahongirOfficial/climart-sub004/internal/application/receiving"
	"github.com/JahongirOfficial/climart-sub004/internal/application/reporting"
	infraaudit "github.com/JahongirOfficial/climart-sub004/internal/infrastructure/audit"
	"github.com/JahongirOfficial/climart-sub004/internal/infrastructure/postgres"
	httpRouter "github.com/JahongirOfficial/climart-sub004/internal/interfaces/http"
	"github.com/JahongirOfficial/climart-sub004/pkg/config"
	"github.com/JahongirOfficial/climart-sub004/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	invoiceRepo := postgres.NewCustomerInvoiceRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	auditRecorder := infraaudit.NewRecorder(pool)

	resolver := costing.NewCostResolverUseCase(txRunner)
	receiveOrderUC := receiving.NewReceiveOrderUseCase(txRunner, orderRepo, warehouseRepo, resolver, auditRecorder)
	receiptQueries := receiving.NewReceiptQueryUseCase(receiptRepo)
	recordSaleUC := billing.NewRecordSaleUseCase(txRunner, partnerRepo, productRepo, auditRecorder)
	invoiceQueries := billing.NewInvoiceQueryUseCase(invoiceRepo)
	reportsUC := reporting.NewCorrectionReportUseCase(invoiceRepo)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo)

	productUC := catalog.NewProductUseCase(productRepo)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo)
	partnerUC := catalog.NewPartnerUseCase(partnerRepo)
	orderUC := catalog.NewPurchaseOrderUseCase(orderRepo, partnerRepo, productRepo, auditRecorder)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Climart Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		WarehouseUC:    warehouseUC,
		PartnerUC:      partnerUC,
		OrderUC:        orderUC,
		ReceiveOrder:   receiveOrderUC,
		ReceiptQueries: receiptQueries,
		RecordSale:     recordSaleUC,
		InvoiceQueries: invoiceQueries,
		Reports:        reportsUC,
		StockUC:        stockUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
