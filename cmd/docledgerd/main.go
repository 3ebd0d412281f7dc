package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/export"
	"github.com/nmercado/docledger/internal/extract/gemini"
	"github.com/nmercado/docledger/internal/pipeline"
	"github.com/nmercado/docledger/internal/records"
	"github.com/nmercado/docledger/internal/render"
	"github.com/nmercado/docledger/internal/repository"
	"github.com/nmercado/docledger/internal/server"
	"github.com/nmercado/docledger/pkg/logger"
)

func main() {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr).
		Msg("starting docledger")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection")
	}
	defer pool.Close()
	if err := repository.HealthCheck(ctx, pool, repository.DefaultHealthCheckTimeout); err != nil {
		log.Fatal().Err(err).Msg("postgres ping")
	}

	productRepo := repository.NewProductRepository(pool, log)
	customerRepo := repository.NewCustomerRepository(pool, log)
	invoiceRepo := repository.NewInvoiceRepository(pool, log)

	productSvc := records.NewProductService(productRepo, log)
	customerSvc := records.NewCustomerService(customerRepo, log)
	invoiceSvc := records.NewInvoiceService(invoiceRepo, log)
	exportSvc := export.NewService(productRepo, customerRepo, invoiceRepo, log)

	extractor := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Timeout:         cfg.Gemini.Timeout,
	}, log)

	renderer := render.NewRenderer(cfg.Renderer.ChromeBin, render.NewExecRunner(), log)
	pipe := pipeline.New(extractor, productRepo, customerRepo, invoiceRepo, renderer, pipeline.Config{
		UploadDir:          cfg.Upload.Dir,
		RenderSpreadsheets: cfg.Upload.RenderSpreadsheets,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      "docledger",
		BodyLimit:    32 * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	server.Router(app, server.RouterDeps{
		Upload:    server.NewUploadHandler(pipe, log),
		Products:  server.NewProductHandler(productSvc, log),
		Customers: server.NewCustomerHandler(customerSvc, log),
		Invoices:  server.NewInvoiceHandler(invoiceSvc, log),
		Export:    server.NewExportHandler(exportSvc, log),
		DB:        pool,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr); err != nil {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("stopped")
}
