package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nmercado/docledger/internal/repository"
)

// Pinger checks storage liveness; the pgx pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Upload    *UploadHandler
	Products  *ProductHandler
	Customers *CustomerHandler
	Invoices  *InvoiceHandler
	Export    *ExportHandler
	DB        Pinger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), repository.DefaultHealthCheckTimeout)
		defer cancel()
		if err := deps.DB.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	api := app.Group("/api")

	api.Post("/upload", deps.Upload.Upload)

	products := api.Group("/products")
	products.Get("/", deps.Products.List)
	products.Post("/", deps.Products.Create)
	products.Get("/:id", deps.Products.Get)
	products.Patch("/:id", deps.Products.Update)
	products.Delete("/:id", deps.Products.Delete)

	customers := api.Group("/customers")
	customers.Get("/", deps.Customers.List)
	customers.Post("/", deps.Customers.Create)
	customers.Get("/:id", deps.Customers.Get)
	customers.Patch("/:id", deps.Customers.Update)
	customers.Delete("/:id", deps.Customers.Delete)

	invoices := api.Group("/invoices")
	invoices.Get("/", deps.Invoices.List)
	invoices.Post("/", deps.Invoices.Create)
	invoices.Get("/:id", deps.Invoices.Get)
	invoices.Patch("/:id", deps.Invoices.Update)
	invoices.Delete("/:id", deps.Invoices.Delete)

	api.Get("/export/records.xlsx", deps.Export.Records)
}
