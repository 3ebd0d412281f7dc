// Command extractcli runs the ingestion pipeline once against a local file
// and prints the outcome. Useful for trying prompts and models without the
// HTTP server in front.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/extract/gemini"
	"github.com/nmercado/docledger/internal/pipeline"
	"github.com/nmercado/docledger/internal/render"
	"github.com/nmercado/docledger/internal/repository"
	"github.com/nmercado/docledger/pkg/logger"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the document to ingest")
		renderFlag = flag.Bool("render", false, "print spreadsheets to PDF instead of a JSON text dump")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: extractcli -file <path> [-render]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "configuration:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection")
	}
	defer pool.Close()

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Str("file", *file).Err(err).Msg("read input")
	}

	productRepo := repository.NewProductRepository(pool, log)
	customerRepo := repository.NewCustomerRepository(pool, log)
	invoiceRepo := repository.NewInvoiceRepository(pool, log)

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
		RenderSpreadsheets: *renderFlag || cfg.Upload.RenderSpreadsheets,
	}, log)

	res := pipe.Run(ctx, pipeline.Upload{
		Filename: filepath.Base(*file),
		Content:  content,
	})
	if !res.Success {
		fmt.Fprintln(os.Stderr, "error:", res.Err)
		os.Exit(1)
	}
	fmt.Println(res.Message)
}
