// Command dbping probes the configured database and exits non-zero when the
// connection or ping fails. Intended for container health checks and CI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/repository"
	"github.com/nmercado/docledger/pkg/logger"
)

func main() {
	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is required")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	ctx := context.Background()
	pool, err := repository.Open(ctx, cfg.Database, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, repository.DefaultHealthCheckTimeout); err != nil {
		fmt.Fprintln(os.Stderr, "ping:", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}
