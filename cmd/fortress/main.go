package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fortress/internal/buildinfo"
	"github.com/dmitrijs2005/fortress/internal/cli"
	"github.com/dmitrijs2005/fortress/internal/config"
	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/services"
	"github.com/dmitrijs2005/fortress/internal/session"
	"github.com/dmitrijs2005/fortress/internal/storage"
	"github.com/dmitrijs2005/fortress/internal/vault"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := storage.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("error initializing storage: %v", err)
	}
	defer store.Close()

	logger.Debug(ctx, "storage ready", "driver", cfg.StorageDriver)

	auth := services.NewAuthService(credentials.NewStore(store, cfg.KDFIterations), session.NewManager(store), logger)
	files := services.NewFileService(vault.New(store, cfg.QuotaBytes), cfg.MaxFileSize, logger)

	app := cli.NewApp(cfg, auth, files, logger, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "shell stopped", "error", err)
	}
}
