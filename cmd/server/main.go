// Package main - Entry point for the window-quote API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"window-quote/internal/config"
	"window-quote/internal/logging"

	"window-quote/adapters/catalogfile"
	"window-quote/api"
	"window-quote/core/engine"
	"window-quote/core/tariff"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	tariffFile := flag.String("tariff", "", "Tariff HCL file (overrides config)")
	catalogFile := flag.String("catalog", "", "Catalog YAML file (overrides config)")
	flag.Parse()

	if err := run(*cfgFile, *addr, *tariffFile, *catalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "window-quote-server: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, addr, tariffFile, catalogFile string) error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if tariffFile != "" {
		cfg.Data.TariffPath = tariffFile
	}
	if catalogFile != "" {
		cfg.Data.CatalogPath = catalogFile
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	t := tariff.Default()
	if cfg.Data.TariffPath != "" {
		var err error
		if t, err = tariff.Load(cfg.Data.TariffPath); err != nil {
			return fmt.Errorf("tariff %s: %w", cfg.Data.TariffPath, err)
		}
	}
	cat, err := catalogfile.Load(cfg.Data.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", cfg.Data.CatalogPath, err)
	}
	dispatcher, err := engine.New(cat, t)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("window-quote server starting",
		zap.String("version", version),
		zap.String("catalog", cfg.Data.CatalogPath),
		zap.Int("categories", len(dispatcher.Categories())),
	)
	return api.NewServer(version, dispatcher, cfg.Server.BatchConcurrency).Run(ctx, cfg.Server.Addr)
}
