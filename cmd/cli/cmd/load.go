package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"window-quote/internal/config"
	"window-quote/internal/logging"

	"window-quote/adapters/catalogfile"
	"window-quote/core/catalog"
	"window-quote/core/engine"
	"window-quote/core/output"
	"window-quote/core/tariff"
)

// resolvePaths applies flag overrides to the configured data paths
func resolvePaths() (tariffFile, catalogFile string) {
	cfg := config.Get()
	tariffFile, catalogFile = cfg.Data.TariffPath, cfg.Data.CatalogPath
	if tariffPath != "" {
		tariffFile = tariffPath
	}
	if catalogPath != "" {
		catalogFile = catalogPath
	}
	return tariffFile, catalogFile
}

// loadTariff reads the tariff file, or the built-in tariff when none is
// configured
func loadTariff(path string) (*tariff.Tariff, error) {
	if path == "" {
		logging.Debug("no tariff file configured, using built-in tariff")
		return tariff.Default(), nil
	}
	t, err := tariff.Load(path)
	if err != nil {
		return nil, fmt.Errorf("tariff %s: %w", path, err)
	}
	return t, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("no catalog configured; pass --catalog or set data.catalog_path")
	}
	cat, err := catalogfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// loadDispatcher builds the dispatcher from the configured tariff and catalog
func loadDispatcher() (*engine.Dispatcher, error) {
	tariffFile, catalogFile := resolvePaths()

	t, err := loadTariff(tariffFile)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return nil, err
	}

	d, err := engine.New(cat, t)
	if err != nil {
		return nil, err
	}
	logging.Debug("dispatcher ready",
		zap.String("tariff", tariffFile),
		zap.String("catalog", catalogFile),
	)
	return d, nil
}

// formatter resolves the --format flag, falling back to the configured
// default
func formatter(name string) (output.Formatter, error) {
	if name == "" {
		name = config.Get().Output.DefaultFormat
	}
	registry := output.NewRegistry()
	f, ok := registry.Get(output.Format(name))
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, registry.Formats())
	}
	return f, nil
}
