// Package catalogfile reads a typed YAML catalog document.
// Loading and cleaning raw supplier spreadsheets happens upstream; this
// adapter only decodes the already cleaned tables and hands them to
// catalog.New for validation.
package catalogfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	apperrors "window-quote/internal/errors"
	"window-quote/internal/logging"

	"window-quote/core/catalog"
)

// Load reads and validates the catalog file at path
func Load(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Parsing("failed to open catalog file", err)
	}
	defer f.Close()

	cat, err := Decode(f)
	if err != nil {
		return nil, err
	}

	stats := cat.Stats()
	logging.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("rows", stats.Total),
		zap.Int("glass_params", stats.GlassParams),
	)
	return cat, nil
}

// Parse decodes a catalog document held in memory
func Parse(data []byte) (*catalog.Catalog, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML catalog document from r. Unknown fields are
// rejected so a misspelled column fails loudly instead of reading as zero.
func Decode(r io.Reader) (*catalog.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tables catalog.Tables
	if err := dec.Decode(&tables); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.TypeParsing, "catalog document is empty")
		}
		return nil, apperrors.Parsing("failed to decode catalog", err)
	}

	cat, err := catalog.New(tables)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}
