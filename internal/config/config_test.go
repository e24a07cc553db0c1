package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "data": {"catalog_path": "/srv/catalog.yaml"},
  "server": {"batch_concurrency": 2}
}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Data.CatalogPath)
	assert.Equal(t, "", cfg.Data.TariffPath)
	assert.Equal(t, 2, cfg.Server.BatchConcurrency)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Output.ShowNote = false

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.Output.ShowNote)
}
