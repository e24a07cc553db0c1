package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-quote/core/types"
)

const (
	sampleCatalog = "../../../configs/catalog.yaml"
	sampleTariff  = "../../../configs/tariff.hcl"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuildQuery(t *testing.T) {
	quoteAttrs = []string{"city=Київ", " width_mm = 300 "}
	quoteWidth, quoteHeight, quoteLength = "", "", "1,5"
	quoteCaps = 2
	t.Cleanup(func() { quoteAttrs, quoteLength, quoteCaps = nil, "", 0 })

	q, err := buildQuery(types.CategoryWindowsill)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"city": "Київ", "width_mm": "300"}, q.Attributes)
	assert.True(t, decimal.RequireFromString("1.5").Equal(q.Length))
	assert.True(t, q.Width.IsZero())
	assert.Equal(t, 2, q.Caps)
}

func TestBuildQueryRejectsMalformed(t *testing.T) {
	quoteAttrs = []string{"city"}
	t.Cleanup(func() { quoteAttrs = nil })
	_, err := buildQuery(types.CategoryDrip)
	assert.ErrorContains(t, err, "want name=value")

	quoteAttrs = nil
	quoteWidth = "wide"
	t.Cleanup(func() { quoteWidth = "" })
	_, err = buildQuery(types.CategoryOSB)
	assert.ErrorContains(t, err, "--width")
}

func TestReadBatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quotes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`quotes:
  - category: osb
    width: 2.0
    height: 1.5
  - category: drip
    attributes: {width_mm: "150"}
    length: 3
`), 0644))

	queries, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, types.CategoryOSB, queries[0].Category)
	assert.True(t, decimal.RequireFromString("1.5").Equal(queries[0].Height))
	assert.Equal(t, "150", queries[1].Attributes["width_mm"])

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("quotes: []\n"), 0644))
	_, err = readBatchFile(empty)
	assert.ErrorContains(t, err, "no quotes")
}

func TestFormatterFallsBackToConfig(t *testing.T) {
	f, err := formatter("")
	require.NoError(t, err)
	assert.Equal(t, "cli", string(f.Format()))

	_, err = formatter("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--tariff", sampleTariff, "--catalog", sampleCatalog)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ tariff")
	assert.Contains(t, out, "✓ catalog")
	assert.Contains(t, out, "glass_params")
}

func TestQuoteCommandJSON(t *testing.T) {
	out, err := execute(t, "quote", "osb", "--width", "2", "--height", "1.5", "--format", "json",
		"--tariff", sampleTariff, "--catalog", sampleCatalog)
	require.NoError(t, err)
	assert.Contains(t, out, `"total": "3290"`)
}
