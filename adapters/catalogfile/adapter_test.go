package catalogfile

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "window-quote/internal/errors"
	"window-quote/internal/logging"

	"window-quote/core/types"
)

func init() {
	logging.UseNop()
}

func TestLoadSampleCatalog(t *testing.T) {
	cat, err := Load(filepath.Join("..", "..", "configs", "catalog.yaml"))
	require.NoError(t, err)

	stats := cat.Stats()
	assert.Equal(t, 3, stats.Rows[types.CategoryHorizontalBlinds])
	assert.Equal(t, 4, stats.Rows[types.CategoryMosquitoNet])
	assert.Equal(t, 5, stats.GlassParams)

	row, err := cat.FindHorizontalBlind(map[string]string{
		types.AttrBlindType: "Ізолайт",
		types.AttrColor:     "Бежевий",
	})
	require.NoError(t, err)
	assert.Equal(t, types.CurrencyUSD, row.Price.Currency)
	assert.True(t, decimal.RequireFromString("14.2").Equal(row.Price.Amount))
	require.NotNil(t, row.Commission)
	assert.True(t, decimal.NewFromInt(180).Equal(*row.Commission))

	markup, ok := cat.GlassParam("markup:rehau")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1.25").Equal(markup))
}

func TestParse(t *testing.T) {
	doc := `
drips:
  - width_mm: 150
    price: {amount: "2.40", currency: USD}
`
	cat, err := Parse([]byte(doc))
	require.NoError(t, err)

	row, err := cat.FindDrip(map[string]string{types.AttrWidthMM: "150"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.4").Equal(row.Price.Amount))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "drips:\n  - width_mm: 150\n    prise: {amount: 1, currency: USD}\n"},
		{"bad amount", "drips:\n  - width_mm: 150\n    price: {amount: abc, currency: USD}\n"},
		{"invalid row", "drips:\n  - width_mm: 150\n    price: {amount: 0, currency: USD}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.TypeParsing))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, apperrors.IsType(err, apperrors.TypeParsing))
}
