package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

func osbResult() *types.QuoteResult {
	res := types.NewQuoteResult(types.CategoryOSB)
	res.Add("purchase", "Sheets (1 pcs)", decimal.NewFromInt(700))
	res.Add("cutting", "Cutting", decimal.NewFromInt(100))
	res.Add("master", "Master commission", decimal.NewFromInt(1140))
	res.Add("margin", "Margin", decimal.NewFromInt(1050))
	res.Add("delivery", "Delivery", decimal.NewFromInt(300))
	res.Note = "billed 3.00 m², 1 sheet(s) of 3.125 m²"
	return res
}

func notFound() error {
	keys := map[string]string{"width_mm": "999"}
	return apperrors.NotFoundKeys("drip", "width_mm", "999", keys)
}

func TestCLIFormatter(t *testing.T) {
	report := Single(types.Query{Category: types.CategoryOSB}, osbResult(), nil)
	report.ShowNote = true

	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).Render(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "OSB SHEETING")
	assert.Contains(t, out, "1140.00")
	assert.Contains(t, out, "3290.00 UAH")
	assert.Contains(t, out, "Note: billed 3.00 m²")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, l := range lines[:len(lines)-1] {
		assert.Equal(t, tableWidth, len([]rune(l)), l)
	}
}

func TestCLIFormatterBatch(t *testing.T) {
	report := &Report{Quotes: []Quote{
		{Query: types.Query{Category: types.CategoryOSB}, Result: osbResult()},
		{Query: types.Query{Category: types.CategoryDrip}, Error: NewErrorReport(notFound())},
	}}

	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).Render(&buf, report))
	assert.Contains(t, buf.String(), "✗ Drip cap: NOT_FOUND")
	assert.Contains(t, buf.String(), "2 quotes, 1 failed")
	assert.NotContains(t, buf.String(), "Note:")
}

func TestJSONFormatter(t *testing.T) {
	report := &Report{Quotes: []Quote{
		{Query: types.Query{Category: types.CategoryOSB}, Result: osbResult()},
		{Query: types.Query{Category: types.CategoryDrip}, Error: NewErrorReport(notFound())},
	}}

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Render(&buf, report))

	var decoded struct {
		Quotes []struct {
			Result *struct {
				Total      string `json:"total"`
				Currency   string `json:"currency"`
				Components []struct {
					Name string `json:"name"`
				} `json:"components"`
			} `json:"result"`
			Error *ErrorReport `json:"error"`
		} `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Quotes, 2)

	assert.Equal(t, "3290", decoded.Quotes[0].Result.Total)
	assert.Equal(t, "UAH", decoded.Quotes[0].Result.Currency)
	assert.Len(t, decoded.Quotes[0].Result.Components, 5)

	e := decoded.Quotes[1].Error
	require.NotNil(t, e)
	assert.Equal(t, apperrors.TypeNotFound, e.Type)
	assert.Equal(t, "width_mm", e.Key)
	assert.Equal(t, "999", e.Value)
	assert.Equal(t, map[string]string{"width_mm": "999"}, e.Keys)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Render(&buf, Single(types.Query{Category: types.CategoryOSB}, osbResult(), nil)))
	assert.Contains(t, buf.String(), "### OSB sheeting")
	assert.Contains(t, buf.String(), "| **Total** | **3290.00 UAH** |")
}

func TestNewErrorReportForeignError(t *testing.T) {
	r := NewErrorReport(assert.AnError)
	assert.Equal(t, apperrors.TypeInternal, r.Type)
	assert.Nil(t, NewErrorReport(nil))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Format{FormatCLI, FormatJSON, FormatMarkdown}, r.Formats())

	f, ok := r.Get(FormatJSON)
	require.True(t, ok)
	assert.Equal(t, FormatJSON, f.Format())

	assert.Error(t, r.Register(&CLIFormatter{}))
	_, ok = r.Get("html")
	assert.False(t, ok)
}
