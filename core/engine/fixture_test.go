package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-quote/internal/logging"

	"window-quote/core/catalog"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

func init() {
	logging.UseNop()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func fixtureTables() catalog.Tables {
	return catalog.Tables{
		HorizontalBlinds: []catalog.HorizontalBlind{
			{BlindType: "День-ніч", Color: "Білий", Price: types.Foreign(dec("10")), Commission: decPtr("120")},
			{BlindType: "День-ніч", Color: "Білий", Price: types.Foreign(dec("99")), Commission: decPtr("1")},
			{BlindType: "Ізолайт", Color: "Бежевий", Price: types.Foreign(dec("12")), Commission: decPtr("130")},
		},
		RollerBlinds: []catalog.RollerBlind{
			{SystemType: "Mini открытый", Fabric: "Льон", Price: types.Local(dec("500"))},
			{SystemType: "Uni закрытый", Fabric: "Льон", Price: types.Local(dec("600"))},
		},
		MosquitoNets: []catalog.MosquitoNet{
			{Profile: "Рамкова", Color: "Білий", Price: types.Local(dec("400")), MinArea: dec("1.0"), Commission: dec("150")},
			{Profile: "Рамкова", Color: "Прирізка кута", Price: types.Local(dec("1")), MinArea: dec("0"), Commission: dec("100")},
			{Profile: "Плісе", Color: "Сірий", Price: types.Local(dec("900")), MinArea: dec("0.5"), Commission: dec("300")},
		},
		GlassUnits: []catalog.GlassUnit{
			{City: "Полтава", GlassType: "4-16-4", Price: types.Local(dec("1000")), Chambers: 1},
			{City: "Київ", GlassType: "4-10-4-10-4", Price: types.Local(dec("1500")), Chambers: 2},
		},
		GlassParams: map[string]decimal.Decimal{
			"commission:single_chamber:rehau": dec("250"),
			"commission:two_chamber:rehau":    dec("400"),
			"markup:rehau":                    dec("1.2"),
		},
		Windowsills: []catalog.Windowsill{
			{City: "Київ", Brand: "Danke", Color: "Білий", Texture: "Матовий", WidthMM: 300,
				Price: types.Foreign(dec("10")), CapPrice: dec("80")},
		},
		Drips: []catalog.Drip{
			{WidthMM: 150, Price: types.Foreign(dec("2"))},
		},
		SecurityFilms: []catalog.SecurityFilm{
			{Thickness: 100, Price: types.Local(dec("300"))},
			{Thickness: 200, Price: types.Local(dec("450"))},
		},
	}
}

func newFixtureDispatcher(t *testing.T, mutate func(*tariff.Tariff)) *Dispatcher {
	t.Helper()
	cat, err := catalog.New(fixtureTables())
	require.NoError(t, err)
	tf := tariff.Default()
	if mutate != nil {
		mutate(tf)
	}
	d, err := New(cat, tf)
	require.NoError(t, err)
	return d
}

func query(category types.Category, attrs map[string]string) types.Query {
	return types.Query{Category: category, Attributes: attrs}
}

func area(q types.Query, width, height string) types.Query {
	q.Width = dec(width)
	q.Height = dec(height)
	return q
}

func length(q types.Query, l string) types.Query {
	q.Length = dec(l)
	return q
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func assertComponent(t *testing.T, res *types.QuoteResult, name, want string) {
	t.Helper()
	c, ok := res.Component(name)
	if !assert.True(t, ok, "component %q missing", name) {
		return
	}
	assert.Truef(t, dec(want).Equal(c.Amount), "%s: want %s, got %s", name, want, c.Amount)
}

func componentNames(res *types.QuoteResult) []string {
	names := make([]string, len(res.Components))
	for i, c := range res.Components {
		names[i] = c.Name
	}
	return names
}
