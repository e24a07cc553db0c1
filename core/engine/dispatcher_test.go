package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// stubCalculator lets tests inject faults at the dispatch boundary
type stubCalculator struct {
	category types.Category
	compute  func() (*types.QuoteResult, error)
}

func (s stubCalculator) Category() types.Category { return s.category }

func (s stubCalculator) Compute(types.Query, *catalog.Catalog, *tariff.Tariff) (*types.QuoteResult, error) {
	return s.compute()
}

func stubDispatcher(t *testing.T, compute func() (*types.QuoteResult, error)) *Dispatcher {
	t.Helper()
	r := NewRegistry()
	r.Register(stubCalculator{category: types.CategoryOSB, compute: compute})
	d, err := NewWithRegistry(r, catalog.MustNew(fixtureTables()), tariff.Default())
	require.NoError(t, err)
	return d
}

func allCategoryQueries() []types.Query {
	caps := length(query(types.CategoryWindowsill, map[string]string{
		types.AttrCity: "Київ", types.AttrBrand: "Danke", types.AttrColor: "Білий",
		types.AttrTexture: "Матовий", types.AttrWidthMM: "300",
	}), "1.25")
	caps.Caps = 1
	return []types.Query{
		area(query(types.CategoryHorizontalBlinds, map[string]string{types.AttrBlindType: "Ізолайт", types.AttrColor: "Бежевий"}), "1.13", "0.87"),
		area(query(types.CategoryRollerBlinds, map[string]string{
			types.AttrSystemType: "Mini открытый", types.AttrFabric: "Льон", types.AttrShaftDiameter: "35 мм",
		}), "1.7", "1.1"),
		area(query(types.CategoryMosquitoNet, map[string]string{types.AttrProfile: "Плісе", types.AttrColor: "Сірий"}), "0.63", "1.41"),
		area(query(types.CategoryGlassUnit, map[string]string{
			types.AttrCity: "Полтава", types.AttrGlassType: "4-16-4", types.AttrProfileSystem: "rehau",
		}), "0.77", "1.33"),
		caps,
		length(query(types.CategoryDrip, map[string]string{types.AttrWidthMM: "150"}), "2.37"),
		area(query(types.CategorySecurityFilm, map[string]string{types.AttrThickness: "100"}), "1.21", "0.93"),
		area(query(types.CategoryOSB, nil), "4.4", "2.9"),
	}
}

func TestDeterminismAndSumInvariant(t *testing.T) {
	d := newFixtureDispatcher(t, nil)

	for _, q := range allCategoryQueries() {
		t.Run(string(q.Category), func(t *testing.T) {
			first, err := d.Quote(q)
			require.NoError(t, err)
			second, err := d.Quote(q)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.True(t, first.Total.Equal(first.Sum()))
			for _, c := range first.Components {
				assert.False(t, c.Amount.IsNegative(), c.Name)
			}
		})
	}
}

func TestCurrencyConvertedOnce(t *testing.T) {
	d := newFixtureDispatcher(t, nil)

	// 2 USD per meter at 43.0, one meter
	res, err := d.Quote(length(query(types.CategoryDrip, map[string]string{types.AttrWidthMM: "150"}), "1"))
	require.NoError(t, err)
	assertComponent(t, res, ComponentPurchase, "86")
}

func TestDispatchUnknownCategory(t *testing.T) {
	d := newFixtureDispatcher(t, nil)

	_, err := d.Dispatch("shutters", area(query("shutters", nil), "1", "1"))
	require.Error(t, err)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.TypeNotFound, e.Type)
	assert.Equal(t, "shutters", e.Category())
}

func TestDispatchNotFoundCarriesKeys(t *testing.T) {
	d := newFixtureDispatcher(t, nil)
	attrs := map[string]string{types.AttrBlindType: "День-ніч", types.AttrColor: "Фіолетовий"}

	res, err := d.Quote(area(query(types.CategoryHorizontalBlinds, attrs), "1", "1"))
	assert.Nil(t, res)
	require.Error(t, err)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.TypeNotFound, e.Type)
	assert.Equal(t, string(types.CategoryHorizontalBlinds), e.Category())
	assert.Equal(t, types.AttrColor, e.Context[apperrors.ContextKey])
	assert.Equal(t, "Фіолетовий", e.Context[apperrors.ContextValue])
	assert.Equal(t, attrs, e.Keys())
}

func TestDispatchInvalidDimensions(t *testing.T) {
	d := newFixtureDispatcher(t, nil)
	attrs := map[string]string{types.AttrBlindType: "День-ніч", types.AttrColor: "Білий"}

	tests := []struct {
		name string
		q    types.Query
		key  string
	}{
		{"zero width", area(query(types.CategoryHorizontalBlinds, attrs), "0", "1"), "width"},
		{"negative height", area(query(types.CategoryHorizontalBlinds, attrs), "1", "-1"), "height"},
		{"missing length", query(types.CategoryDrip, map[string]string{types.AttrWidthMM: "150"}), "length"},
		{"osb without area", query(types.CategoryOSB, nil), "width"},
		{"missing attribute", area(query(types.CategoryHorizontalBlinds, map[string]string{types.AttrColor: "Білий"}), "1", "1"), types.AttrBlindType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Quote(tt.q)
			e, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.TypeInput, e.Type)
			assert.Equal(t, tt.key, e.Context[apperrors.ContextKey])
			assert.Equal(t, string(tt.q.Category), e.Category())
			assert.NotNil(t, e.Keys())
		})
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	d := stubDispatcher(t, func() (*types.QuoteResult, error) {
		var m map[string]int
		m["boom"]++
		return nil, nil
	})

	res, err := d.Quote(area(query(types.CategoryOSB, nil), "1", "1"))
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeInternal, apperrors.TypeOf(err))
}

func TestDispatchTypesForeignErrors(t *testing.T) {
	d := stubDispatcher(t, func() (*types.QuoteResult, error) {
		return nil, errors.New("plain failure")
	})

	_, err := d.Quote(area(query(types.CategoryOSB, nil), "1", "1"))
	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.TypeInternal, e.Type)
	assert.Equal(t, string(types.CategoryOSB), e.Category())
}

func TestDispatchRejectsUnbalancedResult(t *testing.T) {
	d := stubDispatcher(t, func() (*types.QuoteResult, error) {
		res := types.NewQuoteResult(types.CategoryOSB)
		res.Add(ComponentPurchase, "Purchase price", decimal.NewFromInt(10))
		res.Total = decimal.NewFromInt(11)
		return res, nil
	})

	_, err := d.Quote(area(query(types.CategoryOSB, nil), "1", "1"))
	assert.Equal(t, apperrors.TypeInternal, apperrors.TypeOf(err))
}

func TestNewValidatesTariff(t *testing.T) {
	cat := catalog.MustNew(fixtureTables())

	tf := tariff.Default()
	tf.Drip.CurrencyRate = decimal.Zero
	_, err := New(cat, tf)
	assert.True(t, apperrors.IsType(err, apperrors.TypeConfig))

	_, err = New(nil, tariff.Default())
	assert.Error(t, err)
}

func TestNewRequiresCatalogCommission(t *testing.T) {
	tables := fixtureTables()
	tables.HorizontalBlinds[2].Commission = nil
	cat := catalog.MustNew(tables)

	_, err := New(cat, tariff.Default())
	require.NoError(t, err)

	tf := tariff.Default()
	tf.HorizontalBlinds.CommissionSource = tariff.CommissionFromCatalog
	_, err = New(cat, tf)
	require.Error(t, err)

	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.TypeConfig, e.Type)
	assert.Equal(t, "Ізолайт", e.Keys()[types.AttrBlindType])
}

func TestPackageDispatch(t *testing.T) {
	res, err := Dispatch(types.CategoryOSB, area(types.Query{}, "2.0", "1.5"), catalog.MustNew(fixtureTables()), tariff.Default())
	require.NoError(t, err)
	assertAmount(t, "3290", res.Total)
	assert.Equal(t, types.CategoryOSB, res.Category)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, types.AllCategories(), r.Categories())

	assert.Panics(t, func() { r.Register(OSB{}) })
	assert.Error(t, r.RegisterSafe(stubCalculator{category: "shutters"}))
}

func TestBatch(t *testing.T) {
	d := newFixtureDispatcher(t, nil)

	queries := allCategoryQueries()
	queries = append(queries, area(query(types.CategoryDrip, map[string]string{types.AttrWidthMM: "999"}), "1", "1"))

	items, err := d.Batch(context.Background(), queries, 3)
	require.NoError(t, err)
	require.Len(t, items, len(queries))

	for i, it := range items[:len(items)-1] {
		require.NoError(t, it.Err, it.Query.Category)
		assert.Equal(t, queries[i].Category, it.Result.Category)

		single, err := d.Quote(queries[i])
		require.NoError(t, err)
		assert.Equal(t, single, it.Result)
	}

	last := items[len(items)-1]
	assert.Nil(t, last.Result)
	assert.Error(t, last.Err)
	assert.Equal(t, 1, Failed(items))
}

func TestBatchCancelled(t *testing.T) {
	d := newFixtureDispatcher(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := d.Batch(ctx, allCategoryQueries(), 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(items), Failed(items))
}
