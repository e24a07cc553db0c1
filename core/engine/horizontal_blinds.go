package engine

import (
	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// HorizontalBlinds prices horizontal blinds by clamped area. The master
// commission per m² comes from the tariff or from the SKU row, as selected
// by the tariff's commission source.
type HorizontalBlinds struct{}

func (HorizontalBlinds) Category() types.Category { return types.CategoryHorizontalBlinds }

func (HorizontalBlinds) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.HorizontalBlinds

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	row, err := cat.FindHorizontalBlind(keys)
	if err != nil {
		return nil, err
	}

	area := primitives.ResolveArea(width, height, cfg.MinArea)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)

	commission := cfg.MasterCommissionPerSqm
	if cfg.CommissionSource == tariff.CommissionFromCatalog {
		if row.Commission == nil {
			return nil, apperrors.ConfigMissing(string(q.Category), "commission").
				WithContext(apperrors.ContextKeys, keys)
		}
		commission = *row.Commission
	}

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", primitives.PerUnit(price.Amount, area.Billed))
	res.Add(ComponentMaster, "Master commission", primitives.PerUnit(commission, area.Billed))
	res.Add(ComponentMargin, "Margin", primitives.PerUnit(cfg.MarginPerSqm, area.Billed))
	res.Add(ComponentFuel, "Fuel", cfg.FuelCost)
	res.Note = area.Note()
	return res, nil
}
