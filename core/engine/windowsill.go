package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// Windowsill prices windowsills by running length. The board width is a
// lookup key of the SKU, not a billed dimension.
type Windowsill struct{}

func (Windowsill) Category() types.Category { return types.CategoryWindowsill }

func (Windowsill) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.Windowsill

	length, err := requireLength(q)
	if err != nil {
		return nil, err
	}
	if q.Caps < 0 {
		return nil, apperrors.Invalid(string(q.Category), "caps", fmt.Sprintf("must not be negative, got %d", q.Caps))
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	row, err := cat.FindWindowsill(keys)
	if err != nil {
		return nil, err
	}

	billed := primitives.ResolveLength(length, decimal.Zero)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", primitives.PerUnit(price.Amount, billed.Billed))
	res.Add(ComponentCaps, fmt.Sprintf("End caps (%d pcs)", q.Caps), primitives.PerUnit(row.CapPrice, decimal.NewFromInt(int64(q.Caps))))
	res.Add(ComponentMaster, "Master commission", primitives.PerUnit(cfg.MasterCommissionPerMeter, billed.Billed))
	res.Add(ComponentFuel, "Fuel", cfg.FuelCost)
	res.Add(ComponentApplication, "Application fee", cfg.ApplicationFee)
	res.Add(ComponentMarkup, "Markup", cfg.Markup)
	res.Note = fmt.Sprintf("%s, board width %d mm", billed.Note(), row.WidthMM)
	return res, nil
}
