package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// Drip prices drip caps by running length
type Drip struct{}

func (Drip) Category() types.Category { return types.CategoryDrip }

func (Drip) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.Drip

	length, err := requireLength(q)
	if err != nil {
		return nil, err
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	row, err := cat.FindDrip(keys)
	if err != nil {
		return nil, err
	}

	billed := primitives.ResolveLength(length, decimal.Zero)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", primitives.PerUnit(price.Amount, billed.Billed))
	res.Add(ComponentMaster, "Master commission", primitives.PerUnit(cfg.MasterCommissionPerMeter, billed.Billed))
	res.Add(ComponentMargin, "Margin", primitives.PerUnit(cfg.MarginPerMeter, billed.Billed))
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Note = fmt.Sprintf("%s, width %d mm", billed.Note(), row.WidthMM)
	return res, nil
}
