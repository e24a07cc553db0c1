package engine

import (
	"github.com/shopspring/decimal"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// MosquitoNet prices mosquito nets. Minimum area and installer commission
// are per SKU. The optional corner cut bills the commission of the profile's
// sentinel row; a profile without one adds nothing.
type MosquitoNet struct{}

func (MosquitoNet) Category() types.Category { return types.CategoryMosquitoNet }

func (MosquitoNet) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.MosquitoNet

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	row, err := cat.FindMosquitoNet(keys)
	if err != nil {
		return nil, err
	}

	area := primitives.ResolveArea(width, height, row.MinArea)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", primitives.PerUnit(price.Amount, area.Billed))
	res.Add(ComponentMaster, "Master commission", row.Commission)
	res.Add(ComponentMargin, "Margin", cfg.MarginPerNet)
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Note = area.Note()

	if q.CornerCut {
		cornerCut := decimal.Zero
		if sentinel, ok := cat.FindCornerCut(row.Profile, cfg.CornerCutMarker); ok {
			cornerCut = sentinel.Commission
		} else {
			res.Note += ", corner cut not offered for this profile"
		}
		res.Add(ComponentCornerCut, "Corner cut", cornerCut)
	}
	return res, nil
}
