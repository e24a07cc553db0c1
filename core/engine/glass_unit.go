package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// Glass parameter fallbacks used when the composite key has no entry.
var (
	GlassCommissionFallback = decimal.Zero
	GlassMarkupFallback     = decimal.NewFromInt(1)
)

// GlassUnit prices glass units. Commission and markup multiplier are read
// from the catalog's glass parameter table by composite keys of chamber
// count and profile system; absent keys fall back to commission 0 and
// markup ×1 and the note says so.
type GlassUnit struct{}

func (GlassUnit) Category() types.Category { return types.CategoryGlassUnit }

func (GlassUnit) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.GlassUnit

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	profile, err := requireAttr(q, types.AttrProfileSystem)
	if err != nil {
		return nil, err
	}
	row, err := cat.FindGlassUnit(keys)
	if err != nil {
		return nil, err
	}

	// Cities without an entry have no minimum.
	area := primitives.ResolveArea(width, height, cfg.MinAreaByCity[row.City])
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)
	purchase := primitives.PerUnit(price.Amount, area.Billed)

	notes := []string{area.Note()}
	commissionKey := catalog.GlassCommissionKey(row.Chambers, profile)
	commission, ok := cat.GlassParam(commissionKey)
	if !ok {
		commission = GlassCommissionFallback
		notes = append(notes, "no "+commissionKey+", commission "+commission.String())
	}
	markupKey := catalog.GlassMarkupKey(profile)
	markup, ok := cat.GlassParam(markupKey)
	if !ok {
		markup = GlassMarkupFallback
		notes = append(notes, "no "+markupKey+", markup x"+markup.String())
	}

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", purchase)
	res.Add(ComponentMarkup, "Markup (x"+markup.String()+")", purchase.Mul(markup.Sub(GlassMarkupFallback)))
	res.Add(ComponentMaster, "Master commission", commission)
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Add(ComponentApplication, "Application fee", cfg.ApplicationFee)
	res.Note = strings.Join(notes, "; ")
	return res, nil
}
