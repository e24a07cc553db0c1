package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// OSB prices OSB sheeting from the tariff alone. Purchase and cutting are
// billed per whole sheet; labour and margin per m² of actual area.
type OSB struct{}

func (OSB) Category() types.Category { return types.CategoryOSB }

func (OSB) Compute(q types.Query, _ *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.OSB

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}

	area := primitives.ResolveArea(width, height, decimal.Zero)
	sheets := decimal.NewFromInt(primitives.SheetCount(area.Billed, cfg.SheetArea))

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, fmt.Sprintf("Sheets (%s pcs)", sheets), primitives.PerUnit(cfg.SheetPrice, sheets))
	res.Add(ComponentCutting, "Cutting", primitives.PerUnit(cfg.CuttingPerSheet, sheets))
	res.Add(ComponentMaster, "Master commission", primitives.PerUnit(cfg.MasterCommissionPerSqm, area.Billed))
	res.Add(ComponentMargin, "Margin", primitives.PerUnit(cfg.MarginPerSqm, area.Billed))
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Note = fmt.Sprintf("%s, %s sheet(s) of %s m²", area.Note(), sheets, cfg.SheetArea)
	return res, nil
}
