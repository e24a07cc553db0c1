package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// RollerBlinds prices roller blinds. The minimum area depends on the shaft
// diameter, landscape blinds (width > height) carry a percentage surcharge
// on the purchase price only, and the commission depends on whether the
// system type names an open system.
type RollerBlinds struct{}

func (RollerBlinds) Category() types.Category { return types.CategoryRollerBlinds }

func (RollerBlinds) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.RollerBlinds

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}
	keys, _, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	shaft, err := requireAttr(q, types.AttrShaftDiameter)
	if err != nil {
		return nil, err
	}
	minArea, ok := cfg.MinAreaByShaft[shaft]
	if !ok {
		attempted := map[string]string{types.AttrShaftDiameter: shaft}
		for k, v := range keys {
			attempted[k] = v
		}
		return nil, apperrors.NotFoundKeys(string(q.Category), types.AttrShaftDiameter, shaft, attempted)
	}
	row, err := cat.FindRollerBlind(keys)
	if err != nil {
		return nil, err
	}

	area := primitives.ResolveArea(width, height, minArea)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)
	purchase := primitives.PerUnit(price.Amount, area.Billed)

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", purchase)
	if width.GreaterThan(height) {
		res.Add(ComponentLandscape, "Landscape surcharge", primitives.Percent(purchase, cfg.LandscapeSurchargePercent))
	}
	if q.AlternateFinish {
		surcharge := primitives.ToLocal(types.Foreign(cfg.AlternateFinishSurcharge), cfg.CurrencyRate)
		res.Add(ComponentAlternateFinish, "Alternate finish surcharge", surcharge.Amount)
	}
	res.Add(ComponentMaster, "Master commission", rollerCommission(keys[types.AttrSystemType], cfg))
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Add(ComponentApplication, "Application fee", cfg.ApplicationFee)
	res.Note = area.Note() + ", shaft " + shaft
	return res, nil
}

// rollerCommission selects the open or closed commission by substring:
// any system type containing the open marker, ignoring case, is open.
func rollerCommission(systemType string, cfg tariff.RollerBlinds) decimal.Decimal {
	if strings.Contains(strings.ToLower(systemType), strings.ToLower(cfg.OpenSystemMarker)) {
		return cfg.OpenCommission
	}
	return cfg.ClosedCommission
}
