package engine

import (
	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/pricing/primitives"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// SecurityFilm prices security film by area. Only the fixed set of
// thicknesses is offered; any other thickness is not found.
type SecurityFilm struct{}

func (SecurityFilm) Category() types.Category { return types.CategorySecurityFilm }

func (SecurityFilm) Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	cfg := t.SecurityFilm

	width, height, err := requireArea(q)
	if err != nil {
		return nil, err
	}
	keys, ints, err := lookupKeys(q)
	if err != nil {
		return nil, err
	}
	thickness := ints[types.AttrThickness]
	if !catalog.IsFilmThickness(thickness) {
		return nil, apperrors.NotFoundKeys(string(q.Category), types.AttrThickness, keys[types.AttrThickness], keys)
	}
	row, err := cat.FindSecurityFilm(keys)
	if err != nil {
		return nil, err
	}

	area := primitives.ResolveArea(width, height, decimal.Zero)
	price := primitives.ToLocal(row.Price, cfg.CurrencyRate)

	res := types.NewQuoteResult(q.Category)
	res.Add(ComponentPurchase, "Purchase price", primitives.PerUnit(price.Amount, area.Billed))
	res.Add(ComponentMaster, "Master commission", primitives.PerUnit(cfg.MasterCommissionPerSqm, area.Billed))
	res.Add(ComponentMargin, "Margin", primitives.PerUnit(cfg.MarginPerSqm, area.Billed))
	res.Add(ComponentDelivery, "Delivery", cfg.DeliveryCost)
	res.Add(ComponentBudget, "Budget fee", cfg.BudgetFee)
	res.Note = area.Note() + ", " + keys[types.AttrThickness] + " µm"
	return res, nil
}
