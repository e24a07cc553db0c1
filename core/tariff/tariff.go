// Package tariff holds the named pricing constants of every category.
// A Tariff is built once per process and is read-only afterwards.
package tariff

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// CommissionSource selects where horizontal blinds commission comes from
type CommissionSource string

const (
	// CommissionFromTariff uses HorizontalBlinds.MasterCommissionPerSqm
	CommissionFromTariff CommissionSource = "tariff"

	// CommissionFromCatalog uses the per-SKU catalog commission
	CommissionFromCatalog CommissionSource = "catalog"
)

// HorizontalBlinds holds horizontal blinds constants
type HorizontalBlinds struct {
	CurrencyRate           decimal.Decimal
	MinArea                decimal.Decimal
	CommissionSource       CommissionSource
	MasterCommissionPerSqm decimal.Decimal
	MarginPerSqm           decimal.Decimal
	FuelCost               decimal.Decimal
}

// RollerBlinds holds roller blinds constants. A system type containing
// OpenSystemMarker (case-insensitive) earns OpenCommission, any other
// ClosedCommission. AlternateFinishSurcharge is in USD.
type RollerBlinds struct {
	CurrencyRate              decimal.Decimal
	DeliveryCost              decimal.Decimal
	ApplicationFee            decimal.Decimal
	LandscapeSurchargePercent decimal.Decimal
	AlternateFinishSurcharge  decimal.Decimal
	OpenSystemMarker          string
	OpenCommission            decimal.Decimal
	ClosedCommission          decimal.Decimal
	MinAreaByShaft            map[string]decimal.Decimal
}

// MosquitoNet holds mosquito net constants
type MosquitoNet struct {
	CurrencyRate    decimal.Decimal
	MarginPerNet    decimal.Decimal
	DeliveryCost    decimal.Decimal
	CornerCutMarker string
}

// GlassUnit holds glass unit constants. Cities absent from MinAreaByCity
// have no minimum.
type GlassUnit struct {
	CurrencyRate   decimal.Decimal
	DeliveryCost   decimal.Decimal
	ApplicationFee decimal.Decimal
	MinAreaByCity  map[string]decimal.Decimal
}

// Windowsill holds windowsill constants
type Windowsill struct {
	CurrencyRate             decimal.Decimal
	MasterCommissionPerMeter decimal.Decimal
	FuelCost                 decimal.Decimal
	ApplicationFee           decimal.Decimal
	Markup                   decimal.Decimal
}

// Drip holds drip cap constants
type Drip struct {
	CurrencyRate             decimal.Decimal
	MasterCommissionPerMeter decimal.Decimal
	MarginPerMeter           decimal.Decimal
	DeliveryCost             decimal.Decimal
}

// SecurityFilm holds security film constants
type SecurityFilm struct {
	CurrencyRate           decimal.Decimal
	MasterCommissionPerSqm decimal.Decimal
	MarginPerSqm           decimal.Decimal
	DeliveryCost           decimal.Decimal
	BudgetFee              decimal.Decimal
}

// OSB holds OSB sheeting constants; there is no catalog for OSB
type OSB struct {
	SheetPrice             decimal.Decimal
	SheetArea              decimal.Decimal
	CuttingPerSheet        decimal.Decimal
	MasterCommissionPerSqm decimal.Decimal
	MarginPerSqm           decimal.Decimal
	DeliveryCost           decimal.Decimal
}

// Tariff is the complete pricing configuration.
//
// Parse and Default record which numeric constants were declared, so an
// explicit zero fee is valid there. A Tariff literal built in Go has no such
// record and Validate reports each of its zero constants as missing; start
// from Default() and override fields to keep an intentional zero.
type Tariff struct {
	HorizontalBlinds HorizontalBlinds
	RollerBlinds     RollerBlinds
	MosquitoNet      MosquitoNet
	GlassUnit        GlassUnit
	Windowsill       Windowsill
	Drip             Drip
	SecurityFilm     SecurityFilm
	OSB              OSB

	declared map[string]bool
}

// constant is one named numeric tariff value
type constant struct {
	category types.Category
	key      string
	value    decimal.Decimal
}

func constantID(category types.Category, key string) string {
	return string(category) + "." + key
}

// constants lists every required numeric constant. Keys match the HCL
// attribute names.
func (t *Tariff) constants() []constant {
	hb, rb, mn, gu := t.HorizontalBlinds, t.RollerBlinds, t.MosquitoNet, t.GlassUnit
	ws, dr, sf, osb := t.Windowsill, t.Drip, t.SecurityFilm, t.OSB

	out := []constant{
		{types.CategoryHorizontalBlinds, "currency_rate", hb.CurrencyRate},
		{types.CategoryHorizontalBlinds, "min_area", hb.MinArea},
		{types.CategoryHorizontalBlinds, "margin_per_sqm", hb.MarginPerSqm},
		{types.CategoryHorizontalBlinds, "fuel_cost", hb.FuelCost},
	}
	if hb.CommissionSource == CommissionFromTariff {
		out = append(out, constant{types.CategoryHorizontalBlinds, "master_commission_per_sqm", hb.MasterCommissionPerSqm})
	}
	return append(out,
		constant{types.CategoryRollerBlinds, "currency_rate", rb.CurrencyRate},
		constant{types.CategoryRollerBlinds, "delivery_cost", rb.DeliveryCost},
		constant{types.CategoryRollerBlinds, "application_fee", rb.ApplicationFee},
		constant{types.CategoryRollerBlinds, "landscape_surcharge_percent", rb.LandscapeSurchargePercent},
		constant{types.CategoryRollerBlinds, "alternate_finish_surcharge_usd", rb.AlternateFinishSurcharge},
		constant{types.CategoryRollerBlinds, "open_commission", rb.OpenCommission},
		constant{types.CategoryRollerBlinds, "closed_commission", rb.ClosedCommission},

		constant{types.CategoryMosquitoNet, "currency_rate", mn.CurrencyRate},
		constant{types.CategoryMosquitoNet, "margin_per_net", mn.MarginPerNet},
		constant{types.CategoryMosquitoNet, "delivery_cost", mn.DeliveryCost},

		constant{types.CategoryGlassUnit, "currency_rate", gu.CurrencyRate},
		constant{types.CategoryGlassUnit, "delivery_cost", gu.DeliveryCost},
		constant{types.CategoryGlassUnit, "application_fee", gu.ApplicationFee},

		constant{types.CategoryWindowsill, "currency_rate", ws.CurrencyRate},
		constant{types.CategoryWindowsill, "master_commission_per_meter", ws.MasterCommissionPerMeter},
		constant{types.CategoryWindowsill, "fuel_cost", ws.FuelCost},
		constant{types.CategoryWindowsill, "application_fee", ws.ApplicationFee},
		constant{types.CategoryWindowsill, "markup", ws.Markup},

		constant{types.CategoryDrip, "currency_rate", dr.CurrencyRate},
		constant{types.CategoryDrip, "master_commission_per_meter", dr.MasterCommissionPerMeter},
		constant{types.CategoryDrip, "margin_per_meter", dr.MarginPerMeter},
		constant{types.CategoryDrip, "delivery_cost", dr.DeliveryCost},

		constant{types.CategorySecurityFilm, "currency_rate", sf.CurrencyRate},
		constant{types.CategorySecurityFilm, "master_commission_per_sqm", sf.MasterCommissionPerSqm},
		constant{types.CategorySecurityFilm, "margin_per_sqm", sf.MarginPerSqm},
		constant{types.CategorySecurityFilm, "delivery_cost", sf.DeliveryCost},
		constant{types.CategorySecurityFilm, "budget_fee", sf.BudgetFee},

		constant{types.CategoryOSB, "sheet_price", osb.SheetPrice},
		constant{types.CategoryOSB, "sheet_area", osb.SheetArea},
		constant{types.CategoryOSB, "cutting_per_sheet", osb.CuttingPerSheet},
		constant{types.CategoryOSB, "master_commission_per_sqm", osb.MasterCommissionPerSqm},
		constant{types.CategoryOSB, "margin_per_sqm", osb.MarginPerSqm},
		constant{types.CategoryOSB, "delivery_cost", osb.DeliveryCost},
	)
}

// declareAll marks every constant of t as declared
func (t *Tariff) declareAll() {
	t.declared = make(map[string]bool)
	for _, c := range t.constants() {
		t.declared[constantID(c.category, c.key)] = true
	}
	// Declared independently of the current commission source.
	t.declared[constantID(types.CategoryHorizontalBlinds, "master_commission_per_sqm")] = true
}

// isDeclared reports whether a constant was supplied. Without a declaration
// record a zero value counts as absent.
func (t *Tariff) isDeclared(c constant) bool {
	if t.declared == nil {
		return !c.value.IsZero()
	}
	return t.declared[constantID(c.category, c.key)]
}

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Default returns the constants of the reference deployment
func Default() *Tariff {
	t := &Tariff{
		HorizontalBlinds: HorizontalBlinds{
			CurrencyRate:           d(43.5),
			MinArea:                d(0.7),
			CommissionSource:       CommissionFromTariff,
			MasterCommissionPerSqm: d(150),
			MarginPerSqm:           d(200),
			FuelCost:               d(100),
		},
		RollerBlinds: RollerBlinds{
			CurrencyRate:              d(43.5),
			DeliveryCost:              d(150),
			ApplicationFee:            d(200),
			LandscapeSurchargePercent: d(10),
			AlternateFinishSurcharge:  d(1),
			OpenSystemMarker:          "открытый",
			OpenCommission:            d(200),
			ClosedCommission:          d(250),
			MinAreaByShaft: map[string]decimal.Decimal{
				"19 мм": d(0.7),
				"25 мм": d(1.0),
				"35 мм": d(1.0),
			},
		},
		MosquitoNet: MosquitoNet{
			CurrencyRate:    d(43.5),
			MarginPerNet:    d(350),
			DeliveryCost:    d(200),
			CornerCutMarker: "ПРИРІЗКА КУТА",
		},
		GlassUnit: GlassUnit{
			CurrencyRate:   d(43.5),
			DeliveryCost:   d(200),
			ApplicationFee: d(200),
			MinAreaByCity: map[string]decimal.Decimal{
				"Полтава": d(0.3),
			},
		},
		Windowsill: Windowsill{
			CurrencyRate:             d(43.0),
			MasterCommissionPerMeter: d(450),
			FuelCost:                 d(150),
			ApplicationFee:           d(200),
			Markup:                   d(500),
		},
		Drip: Drip{
			CurrencyRate:             d(43.0),
			MasterCommissionPerMeter: d(150),
			MarginPerMeter:           d(500),
			DeliveryCost:             d(400),
		},
		SecurityFilm: SecurityFilm{
			CurrencyRate:           d(43.5),
			MasterCommissionPerSqm: d(400),
			MarginPerSqm:           d(600),
			DeliveryCost:           d(150),
			BudgetFee:              d(40),
		},
		OSB: OSB{
			SheetPrice:             d(700),
			SheetArea:              d(3.125),
			CuttingPerSheet:        d(100),
			MasterCommissionPerSqm: d(380),
			MarginPerSqm:           d(350),
			DeliveryCost:           d(300),
		},
	}
	t.declareAll()
	return t
}

// Validate checks presence and semantic constraints. Every constant must be
// declared (see Tariff), currency rates and the OSB sheet area must be
// positive, fees non-negative and tables non-empty. Absent constants, zero
// rates and empty tables are reported as CONFIG_MISSING.
func (t *Tariff) Validate() error {
	var errs []error
	absent := make(map[string]bool)
	for _, c := range t.constants() {
		if !t.isDeclared(c) {
			absent[constantID(c.category, c.key)] = true
			errs = append(errs, apperrors.ConfigMissing(string(c.category), c.key))
		}
	}
	positive := func(category types.Category, key string, v decimal.Decimal) {
		if !v.IsPositive() && !absent[constantID(category, key)] {
			errs = append(errs, apperrors.ConfigMissing(string(category), key))
		}
	}
	nonNegative := func(category types.Category, key string, vs ...decimal.Decimal) {
		for _, v := range vs {
			if v.IsNegative() {
				errs = append(errs, apperrors.Invalid(string(category), key, "must not be negative"))
			}
		}
	}

	hb := t.HorizontalBlinds
	positive(types.CategoryHorizontalBlinds, "currency_rate", hb.CurrencyRate)
	nonNegative(types.CategoryHorizontalBlinds, "min_area", hb.MinArea)
	nonNegative(types.CategoryHorizontalBlinds, "margin_per_sqm", hb.MarginPerSqm)
	nonNegative(types.CategoryHorizontalBlinds, "fuel_cost", hb.FuelCost)
	nonNegative(types.CategoryHorizontalBlinds, "master_commission_per_sqm", hb.MasterCommissionPerSqm)
	switch hb.CommissionSource {
	case CommissionFromTariff, CommissionFromCatalog:
	case "":
		errs = append(errs, apperrors.ConfigMissing(string(types.CategoryHorizontalBlinds), "commission_source"))
	default:
		errs = append(errs, apperrors.Invalid(string(types.CategoryHorizontalBlinds), "commission_source",
			fmt.Sprintf("unknown source %q", hb.CommissionSource)))
	}

	rb := t.RollerBlinds
	positive(types.CategoryRollerBlinds, "currency_rate", rb.CurrencyRate)
	nonNegative(types.CategoryRollerBlinds, "fees", rb.DeliveryCost, rb.ApplicationFee,
		rb.LandscapeSurchargePercent, rb.AlternateFinishSurcharge, rb.OpenCommission, rb.ClosedCommission)
	if rb.OpenSystemMarker == "" {
		errs = append(errs, apperrors.ConfigMissing(string(types.CategoryRollerBlinds), "open_system_marker"))
	}
	if len(rb.MinAreaByShaft) == 0 {
		errs = append(errs, apperrors.ConfigMissing(string(types.CategoryRollerBlinds), "min_area_by_shaft"))
	}
	for shaft, v := range rb.MinAreaByShaft {
		nonNegative(types.CategoryRollerBlinds, "min_area_by_shaft."+shaft, v)
	}

	mn := t.MosquitoNet
	positive(types.CategoryMosquitoNet, "currency_rate", mn.CurrencyRate)
	nonNegative(types.CategoryMosquitoNet, "fees", mn.MarginPerNet, mn.DeliveryCost)
	if mn.CornerCutMarker == "" {
		errs = append(errs, apperrors.ConfigMissing(string(types.CategoryMosquitoNet), "corner_cut_marker"))
	}

	gu := t.GlassUnit
	positive(types.CategoryGlassUnit, "currency_rate", gu.CurrencyRate)
	nonNegative(types.CategoryGlassUnit, "fees", gu.DeliveryCost, gu.ApplicationFee)
	for city, v := range gu.MinAreaByCity {
		nonNegative(types.CategoryGlassUnit, "min_area_by_city."+city, v)
	}

	ws := t.Windowsill
	positive(types.CategoryWindowsill, "currency_rate", ws.CurrencyRate)
	nonNegative(types.CategoryWindowsill, "fees", ws.MasterCommissionPerMeter, ws.FuelCost, ws.ApplicationFee, ws.Markup)

	dr := t.Drip
	positive(types.CategoryDrip, "currency_rate", dr.CurrencyRate)
	nonNegative(types.CategoryDrip, "fees", dr.MasterCommissionPerMeter, dr.MarginPerMeter, dr.DeliveryCost)

	sf := t.SecurityFilm
	positive(types.CategorySecurityFilm, "currency_rate", sf.CurrencyRate)
	nonNegative(types.CategorySecurityFilm, "fees", sf.MasterCommissionPerSqm, sf.MarginPerSqm, sf.DeliveryCost, sf.BudgetFee)

	osb := t.OSB
	positive(types.CategoryOSB, "sheet_area", osb.SheetArea)
	nonNegative(types.CategoryOSB, "fees", osb.SheetPrice, osb.CuttingPerSheet, osb.MasterCommissionPerSqm,
		osb.MarginPerSqm, osb.DeliveryCost)

	return joinConfigErrors(errs)
}

// joinConfigErrors folds errs into one typed error. The result is
// CONFIG_MISSING when any constant is absent, INVALID otherwise.
func joinConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	errType := apperrors.TypeInput
	for _, err := range errs {
		if apperrors.IsType(err, apperrors.TypeConfig) {
			errType = apperrors.TypeConfig
			break
		}
	}
	return apperrors.Wrap(errType, fmt.Sprintf("tariff has %d problems", len(errs)), joinErrors(errs))
}
