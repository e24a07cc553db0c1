package tariff

import (
	stderrors "errors"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// document mirrors the HCL tariff file. Every constant is optional at decode
// time so that absent ones are reported by name instead of by the decoder.
type document struct {
	HorizontalBlinds *horizontalBlindsBlock `hcl:"horizontal_blinds,block"`
	RollerBlinds     *rollerBlindsBlock     `hcl:"roller_blinds,block"`
	MosquitoNet      *mosquitoNetBlock      `hcl:"mosquito_net,block"`
	GlassUnit        *glassUnitBlock        `hcl:"glass_unit,block"`
	Windowsill       *windowsillBlock       `hcl:"windowsill,block"`
	Drip             *dripBlock             `hcl:"drip,block"`
	SecurityFilm     *securityFilmBlock     `hcl:"security_film,block"`
	OSB              *osbBlock              `hcl:"osb,block"`
}

type horizontalBlindsBlock struct {
	CurrencyRate           *float64 `hcl:"currency_rate,optional"`
	MinArea                *float64 `hcl:"min_area,optional"`
	CommissionSource       *string  `hcl:"commission_source,optional"`
	MasterCommissionPerSqm *float64 `hcl:"master_commission_per_sqm,optional"`
	MarginPerSqm           *float64 `hcl:"margin_per_sqm,optional"`
	FuelCost               *float64 `hcl:"fuel_cost,optional"`
}

type rollerBlindsBlock struct {
	CurrencyRate              *float64           `hcl:"currency_rate,optional"`
	DeliveryCost              *float64           `hcl:"delivery_cost,optional"`
	ApplicationFee            *float64           `hcl:"application_fee,optional"`
	LandscapeSurchargePercent *float64           `hcl:"landscape_surcharge_percent,optional"`
	AlternateFinishSurcharge  *float64           `hcl:"alternate_finish_surcharge_usd,optional"`
	OpenSystemMarker          *string            `hcl:"open_system_marker,optional"`
	OpenCommission            *float64           `hcl:"open_commission,optional"`
	ClosedCommission          *float64           `hcl:"closed_commission,optional"`
	MinAreaByShaft            map[string]float64 `hcl:"min_area_by_shaft,optional"`
}

type mosquitoNetBlock struct {
	CurrencyRate    *float64 `hcl:"currency_rate,optional"`
	MarginPerNet    *float64 `hcl:"margin_per_net,optional"`
	DeliveryCost    *float64 `hcl:"delivery_cost,optional"`
	CornerCutMarker *string  `hcl:"corner_cut_marker,optional"`
}

type glassUnitBlock struct {
	CurrencyRate   *float64           `hcl:"currency_rate,optional"`
	DeliveryCost   *float64           `hcl:"delivery_cost,optional"`
	ApplicationFee *float64           `hcl:"application_fee,optional"`
	MinAreaByCity  map[string]float64 `hcl:"min_area_by_city,optional"`
}

type windowsillBlock struct {
	CurrencyRate             *float64 `hcl:"currency_rate,optional"`
	MasterCommissionPerMeter *float64 `hcl:"master_commission_per_meter,optional"`
	FuelCost                 *float64 `hcl:"fuel_cost,optional"`
	ApplicationFee           *float64 `hcl:"application_fee,optional"`
	Markup                   *float64 `hcl:"markup,optional"`
}

type dripBlock struct {
	CurrencyRate             *float64 `hcl:"currency_rate,optional"`
	MasterCommissionPerMeter *float64 `hcl:"master_commission_per_meter,optional"`
	MarginPerMeter           *float64 `hcl:"margin_per_meter,optional"`
	DeliveryCost             *float64 `hcl:"delivery_cost,optional"`
}

type securityFilmBlock struct {
	CurrencyRate           *float64 `hcl:"currency_rate,optional"`
	MasterCommissionPerSqm *float64 `hcl:"master_commission_per_sqm,optional"`
	MarginPerSqm           *float64 `hcl:"margin_per_sqm,optional"`
	DeliveryCost           *float64 `hcl:"delivery_cost,optional"`
	BudgetFee              *float64 `hcl:"budget_fee,optional"`
}

type osbBlock struct {
	SheetPrice             *float64 `hcl:"sheet_price,optional"`
	SheetArea              *float64 `hcl:"sheet_area,optional"`
	CuttingPerSheet        *float64 `hcl:"cutting_per_sheet,optional"`
	MasterCommissionPerSqm *float64 `hcl:"master_commission_per_sqm,optional"`
	MarginPerSqm           *float64 `hcl:"margin_per_sqm,optional"`
	DeliveryCost           *float64 `hcl:"delivery_cost,optional"`
}

// Load reads and validates an HCL tariff file
func Load(path string) (*Tariff, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Parsing("failed to read tariff file", err)
	}
	return Parse(src, path)
}

// Parse decodes and validates HCL tariff source. Every absent constant is
// reported as CONFIG_MISSING in a single error.
func Parse(src []byte, filename string) (*Tariff, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, apperrors.Parsing("failed to parse tariff", diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, apperrors.Parsing("failed to decode tariff", diags)
	}

	b := &builder{}
	t := b.build(&doc)
	if len(b.errs) > 0 {
		return nil, joinConfigErrors(b.errs)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// builder converts decoded blocks, collecting every missing constant
type builder struct {
	errs     []error
	declared map[string]bool
}

func (b *builder) missing(category types.Category, key string) {
	b.errs = append(b.errs, apperrors.ConfigMissing(string(category), key))
}

func (b *builder) num(category types.Category, key string, v *float64) decimal.Decimal {
	if v == nil {
		b.missing(category, key)
		return decimal.Zero
	}
	b.declared[constantID(category, key)] = true
	return decimal.NewFromFloat(*v)
}

func (b *builder) str(category types.Category, key string, v *string) string {
	if v == nil || *v == "" {
		b.missing(category, key)
		return ""
	}
	return *v
}

func (b *builder) table(category types.Category, key string, m map[string]float64, required bool) map[string]decimal.Decimal {
	if len(m) == 0 && required {
		b.missing(category, key)
	}
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

func (b *builder) build(doc *document) *Tariff {
	b.declared = make(map[string]bool)
	t := &Tariff{}

	if blk := doc.HorizontalBlinds; blk == nil {
		b.missing(types.CategoryHorizontalBlinds, "block")
	} else {
		c := types.CategoryHorizontalBlinds
		t.HorizontalBlinds = HorizontalBlinds{
			CurrencyRate:     b.num(c, "currency_rate", blk.CurrencyRate),
			MinArea:          b.num(c, "min_area", blk.MinArea),
			CommissionSource: CommissionSource(b.str(c, "commission_source", blk.CommissionSource)),
			MarginPerSqm:     b.num(c, "margin_per_sqm", blk.MarginPerSqm),
			FuelCost:         b.num(c, "fuel_cost", blk.FuelCost),
		}
		// Per-area commission is only required when it is sourced here.
		if t.HorizontalBlinds.CommissionSource == CommissionFromTariff {
			t.HorizontalBlinds.MasterCommissionPerSqm = b.num(c, "master_commission_per_sqm", blk.MasterCommissionPerSqm)
		}
	}

	if blk := doc.RollerBlinds; blk == nil {
		b.missing(types.CategoryRollerBlinds, "block")
	} else {
		c := types.CategoryRollerBlinds
		t.RollerBlinds = RollerBlinds{
			CurrencyRate:              b.num(c, "currency_rate", blk.CurrencyRate),
			DeliveryCost:              b.num(c, "delivery_cost", blk.DeliveryCost),
			ApplicationFee:            b.num(c, "application_fee", blk.ApplicationFee),
			LandscapeSurchargePercent: b.num(c, "landscape_surcharge_percent", blk.LandscapeSurchargePercent),
			AlternateFinishSurcharge:  b.num(c, "alternate_finish_surcharge_usd", blk.AlternateFinishSurcharge),
			OpenSystemMarker:          b.str(c, "open_system_marker", blk.OpenSystemMarker),
			OpenCommission:            b.num(c, "open_commission", blk.OpenCommission),
			ClosedCommission:          b.num(c, "closed_commission", blk.ClosedCommission),
			MinAreaByShaft:            b.table(c, "min_area_by_shaft", blk.MinAreaByShaft, true),
		}
	}

	if blk := doc.MosquitoNet; blk == nil {
		b.missing(types.CategoryMosquitoNet, "block")
	} else {
		c := types.CategoryMosquitoNet
		t.MosquitoNet = MosquitoNet{
			CurrencyRate:    b.num(c, "currency_rate", blk.CurrencyRate),
			MarginPerNet:    b.num(c, "margin_per_net", blk.MarginPerNet),
			DeliveryCost:    b.num(c, "delivery_cost", blk.DeliveryCost),
			CornerCutMarker: b.str(c, "corner_cut_marker", blk.CornerCutMarker),
		}
	}

	if blk := doc.GlassUnit; blk == nil {
		b.missing(types.CategoryGlassUnit, "block")
	} else {
		c := types.CategoryGlassUnit
		t.GlassUnit = GlassUnit{
			CurrencyRate:   b.num(c, "currency_rate", blk.CurrencyRate),
			DeliveryCost:   b.num(c, "delivery_cost", blk.DeliveryCost),
			ApplicationFee: b.num(c, "application_fee", blk.ApplicationFee),
			MinAreaByCity:  b.table(c, "min_area_by_city", blk.MinAreaByCity, false),
		}
	}

	if blk := doc.Windowsill; blk == nil {
		b.missing(types.CategoryWindowsill, "block")
	} else {
		c := types.CategoryWindowsill
		t.Windowsill = Windowsill{
			CurrencyRate:             b.num(c, "currency_rate", blk.CurrencyRate),
			MasterCommissionPerMeter: b.num(c, "master_commission_per_meter", blk.MasterCommissionPerMeter),
			FuelCost:                 b.num(c, "fuel_cost", blk.FuelCost),
			ApplicationFee:           b.num(c, "application_fee", blk.ApplicationFee),
			Markup:                   b.num(c, "markup", blk.Markup),
		}
	}

	if blk := doc.Drip; blk == nil {
		b.missing(types.CategoryDrip, "block")
	} else {
		c := types.CategoryDrip
		t.Drip = Drip{
			CurrencyRate:             b.num(c, "currency_rate", blk.CurrencyRate),
			MasterCommissionPerMeter: b.num(c, "master_commission_per_meter", blk.MasterCommissionPerMeter),
			MarginPerMeter:           b.num(c, "margin_per_meter", blk.MarginPerMeter),
			DeliveryCost:             b.num(c, "delivery_cost", blk.DeliveryCost),
		}
	}

	if blk := doc.SecurityFilm; blk == nil {
		b.missing(types.CategorySecurityFilm, "block")
	} else {
		c := types.CategorySecurityFilm
		t.SecurityFilm = SecurityFilm{
			CurrencyRate:           b.num(c, "currency_rate", blk.CurrencyRate),
			MasterCommissionPerSqm: b.num(c, "master_commission_per_sqm", blk.MasterCommissionPerSqm),
			MarginPerSqm:           b.num(c, "margin_per_sqm", blk.MarginPerSqm),
			DeliveryCost:           b.num(c, "delivery_cost", blk.DeliveryCost),
			BudgetFee:              b.num(c, "budget_fee", blk.BudgetFee),
		}
	}

	if blk := doc.OSB; blk == nil {
		b.missing(types.CategoryOSB, "block")
	} else {
		c := types.CategoryOSB
		t.OSB = OSB{
			SheetPrice:             b.num(c, "sheet_price", blk.SheetPrice),
			SheetArea:              b.num(c, "sheet_area", blk.SheetArea),
			CuttingPerSheet:        b.num(c, "cutting_per_sheet", blk.CuttingPerSheet),
			MasterCommissionPerSqm: b.num(c, "master_commission_per_sqm", blk.MasterCommissionPerSqm),
			MarginPerSqm:           b.num(c, "margin_per_sqm", blk.MarginPerSqm),
			DeliveryCost:           b.num(c, "delivery_cost", blk.DeliveryCost),
		}
	}

	t.declared = b.declared
	return t
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}

