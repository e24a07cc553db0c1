package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"

	"window-quote/core/types"
)

// Entry is one priced SKU row that can be filtered by named key columns
type Entry interface {
	Key(name string) string
}

// HorizontalBlind is a horizontal blinds row; Price is per m².
// Commission is per m² and only read when the tariff sources commission
// from the catalog.
type HorizontalBlind struct {
	BlindType  string           `yaml:"blind_type" json:"blind_type"`
	Color      string           `yaml:"color" json:"color"`
	Price      types.Money      `yaml:"price" json:"price"`
	Commission *decimal.Decimal `yaml:"commission,omitempty" json:"commission,omitempty"`
}

func (e HorizontalBlind) Key(name string) string {
	switch name {
	case types.AttrBlindType:
		return e.BlindType
	case types.AttrColor:
		return e.Color
	}
	return ""
}

// RollerBlind is a roller blinds row; Price is per m²
type RollerBlind struct {
	SystemType string      `yaml:"system_type" json:"system_type"`
	Fabric     string      `yaml:"fabric" json:"fabric"`
	Price      types.Money `yaml:"price" json:"price"`
}

func (e RollerBlind) Key(name string) string {
	switch name {
	case types.AttrSystemType:
		return e.SystemType
	case types.AttrFabric:
		return e.Fabric
	}
	return ""
}

// MosquitoNet is a mosquito net row. MinArea is the billing minimum and
// Commission the flat installer fee per net.
type MosquitoNet struct {
	Profile    string          `yaml:"profile" json:"profile"`
	Color      string          `yaml:"color" json:"color"`
	Price      types.Money     `yaml:"price" json:"price"`
	MinArea    decimal.Decimal `yaml:"min_area" json:"min_area"`
	Commission decimal.Decimal `yaml:"commission" json:"commission"`
}

func (e MosquitoNet) Key(name string) string {
	switch name {
	case types.AttrProfile:
		return e.Profile
	case types.AttrColor:
		return e.Color
	}
	return ""
}

// GlassUnit is a glass unit row; Price is per m²
type GlassUnit struct {
	City      string      `yaml:"city" json:"city"`
	GlassType string      `yaml:"glass_type" json:"glass_type"`
	Price     types.Money `yaml:"price" json:"price"`
	Chambers  int         `yaml:"chambers" json:"chambers"`
}

func (e GlassUnit) Key(name string) string {
	switch name {
	case types.AttrCity:
		return e.City
	case types.AttrGlassType:
		return e.GlassType
	}
	return ""
}

// Windowsill is a windowsill row. WidthMM is the board width, a lookup key,
// not a billed dimension. Price is per running meter; CapPrice is local
// currency per end cap.
type Windowsill struct {
	City     string          `yaml:"city" json:"city"`
	Brand    string          `yaml:"brand" json:"brand"`
	Color    string          `yaml:"color" json:"color"`
	Texture  string          `yaml:"texture" json:"texture"`
	WidthMM  int             `yaml:"width_mm" json:"width_mm"`
	Price    types.Money     `yaml:"price" json:"price"`
	CapPrice decimal.Decimal `yaml:"cap_price" json:"cap_price"`
}

func (e Windowsill) Key(name string) string {
	switch name {
	case types.AttrCity:
		return e.City
	case types.AttrBrand:
		return e.Brand
	case types.AttrColor:
		return e.Color
	case types.AttrTexture:
		return e.Texture
	case types.AttrWidthMM:
		return strconv.Itoa(e.WidthMM)
	}
	return ""
}

// Drip is a drip cap row; Price is per running meter
type Drip struct {
	WidthMM int         `yaml:"width_mm" json:"width_mm"`
	Price   types.Money `yaml:"price" json:"price"`
}

func (e Drip) Key(name string) string {
	if name == types.AttrWidthMM {
		return strconv.Itoa(e.WidthMM)
	}
	return ""
}

// SecurityFilm is a security film row; Price is per m²
type SecurityFilm struct {
	Thickness int         `yaml:"thickness" json:"thickness"`
	Price     types.Money `yaml:"price" json:"price"`
}

func (e SecurityFilm) Key(name string) string {
	if name == types.AttrThickness {
		return strconv.Itoa(e.Thickness)
	}
	return ""
}

// FilmThicknesses is the closed set of film thicknesses in microns
var FilmThicknesses = []int{100, 200, 300}

// IsFilmThickness reports whether t is an offered film thickness
func IsFilmThickness(t int) bool {
	for _, known := range FilmThicknesses {
		if t == known {
			return true
		}
	}
	return false
}

// KeyNames returns the lookup key columns of a category, in filter order
func KeyNames(category types.Category) []string {
	switch category {
	case types.CategoryHorizontalBlinds:
		return []string{types.AttrBlindType, types.AttrColor}
	case types.CategoryRollerBlinds:
		return []string{types.AttrSystemType, types.AttrFabric}
	case types.CategoryMosquitoNet:
		return []string{types.AttrProfile, types.AttrColor}
	case types.CategoryGlassUnit:
		return []string{types.AttrCity, types.AttrGlassType}
	case types.CategoryWindowsill:
		return []string{types.AttrCity, types.AttrBrand, types.AttrColor, types.AttrTexture, types.AttrWidthMM}
	case types.CategoryDrip:
		return []string{types.AttrWidthMM}
	case types.CategorySecurityFilm:
		return []string{types.AttrThickness}
	default:
		return nil
	}
}
