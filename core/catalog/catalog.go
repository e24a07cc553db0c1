// Package catalog - Read-only priced SKU tables per product category.
// Rows are validated once at construction; lookups never mutate state.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// Tables is the raw per-category data produced by the external loader
type Tables struct {
	HorizontalBlinds []HorizontalBlind `yaml:"horizontal_blinds" json:"horizontal_blinds"`
	RollerBlinds     []RollerBlind     `yaml:"roller_blinds" json:"roller_blinds"`
	MosquitoNets     []MosquitoNet     `yaml:"mosquito_nets" json:"mosquito_nets"`
	GlassUnits       []GlassUnit       `yaml:"glass_units" json:"glass_units"`
	Windowsills      []Windowsill      `yaml:"windowsills" json:"windowsills"`
	Drips            []Drip            `yaml:"drips" json:"drips"`
	SecurityFilms    []SecurityFilm    `yaml:"security_films" json:"security_films"`

	// GlassParams is the auxiliary glass unit table keyed by
	// GlassCommissionKey and GlassMarkupKey
	GlassParams map[string]decimal.Decimal `yaml:"glass_params" json:"glass_params"`
}

// Catalog is the validated, immutable catalog
type Catalog struct {
	tables Tables
}

// New validates tables and returns an immutable catalog. All row errors are
// reported together.
func New(tables Tables) (*Catalog, error) {
	c := &Catalog{tables: cloneTables(tables)}
	errs := c.Validate(DefaultValidationRules())
	if len(c.tables.GlassParams) != len(tables.GlassParams) {
		errs = append(errs, fmt.Errorf("glass_params: keys collide after case folding"))
	}
	if len(errs) > 0 {
		return nil, apperrors.Wrap(apperrors.TypeParsing,
			fmt.Sprintf("catalog has %d invalid rows", len(errs)), joinErrors(errs))
	}
	return c, nil
}

// MustNew panics if tables are invalid
func MustNew(tables Tables) *Catalog {
	c, err := New(tables)
	if err != nil {
		panic(err)
	}
	return c
}

// FindHorizontalBlind returns the first horizontal blinds row matching keys
func (c *Catalog) FindHorizontalBlind(keys map[string]string) (HorizontalBlind, error) {
	return Find(types.CategoryHorizontalBlinds, c.tables.HorizontalBlinds, keys)
}

// FindRollerBlind returns the first roller blinds row matching keys
func (c *Catalog) FindRollerBlind(keys map[string]string) (RollerBlind, error) {
	return Find(types.CategoryRollerBlinds, c.tables.RollerBlinds, keys)
}

// FindMosquitoNet returns the first mosquito net row matching keys
func (c *Catalog) FindMosquitoNet(keys map[string]string) (MosquitoNet, error) {
	return Find(types.CategoryMosquitoNet, c.tables.MosquitoNets, keys)
}

// FindCornerCut returns the first row of profile whose color contains the
// sentinel marker, case-insensitively.
func (c *Catalog) FindCornerCut(profile, marker string) (MosquitoNet, bool) {
	marker = strings.ToLower(marker)
	for _, row := range c.tables.MosquitoNets {
		if row.Profile == profile && strings.Contains(strings.ToLower(row.Color), marker) {
			return row, true
		}
	}
	return MosquitoNet{}, false
}

// FindGlassUnit returns the first glass unit row matching keys
func (c *Catalog) FindGlassUnit(keys map[string]string) (GlassUnit, error) {
	return Find(types.CategoryGlassUnit, c.tables.GlassUnits, keys)
}

// GlassParam returns a value from the auxiliary glass parameter table
func (c *Catalog) GlassParam(key string) (decimal.Decimal, bool) {
	v, ok := c.tables.GlassParams[strings.ToLower(key)]
	return v, ok
}

// FindWindowsill returns the first windowsill row matching keys
func (c *Catalog) FindWindowsill(keys map[string]string) (Windowsill, error) {
	return Find(types.CategoryWindowsill, c.tables.Windowsills, keys)
}

// FindDrip returns the first drip row matching keys
func (c *Catalog) FindDrip(keys map[string]string) (Drip, error) {
	return Find(types.CategoryDrip, c.tables.Drips, keys)
}

// FindSecurityFilm returns the first security film row matching keys
func (c *Catalog) FindSecurityFilm(keys map[string]string) (SecurityFilm, error) {
	return Find(types.CategorySecurityFilm, c.tables.SecurityFilms, keys)
}

// HorizontalBlinds returns a copy of the horizontal blinds table
func (c *Catalog) HorizontalBlinds() []HorizontalBlind {
	return append([]HorizontalBlind(nil), c.tables.HorizontalBlinds...)
}

// entries returns the rows of a category as generic entries
func (c *Catalog) entries(category types.Category) []Entry {
	switch category {
	case types.CategoryHorizontalBlinds:
		return asEntries(c.tables.HorizontalBlinds)
	case types.CategoryRollerBlinds:
		return asEntries(c.tables.RollerBlinds)
	case types.CategoryMosquitoNet:
		return asEntries(c.tables.MosquitoNets)
	case types.CategoryGlassUnit:
		return asEntries(c.tables.GlassUnits)
	case types.CategoryWindowsill:
		return asEntries(c.tables.Windowsills)
	case types.CategoryDrip:
		return asEntries(c.tables.Drips)
	case types.CategorySecurityFilm:
		return asEntries(c.tables.SecurityFilms)
	default:
		return nil
	}
}

func asEntries[E Entry](rows []E) []Entry {
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// Stats returns catalog statistics
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		Rows:        make(map[types.Category]int),
		Duplicates:  make(map[types.Category]int),
		GlassParams: len(c.tables.GlassParams),
	}
	for _, category := range types.AllCategories() {
		rows := c.entries(category)
		if rows == nil {
			continue
		}
		stats.Rows[category] = len(rows)
		stats.Total += len(rows)
		stats.Duplicates[category] = countDuplicates(category, rows)
	}
	return stats
}

// CatalogStats holds catalog statistics. Duplicates counts rows whose key
// tuple repeats an earlier row; lookups always select the earlier row.
type CatalogStats struct {
	Total       int
	Rows        map[types.Category]int
	Duplicates  map[types.Category]int
	GlassParams int
}

func countDuplicates(category types.Category, rows []Entry) int {
	names := KeyNames(category)
	seen := make(map[string]bool, len(rows))
	dups := 0
	for _, row := range rows {
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = row.Key(n)
		}
		key := strings.Join(parts, "\x00")
		if seen[key] {
			dups++
			continue
		}
		seen[key] = true
	}
	return dups
}

func cloneTables(t Tables) Tables {
	out := Tables{
		HorizontalBlinds: append([]HorizontalBlind(nil), t.HorizontalBlinds...),
		RollerBlinds:     append([]RollerBlind(nil), t.RollerBlinds...),
		MosquitoNets:     append([]MosquitoNet(nil), t.MosquitoNets...),
		GlassUnits:       append([]GlassUnit(nil), t.GlassUnits...),
		Windowsills:      append([]Windowsill(nil), t.Windowsills...),
		Drips:            append([]Drip(nil), t.Drips...),
		SecurityFilms:    append([]SecurityFilm(nil), t.SecurityFilms...),
		GlassParams:      make(map[string]decimal.Decimal, len(t.GlassParams)),
	}
	for k, v := range t.GlassParams {
		out.GlassParams[strings.ToLower(k)] = v
	}
	return out
}
