// Package catalog - Catalog validation
// Rows are checked once so malformed data fails at construction, not at
// quote time.
package catalog

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"window-quote/core/types"
)

// ValidationRule checks one aspect of the whole catalog
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateKeysPopulated,
		validatePrices,
		validateAuxiliaryFields,
		validateGlassParams,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error
	for _, rule := range rules {
		errors = append(errors, rule(c)...)
	}
	return errors
}

// validateKeysPopulated ensures every key column of every row is non-empty
func validateKeysPopulated(c *Catalog) []error {
	var errors []error
	for _, category := range types.AllCategories() {
		names := KeyNames(category)
		for i, row := range c.entries(category) {
			for _, name := range names {
				v := row.Key(name)
				if strings.TrimSpace(v) == "" || v == "0" {
					errors = append(errors, rowError(category, i, "missing key %q", name))
				}
			}
		}
	}
	return errors
}

// validatePrices ensures unit prices are positive with a known currency
func validatePrices(c *Catalog) []error {
	var errors []error
	check := func(category types.Category, i int, m types.Money) {
		if !m.Currency.IsValid() {
			errors = append(errors, rowError(category, i, "unknown currency %q", m.Currency))
		}
		if !m.Amount.IsPositive() {
			errors = append(errors, rowError(category, i, "price must be positive, got %s", m.Amount))
		}
	}
	for i, r := range c.tables.HorizontalBlinds {
		check(types.CategoryHorizontalBlinds, i, r.Price)
	}
	for i, r := range c.tables.RollerBlinds {
		check(types.CategoryRollerBlinds, i, r.Price)
	}
	for i, r := range c.tables.MosquitoNets {
		check(types.CategoryMosquitoNet, i, r.Price)
	}
	for i, r := range c.tables.GlassUnits {
		check(types.CategoryGlassUnit, i, r.Price)
	}
	for i, r := range c.tables.Windowsills {
		check(types.CategoryWindowsill, i, r.Price)
	}
	for i, r := range c.tables.Drips {
		check(types.CategoryDrip, i, r.Price)
	}
	for i, r := range c.tables.SecurityFilms {
		check(types.CategorySecurityFilm, i, r.Price)
	}
	return errors
}

// validateAuxiliaryFields checks the category-specific non-key fields
func validateAuxiliaryFields(c *Catalog) []error {
	var errors []error
	for i, r := range c.tables.HorizontalBlinds {
		if r.Commission != nil && r.Commission.IsNegative() {
			errors = append(errors, rowError(types.CategoryHorizontalBlinds, i, "negative commission"))
		}
	}
	for i, r := range c.tables.MosquitoNets {
		if r.MinArea.IsNegative() {
			errors = append(errors, rowError(types.CategoryMosquitoNet, i, "negative min_area"))
		}
		if r.Commission.IsNegative() {
			errors = append(errors, rowError(types.CategoryMosquitoNet, i, "negative commission"))
		}
	}
	for i, r := range c.tables.GlassUnits {
		if r.Chambers < 1 {
			errors = append(errors, rowError(types.CategoryGlassUnit, i, "chambers must be at least 1, got %d", r.Chambers))
		}
	}
	for i, r := range c.tables.Windowsills {
		if r.WidthMM < 0 {
			errors = append(errors, rowError(types.CategoryWindowsill, i, "negative width_mm"))
		}
		if r.CapPrice.IsNegative() {
			errors = append(errors, rowError(types.CategoryWindowsill, i, "negative cap_price"))
		}
	}
	for i, r := range c.tables.Drips {
		if r.WidthMM < 0 {
			errors = append(errors, rowError(types.CategoryDrip, i, "negative width_mm"))
		}
	}
	for i, r := range c.tables.SecurityFilms {
		if !IsFilmThickness(r.Thickness) {
			errors = append(errors, rowError(types.CategorySecurityFilm, i, "thickness %d not in %v", r.Thickness, FilmThicknesses))
		}
	}
	return errors
}

// validateGlassParams ensures commissions are non-negative and markups
// never discount the purchase price
func validateGlassParams(c *Catalog) []error {
	var errors []error
	for key, v := range c.tables.GlassParams {
		switch {
		case strings.HasPrefix(key, glassMarkupPrefix):
			if v.LessThan(decimal.NewFromInt(1)) {
				errors = append(errors, fmt.Errorf("glass_params[%s]: markup must be >= 1, got %s", key, v))
			}
		case strings.HasPrefix(key, glassCommissionPrefix):
			if v.IsNegative() {
				errors = append(errors, fmt.Errorf("glass_params[%s]: negative commission", key))
			}
		default:
			errors = append(errors, fmt.Errorf("glass_params[%s]: unknown key", key))
		}
	}
	return errors
}

func rowError(category types.Category, i int, format string, args ...interface{}) error {
	return fmt.Errorf("%s[%d]: %s", category, i, fmt.Sprintf(format, args...))
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
