// Package primitives - Centralized pricing math
// Calculators declare which components they bill; the arithmetic shared by
// all of them lives here.
package primitives

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit names a billing dimension
type Unit string

const (
	UnitSquareMeter Unit = "m²"
	UnitMeter       Unit = "m"
)

// Dimension is a resolved billing dimension. Billed is never below Minimum;
// Actual keeps the measured value for the quote note.
type Dimension struct {
	Actual  decimal.Decimal
	Billed  decimal.Decimal
	Minimum decimal.Decimal
	Unit    Unit
}

// Clamped reports whether the minimum raised the billed value
func (d Dimension) Clamped() bool {
	return !d.Billed.Equal(d.Actual)
}

// Note describes the billed dimension for the quote note
func (d Dimension) Note() string {
	if d.Clamped() {
		return fmt.Sprintf("billed %s %s (measured %s %s, minimum %s %s)",
			d.Billed.StringFixed(2), d.Unit, d.Actual.StringFixed(2), d.Unit, d.Minimum.String(), d.Unit)
	}
	if d.Minimum.IsPositive() {
		return fmt.Sprintf("billed %s %s (minimum %s %s)", d.Billed.StringFixed(2), d.Unit, d.Minimum.String(), d.Unit)
	}
	return fmt.Sprintf("billed %s %s", d.Billed.StringFixed(2), d.Unit)
}
