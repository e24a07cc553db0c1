package primitives

import "github.com/shopspring/decimal"

// Area returns width × height
func Area(width, height decimal.Decimal) decimal.Decimal {
	return width.Mul(height)
}

// Clamp raises actual to minimum when it is below it. A zero minimum means
// the category has none.
func Clamp(actual, minimum decimal.Decimal, unit Unit) Dimension {
	billed := actual
	if actual.LessThan(minimum) {
		billed = minimum
	}
	return Dimension{
		Actual:  actual,
		Billed:  billed,
		Minimum: minimum,
		Unit:    unit,
	}
}

// ResolveArea computes the area of width × height and clamps it
func ResolveArea(width, height, minimum decimal.Decimal) Dimension {
	return Clamp(Area(width, height), minimum, UnitSquareMeter)
}

// ResolveLength clamps a running length
func ResolveLength(length, minimum decimal.Decimal) Dimension {
	return Clamp(length, minimum, UnitMeter)
}

// SheetCount returns the smallest whole number of sheets covering area.
// Purchase and cutting scale with this step function, never with raw area.
// The quotient is taken with an exact remainder; Div would round it first.
func SheetCount(area, sheetArea decimal.Decimal) int64 {
	q, r := area.QuoRem(sheetArea, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.IntPart()
}
