package primitives

import (
	"github.com/shopspring/decimal"

	"window-quote/core/types"
)

// ToLocal converts a catalog price to the local currency. Foreign prices are
// multiplied by rate; local prices pass through unchanged, so applying it to
// an already converted price never converts twice.
func ToLocal(price types.Money, rate decimal.Decimal) types.Money {
	if !price.Currency.IsForeign() {
		return price
	}
	return types.Local(price.Amount.Mul(rate))
}

// PerUnit bills rate for every unit of quantity
func PerUnit(rate, quantity decimal.Decimal) decimal.Decimal {
	return rate.Mul(quantity)
}

// Percent returns percent % of amount
func Percent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}
