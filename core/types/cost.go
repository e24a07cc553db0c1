// Package types - Quote and cost component types
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	// CurrencyUAH is the local currency every quote is expressed in
	CurrencyUAH Currency = "UAH"

	// CurrencyUSD is the foreign currency some suppliers price in
	CurrencyUSD Currency = "USD"
)

// LocalCurrency is the currency of every QuoteResult
const LocalCurrency = CurrencyUAH

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// IsValid checks if the currency is known
func (c Currency) IsValid() bool {
	return c == CurrencyUAH || c == CurrencyUSD
}

// IsForeign reports whether amounts in c need conversion
func (c Currency) IsForeign() bool {
	return c != LocalCurrency
}

// Money is an amount tagged with its currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency Currency        `json:"currency" yaml:"currency"`
}

// Local creates a local-currency amount
func Local(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: LocalCurrency}
}

// Foreign creates a USD amount
func Foreign(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: CurrencyUSD}
}

// String returns the formatted amount
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// CostComponent is one named line item in an itemized quote
type CostComponent struct {
	// Name is a stable machine identifier (e.g. "purchase", "master")
	Name string `json:"name"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Amount is the non-negative amount in the quote currency
	Amount decimal.Decimal `json:"amount"`
}

// QuoteResult is an itemized price quote
type QuoteResult struct {
	// Category is the quoted product line
	Category Category `json:"category"`

	// Components is the ordered itemized breakdown
	Components []CostComponent `json:"components"`

	// Total is the exact sum of Components
	Total decimal.Decimal `json:"total"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`

	// Note explains clamped or derived dimensions
	Note string `json:"note,omitempty"`
}

// NewQuoteResult creates an empty quote in the local currency
func NewQuoteResult(category Category) *QuoteResult {
	return &QuoteResult{
		Category:   category,
		Components: make([]CostComponent, 0, 6),
		Total:      decimal.Zero,
		Currency:   LocalCurrency,
	}
}

// Add appends a component and folds it into the total
func (r *QuoteResult) Add(name, label string, amount decimal.Decimal) {
	r.Components = append(r.Components, CostComponent{
		Name:   name,
		Label:  label,
		Amount: amount,
	})
	r.Total = r.Total.Add(amount)
}

// Component returns the component with the given name
func (r *QuoteResult) Component(name string) (CostComponent, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return CostComponent{}, false
}

// Sum recomputes the sum of all components
func (r *QuoteResult) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range r.Components {
		sum = sum.Add(c.Amount)
	}
	return sum
}

// Verify checks the result invariants: non-negative components and an
// exact total.
func (r *QuoteResult) Verify() error {
	for _, c := range r.Components {
		if c.Amount.IsNegative() {
			return fmt.Errorf("component %q is negative: %s", c.Name, c.Amount)
		}
	}
	if sum := r.Sum(); !sum.Equal(r.Total) {
		return fmt.Errorf("total %s does not equal component sum %s", r.Total, sum)
	}
	return nil
}
