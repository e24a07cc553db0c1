package types

import "github.com/shopspring/decimal"

// Query is one caller request: category, attribute selections and dimensions.
// Width and Height are meters for area-based categories; Length is meters
// for windowsill and drip.
type Query struct {
	Category   Category          `json:"category" yaml:"category"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	Width  decimal.Decimal `json:"width" yaml:"width"`
	Height decimal.Decimal `json:"height" yaml:"height"`
	Length decimal.Decimal `json:"length" yaml:"length"`

	// Caps is the number of windowsill end caps
	Caps int `json:"caps,omitempty" yaml:"caps,omitempty"`

	// AlternateFinish selects the roller-blind alternate (brown) finish
	AlternateFinish bool `json:"alternate_finish,omitempty" yaml:"alternate_finish,omitempty"`

	// CornerCut adds the mosquito-net 45 degree corner cut
	CornerCut bool `json:"corner_cut,omitempty" yaml:"corner_cut,omitempty"`
}

// Attr returns an attribute value
func (q Query) Attr(name string) (string, bool) {
	v, ok := q.Attributes[name]
	return v, ok
}

// WithAttr returns a copy of q with one attribute set
func (q Query) WithAttr(name, value string) Query {
	attrs := make(map[string]string, len(q.Attributes)+1)
	for k, v := range q.Attributes {
		attrs[k] = v
	}
	attrs[name] = value
	q.Attributes = attrs
	return q
}
