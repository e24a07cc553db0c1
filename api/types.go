// Package api - API types for quoting
// These types define the contract for the quote endpoints.
// API is stateless and deterministic: equal requests yield equal results.
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"window-quote/core/types"
)

// QuoteRequest is the body of POST /quotes/:category
type QuoteRequest struct {
	// Attributes are the categorical selections, e.g. "color": "Білий"
	Attributes map[string]string `json:"attributes"`

	// Dimensions in meters; width/height for area categories, length for
	// windowsill and drip
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Length decimal.Decimal `json:"length"`

	// Options
	Caps            int  `json:"caps,omitempty"`
	AlternateFinish bool `json:"alternate_finish,omitempty"`
	CornerCut       bool `json:"corner_cut,omitempty"`
}

// Query converts the request to an engine query
func (r QuoteRequest) Query(category types.Category) types.Query {
	return types.Query{
		Category:        category,
		Attributes:      r.Attributes,
		Width:           r.Width,
		Height:          r.Height,
		Length:          r.Length,
		Caps:            r.Caps,
		AlternateFinish: r.AlternateFinish,
		CornerCut:       r.CornerCut,
	}
}

// BatchRequest is the body of POST /quotes/batch
type BatchRequest struct {
	Quotes []types.Query `json:"quotes"`
}

// QuoteResponse is the output of POST /quotes/:category
type QuoteResponse struct {
	// Request tracking
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	// Status is "success" or "error"
	Status string `json:"status"`

	Result *types.QuoteResult `json:"result,omitempty"`
	Error  *ErrorDetail       `json:"error,omitempty"`
}

// BatchResponse is the output of POST /quotes/batch
type BatchResponse struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	// Status is "success" when every quote succeeded, "partial" otherwise
	Status string `json:"status"`

	Items  []BatchItem `json:"items"`
	Failed int         `json:"failed"`
}

// BatchItem is one batch outcome, in request order
type BatchItem struct {
	Index  int                `json:"index"`
	Result *types.QuoteResult `json:"result,omitempty"`
	Error  *ErrorDetail       `json:"error,omitempty"`
}

// ErrorDetail describes a failed request or quote
type ErrorDetail struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Category string            `json:"category,omitempty"`
	Key      string            `json:"key,omitempty"`
	Value    string            `json:"value,omitempty"`
	Keys     map[string]string `json:"keys,omitempty"`
}

// CategoryInfo describes one quotable category
type CategoryInfo struct {
	ID          types.Category `json:"id"`
	Name        string         `json:"name"`
	LengthBased bool           `json:"length_based"`
	Keys        []string       `json:"keys"`
}

// Status values
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)
