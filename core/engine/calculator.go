// Package engine provides the quote computation engine.
// CLI and HTTP API are thin wrappers around the Dispatcher.
package engine

import (
	"window-quote/core/catalog"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// Calculator prices one category. Compute is a pure function of its inputs:
// it performs no I/O and never mutates the catalog or tariff. Every failure
// is returned as a typed error, never a partial result.
type Calculator interface {
	// Category returns the category this calculator prices
	Category() types.Category

	// Compute returns the itemized quote for q
	Compute(q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error)
}

// Component names shared across calculators.
const (
	ComponentPurchase        = "purchase"
	ComponentMaster          = "master"
	ComponentMargin          = "margin"
	ComponentMarkup          = "markup"
	ComponentDelivery        = "delivery"
	ComponentFuel            = "fuel"
	ComponentApplication     = "application"
	ComponentBudget          = "budget"
	ComponentLandscape       = "landscape_surcharge"
	ComponentAlternateFinish = "alternate_finish_surcharge"
	ComponentCornerCut       = "corner_cut"
	ComponentCaps            = "caps"
	ComponentCutting         = "cutting"
)
