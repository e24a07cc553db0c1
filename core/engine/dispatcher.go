package engine

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "window-quote/internal/errors"
	"window-quote/internal/logging"

	"window-quote/core/catalog"
	"window-quote/core/tariff"
	"window-quote/core/types"
)

// Dispatcher routes a query to the calculator of its category. It is the
// single entry point used by the CLI and the HTTP API.
//
// The catalog and tariff are shared read-only by every call, so a
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	catalog  *catalog.Catalog
	tariff   *tariff.Tariff
}

// New creates a dispatcher over the default calculators. The tariff is
// validated here so a missing constant fails at startup, not during a quote.
func New(cat *catalog.Catalog, t *tariff.Tariff) (*Dispatcher, error) {
	return NewWithRegistry(DefaultRegistry(), cat, t)
}

// NewWithRegistry creates a dispatcher over a custom registry
func NewWithRegistry(registry *Registry, cat *catalog.Catalog, t *tariff.Tariff) (*Dispatcher, error) {
	if cat == nil {
		return nil, apperrors.New(apperrors.TypeConfig, "catalog is required")
	}
	if t == nil {
		return nil, apperrors.New(apperrors.TypeConfig, "tariff is required")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := checkCatalogCommission(cat, t); err != nil {
		return nil, err
	}
	return &Dispatcher{
		registry: registry,
		catalog:  cat,
		tariff:   t,
	}, nil
}

// checkCatalogCommission requires every horizontal blinds row to carry a
// commission when the tariff sources it from the catalog.
func checkCatalogCommission(cat *catalog.Catalog, t *tariff.Tariff) error {
	if t.HorizontalBlinds.CommissionSource != tariff.CommissionFromCatalog {
		return nil
	}
	for i, row := range cat.HorizontalBlinds() {
		if row.Commission == nil {
			return apperrors.ConfigMissing(string(types.CategoryHorizontalBlinds),
				fmt.Sprintf("horizontal_blinds[%d].commission", i)).
				WithContext(apperrors.ContextKeys, map[string]string{
					types.AttrBlindType: row.BlindType,
					types.AttrColor:     row.Color,
				})
		}
	}
	return nil
}

// Catalog returns the catalog quotes are computed against
func (d *Dispatcher) Catalog() *catalog.Catalog {
	return d.catalog
}

// Tariff returns the tariff quotes are computed against
func (d *Dispatcher) Tariff() *tariff.Tariff {
	return d.tariff
}

// Categories returns the categories this dispatcher can quote
func (d *Dispatcher) Categories() []types.Category {
	return d.registry.Categories()
}

// Quote dispatches q by its own category
func (d *Dispatcher) Quote(q types.Query) (*types.QuoteResult, error) {
	return d.Dispatch(q.Category, q)
}

// Dispatch computes the quote of q with the calculator of category. Every
// outcome is either a verified result or an *apperrors.Error; calculator
// panics are recovered and reported as TypeInternal.
func (d *Dispatcher) Dispatch(category types.Category, q types.Query) (result *types.QuoteResult, err error) {
	calc, ok := d.registry.Get(category)
	if !ok {
		return nil, apperrors.NotFoundKeys(string(category), apperrors.ContextCategory, string(category), q.Attributes)
	}
	q.Category = category

	defer func() {
		if r := recover(); r != nil {
			logging.Error("calculator panicked",
				zap.String("category", string(category)),
				zap.Any("panic", r),
			)
			result = nil
			err = withQueryContext(apperrors.Internal(string(category), fmt.Errorf("panic: %v", r)), q)
		}
	}()

	result, err = calc.Compute(q, d.catalog, d.tariff)
	if err != nil {
		typed, ok := apperrors.As(err)
		if !ok {
			typed = apperrors.Internal(string(category), err)
		}
		logging.Debug("quote failed",
			zap.String("category", string(category)),
			zap.String("type", string(typed.Type)),
			zap.Error(err),
		)
		return nil, withQueryContext(typed, q)
	}
	if err := result.Verify(); err != nil {
		logging.Error("quote failed verification",
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return nil, withQueryContext(apperrors.Internal(string(category), err), q)
	}

	logging.Debug("quote computed",
		zap.String("category", string(category)),
		zap.String("total", result.Total.String()),
		zap.Int("components", len(result.Components)),
	)
	return result, nil
}

// withQueryContext fills in the category and attempted keys when the
// calculator did not record them.
func withQueryContext(err *apperrors.Error, q types.Query) *apperrors.Error {
	if err.Category() == "" {
		err.WithContext(apperrors.ContextCategory, string(q.Category))
	}
	if err.Keys() == nil {
		keys := make(map[string]string, len(q.Attributes))
		for k, v := range q.Attributes {
			keys[k] = v
		}
		err.WithContext(apperrors.ContextKeys, keys)
	}
	return err
}

// Dispatch is a one-shot convenience that builds a Dispatcher for cat and
// t and quotes q with the calculator of category.
func Dispatch(category types.Category, q types.Query, cat *catalog.Catalog, t *tariff.Tariff) (*types.QuoteResult, error) {
	d, err := New(cat, t)
	if err != nil {
		return nil, err
	}
	return d.Dispatch(category, q)
}
