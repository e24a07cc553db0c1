package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// DefaultBatchConcurrency bounds the goroutines used by Batch
const DefaultBatchConcurrency = 8

// BatchItem is the outcome of one query in a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Query  types.Query
	Result *types.QuoteResult
	Err    error
}

// Batch quotes every query concurrently and returns the outcomes in input
// order. A failing query never aborts the others; only cancellation of ctx
// stops the batch, in which case the unquoted items carry ctx's error.
func (d *Dispatcher) Batch(ctx context.Context, queries []types.Query, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range queries {
		i, q := i, q
		items[i].Query = q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = apperrors.Wrap(apperrors.TypeInternal, "batch cancelled", err)
				return err
			}
			items[i].Result, items[i].Err = d.Quote(q)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

// Failed counts the items that carry an error
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
