// Package concurrency provides the bounded-parallelism fan-out primitive
// C13 uses to price positions. The engine has no portfolio-level fan-out;
// each ComputeSnapshot call handles one portfolio.
package concurrency

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn(item) for every element of items with at most limit goroutines
// in flight at once, preserving the input order in the returned results. It
// returns the first error encountered (per errgroup semantics) and cancels
// ctx for the remaining in-flight work, though already-queued goroutines
// still run to completion cooperatively.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MapTolerant is Map's per-item-error-tolerant variant: a failing item's
// error is captured alongside a zero result rather than aborting the whole
// batch, so a single bad position only downgrades that position instead of
// the whole run. The returned error slice is parallel to results; a nil
// entry means that item succeeded.
func MapTolerant[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(gctx, item)
			results[i] = r
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()
	return results, errs
}
