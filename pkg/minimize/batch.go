package minimize

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch calls f for every input with at most limit calls in flight,
// or without a limit when limit < 1. Results are returned in input
// order. The first failure cancels the context handed to the calls
// still running and is the error returned.
//
// Each call must own its state: itemizers in particular are not safe
// to share between concurrent jobs.
func Batch[In, Out any](ctx context.Context, limit int, in []In, f func(context.Context, In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range in {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := f(ctx, in[i])
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
