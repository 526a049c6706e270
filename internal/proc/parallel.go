package proc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Parallel runs every spec concurrently and returns the results in input
// order. Non-zero exits are reported in the results; the returned error is
// the first failure to start a process, which also cancels the others.
func Parallel(ctx context.Context, specs ...Spec) ([]*Result, error) {
	results := make([]*Result, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			res, err := Run(ctx, spec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
