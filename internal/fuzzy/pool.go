package fuzzy

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchSearch evaluates many queries against the engine concurrently, with
// at most workers queries in flight. Scorer scratch buffers are drawn from
// a pool so no two goroutines ever share one, which keeps concurrent
// searching safe over the engine's immutable index. AddAll must not run
// while a batch is in flight.
//
// The result slice is parallel to queries. A cancelled context abandons
// unstarted queries and returns the context error.
func (e *Engine[T]) BatchSearch(ctx context.Context, queries []string, opts *SearchOptions, workers int) ([][]Result[T], error) {
	if workers < 1 {
		workers = 1
	}
	o := resolveOptions(opts)
	out := make([][]Result[T], len(queries))

	pool := sync.Pool{
		New: func() any { return newScorerSet(e.opts.bitParallel, e.opts.trim) },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			scorers := pool.Get().(*scorerSet)
			defer pool.Put(scorers)
			out[i] = e.searchWith(q, o, scorers)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
