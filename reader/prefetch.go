package reader

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecfed/model"
)

// readPrefetch overlaps the next remote call with emission of the
// current batch. The capacity-1 channel bounds read-ahead to one batch;
// cancellation is checked before every remote call; a single consumer
// keeps emit order identical to the pull-based loop.
func (r *Reader) readPrefetch(ctx context.Context) (int64, error) {
	var rows int64
	batches := make(chan []model.Vector, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		for r.fetcher.HasNext() && r.active() {
			batch, err := r.fetcher.Next(gctx)
			if err != nil {
				return err
			}
			select {
			case batches <- batch:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for batch := range batches {
			for _, v := range batch {
				n, err := r.sink.WriteRow(gctx, Emit(v))
				if err != nil {
					return err
				}
				rows += int64(n)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return rows, err
	}

	r.log.DebugContext(ctx, "read finished", "rows", rows, "prefetch", true)
	return rows, nil
}
