// Package reader drives a fetcher to exhaustion, cancellation or row
// limit, feeding every fetched vector through the row emitter into the
// host's row sink.
package reader

import (
	"context"
	"log/slog"

	"github.com/hupe1980/vecfed/fetcher"
	"github.com/hupe1980/vecfed/sink"
)

// StatusFunc reports whether the originating query is still active. It
// must be side-effect free and safe to call repeatedly; it is polled
// once per batch.
type StatusFunc func() bool

// Options configures a Reader.
type Options struct {
	// Prefetch enables bounded read-ahead: the next remote call may run
	// while the current batch is being emitted. At most one batch is
	// buffered; emit order and row limits are unchanged.
	Prefetch bool

	Logger *slog.Logger
}

// Reader is the read orchestrator for one split. It owns its fetcher
// exclusively and is discarded after one Read.
type Reader struct {
	fetcher  fetcher.Fetcher
	sink     sink.Sink
	active   StatusFunc
	prefetch bool
	log      *slog.Logger
}

// New creates a Reader. active may be nil, in which case the query is
// considered active until the fetcher is exhausted.
func New(f fetcher.Fetcher, snk sink.Sink, active StatusFunc, opts *Options) *Reader {
	if opts == nil {
		opts = &Options{}
	}
	if active == nil {
		active = func() bool { return true }
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reader{
		fetcher:  f,
		sink:     snk,
		active:   active,
		prefetch: opts.Prefetch,
		log:      log,
	}
}

// Read pulls batches until the fetcher is exhausted or the query goes
// inactive. Exiting on cancellation is a normal termination, not an
// error. Remote errors abort the read and propagate unretried. Returns
// the number of rows written to the sink.
func (r *Reader) Read(ctx context.Context) (int64, error) {
	if r.prefetch {
		return r.readPrefetch(ctx)
	}

	var rows int64
	for r.fetcher.HasNext() && r.active() {
		batch, err := r.fetcher.Next(ctx)
		if err != nil {
			return rows, err
		}
		for _, v := range batch {
			n, err := r.sink.WriteRow(ctx, Emit(v))
			if err != nil {
				return rows, err
			}
			rows += int64(n)
		}
	}

	r.log.DebugContext(ctx, "read finished", "rows", rows)
	return rows, nil
}
