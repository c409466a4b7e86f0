package vecfed

import (
	"context"

	"github.com/hupe1980/vecfed/catalog"
	"github.com/hupe1980/vecfed/fetcher"
	"github.com/hupe1980/vecfed/model"
	"github.com/hupe1980/vecfed/reader"
	"github.com/hupe1980/vecfed/s3vec"
	"github.com/hupe1980/vecfed/sink"
)

// Connector federates SQL-engine reads against Amazon S3 Vectors
// indexes. It is safe for concurrent Read calls; each call builds its
// own fetcher and reader.
type Connector struct {
	client s3vec.Client
	opts   options
}

// New creates a Connector around the given data-plane client.
func New(client s3vec.Client, optFns ...Option) (*Connector, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	o := options{
		logger: NewLogger(nil),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.keyBatchSize < 0 || o.keyBatchSize > fetcher.MaxKeyBatchSize {
		return nil, &ErrKeyBatchSize{Size: o.keyBatchSize}
	}
	if o.pageSize < 0 || o.pageSize > fetcher.MaxScanPageSize {
		return nil, &ErrPageSize{Size: o.pageSize}
	}

	return &Connector{client: client, opts: o}, nil
}

// ReadRequest describes one bounded read (a split) issued by the host
// engine.
type ReadRequest struct {
	// QueryID is the host engine's identifier for the query this split
	// belongs to. Optional; used only for log correlation.
	QueryID string

	// Table is the index to read.
	Table model.TableRef

	// Columns are the requested output columns. Columns also present in
	// SplitProperties are supplied out-of-band and not fetched.
	Columns []string

	// SplitProperties is the opaque property map of the split being read.
	SplitProperties map[string]string

	// Summary is the predicate pushdown for this read. An equality
	// predicate on vector_id turns the read into a key lookup.
	Summary model.Summary

	// Limit caps the rows produced by this read; zero or negative means
	// unbounded.
	Limit int64
}

// Read executes one split: selects an access strategy, drives the
// fetcher to exhaustion, cancellation or limit, and writes every row to
// snk. active may be nil. Returns the number of rows written.
//
// Remote API failures abort the read and propagate unretried; the host
// engine owns retries at the split level.
func (c *Connector) Read(ctx context.Context, req ReadRequest, snk sink.Sink, active reader.StatusFunc) (int64, error) {
	log := c.opts.logger.WithTable(req.Table.Bucket, req.Table.Index)
	if req.QueryID != "" {
		log = log.WithQueryID(req.QueryID)
	}

	embedding, metadata := fetcher.ColumnFlags(req.Columns, req.SplitProperties)

	cfg := fetcher.Config{
		Client:         c.client,
		Table:          req.Table,
		FetchEmbedding: embedding,
		FetchMetadata:  metadata,
		Limit:          req.Limit,
		PageSize:       int32(c.opts.pageSize),
		KeyBatchSize:   c.opts.keyBatchSize,
		Logger:         log.Logger,
	}

	f, strategy := fetcher.Select(cfg, req.Summary)

	log = log.WithStrategy(string(strategy))
	log.Info("executing read",
		"fetch_embedding", embedding,
		"fetch_metadata", metadata,
		"limit", req.Limit,
	)

	r := reader.New(f, snk, active, &reader.Options{
		Prefetch: c.opts.prefetch,
		Logger:   log.Logger,
	})
	return r.Read(ctx)
}

// Catalog returns the metadata surface over the given control-plane
// client, sharing the connector's logger.
func (c *Connector) Catalog(ctrl catalog.Client) *catalog.Catalog {
	return catalog.New(ctrl, c.opts.logger.Logger)
}
