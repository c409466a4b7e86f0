package fetcher

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"

	"github.com/hupe1980/vecfed/model"
)

// TableScan pages through an entire index using the opaque continuation
// token returned by ListVectors.
type TableScan struct {
	cfg Config

	nextToken    *string
	exhausted    bool
	page         int
	totalFetched int64
}

// NewTableScan creates a fetcher that scans the whole index.
func NewTableScan(cfg Config) *TableScan {
	return &TableScan{cfg: cfg}
}

// HasNext reports whether another page may yield rows. Once false it
// stays false.
func (f *TableScan) HasNext() bool {
	return !f.exhausted && (f.cfg.Limit <= 0 || f.totalFetched < f.cfg.Limit)
}

// Next fetches one page. The returned batch may be empty while more
// pages remain; callers loop on HasNext rather than on batch size.
func (f *TableScan) Next(ctx context.Context) ([]model.Vector, error) {
	input := &s3vectors.ListVectorsInput{
		VectorBucketName: aws.String(f.cfg.Table.Bucket),
		IndexName:        aws.String(f.cfg.Table.Index),
		ReturnData:       f.cfg.FetchEmbedding,
		ReturnMetadata:   f.cfg.FetchMetadata,
	}
	if f.cfg.PageSize > 0 {
		input.MaxResults = aws.Int32(f.cfg.PageSize)
	}
	if f.nextToken != nil {
		input.NextToken = f.nextToken
	}

	out, err := f.cfg.Client.ListVectors(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list vectors %s: %w", f.cfg.Table, err)
	}
	f.page++

	batch := make([]model.Vector, 0, len(out.Vectors))
	for _, item := range out.Vectors {
		v, err := toVector(aws.ToString(item.Key), item.Data, item.Metadata, f.cfg.FetchEmbedding, f.cfg.FetchMetadata)
		if err != nil {
			return nil, err
		}
		batch = append(batch, v)
	}

	// The limit can be hit mid-page; truncate instead of waiting for the
	// store to signal end-of-pages.
	if f.cfg.Limit > 0 && f.totalFetched+int64(len(batch)) > f.cfg.Limit {
		batch = batch[:f.cfg.Limit-f.totalFetched]
		f.exhausted = true
	}
	f.totalFetched += int64(len(batch))

	f.nextToken = out.NextToken
	if f.nextToken == nil {
		f.exhausted = true
	}

	f.cfg.logger().DebugContext(ctx, "fetched scan page",
		"page", f.page,
		"rows", len(batch),
		"total", f.totalFetched,
		"limit", f.cfg.Limit,
	)

	return batch, nil
}
