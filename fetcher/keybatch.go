package fetcher

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"

	"github.com/hupe1980/vecfed/model"
)

// KeyBatch fetches a frozen, ordered list of keys in fixed-size batches
// using GetVectors. Keys are never reordered or deduplicated; callers
// that want distinct keys deduplicate before construction.
type KeyBatch struct {
	cfg       Config
	keys      []string
	batchSize int

	cursor       int
	totalFetched int64
}

// NewKeyBatch creates a fetcher for the given ordered key list. The key
// slice is owned by the fetcher after the call.
func NewKeyBatch(cfg Config, keys []string) *KeyBatch {
	size := cfg.KeyBatchSize
	if size <= 0 {
		size = DefaultKeyBatchSize
	}
	return &KeyBatch{
		cfg:       cfg,
		keys:      keys,
		batchSize: size,
	}
}

// HasNext reports whether unrequested keys remain under the row limit.
func (f *KeyBatch) HasNext() bool {
	return f.cursor < len(f.keys) && (f.cfg.Limit <= 0 || f.totalFetched < f.cfg.Limit)
}

// Next fetches one batch of keys. A key absent from the store produces
// no item and is not an error, so the returned batch may be smaller than
// the requested key slice.
func (f *KeyBatch) Next(ctx context.Context) ([]model.Vector, error) {
	end := min(f.cursor+f.batchSize, len(f.keys))
	if f.cfg.Limit > 0 {
		if remaining := f.cfg.Limit - f.totalFetched; int64(end-f.cursor) > remaining {
			end = f.cursor + int(remaining)
		}
	}
	batchKeys := f.keys[f.cursor:end]

	out, err := f.cfg.Client.GetVectors(ctx, &s3vectors.GetVectorsInput{
		VectorBucketName: aws.String(f.cfg.Table.Bucket),
		IndexName:        aws.String(f.cfg.Table.Index),
		Keys:             batchKeys,
		ReturnData:       f.cfg.FetchEmbedding,
		ReturnMetadata:   f.cfg.FetchMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("get vectors %s: %w", f.cfg.Table, err)
	}

	batch := make([]model.Vector, 0, len(out.Vectors))
	for _, item := range out.Vectors {
		v, err := toVector(aws.ToString(item.Key), item.Data, item.Metadata, f.cfg.FetchEmbedding, f.cfg.FetchMetadata)
		if err != nil {
			return nil, err
		}
		batch = append(batch, v)
	}

	// Advance by requested keys, not returned items, so the fetcher
	// cannot stall on keys missing from the store.
	f.cursor = end
	f.totalFetched += int64(len(batch))

	f.cfg.logger().DebugContext(ctx, "fetched key batch",
		"requested", len(batchKeys),
		"returned", len(batch),
		"cursor", f.cursor,
		"total", f.totalFetched,
		"limit", f.cfg.Limit,
	)

	return batch, nil
}
