// Package fetcher turns one table read into a bounded sequence of remote
// S3 Vectors calls. A fetcher instance is bound to one (bucket, index,
// strategy) tuple for its lifetime and is never reused across reads.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3vectors/document"
	vtypes "github.com/aws/aws-sdk-go-v2/service/s3vectors/types"

	"github.com/hupe1980/vecfed/model"
	"github.com/hupe1980/vecfed/s3vec"
)

const (
	// MaxKeyBatchSize is the documented server-side maximum number of keys
	// per GetVectors call.
	MaxKeyBatchSize = 100

	// DefaultKeyBatchSize leaves margin below the server limit.
	DefaultKeyBatchSize = 80

	// MaxScanPageSize is the server-side maximum page size for ListVectors.
	MaxScanPageSize = 1000
)

// Fetcher pulls batches of vectors from a remote index.
//
// HasNext reports whether another Next call may yield items. Next issues
// exactly one remote call and returns the mapped batch; an empty batch
// with HasNext still true is legal (a scan page can be empty while more
// pages remain). Any remote error is fatal for the read and returned
// unretried.
type Fetcher interface {
	HasNext() bool
	Next(ctx context.Context) ([]model.Vector, error)
}

// Config carries everything a fetcher is bound to for its lifetime.
type Config struct {
	Client s3vec.Client
	Table  model.TableRef

	// FetchEmbedding and FetchMetadata control which payload fields the
	// remote call returns. Unrequested payload, especially the embedding
	// array, is never transferred.
	FetchEmbedding bool
	FetchMetadata  bool

	// Limit caps the total rows fetched across all batches. Zero or
	// negative means unbounded.
	Limit int64

	// PageSize is the ListVectors page size; zero lets the service choose.
	PageSize int32

	// KeyBatchSize is the number of keys per GetVectors call; zero means
	// DefaultKeyBatchSize. Values above MaxKeyBatchSize are rejected by
	// the connector before a fetcher is built.
	KeyBatchSize int

	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ColumnFlags reports whether the embedding and metadata columns must be
// fetched, given the requested output columns minus any supplied
// out-of-band by the split descriptor.
func ColumnFlags(requested []string, split map[string]string) (embedding, metadata bool) {
	for _, col := range requested {
		if _, fromSplit := split[col]; fromSplit {
			continue
		}
		switch col {
		case model.ColEmbedding:
			embedding = true
		case model.ColMetadata:
			metadata = true
		}
	}
	return embedding, metadata
}

// toVector maps one remote response entry to a model.Vector. The store
// may echo payload fields that were not asked for; they are dropped here
// so emitted rows stay null for unrequested columns.
func toVector(key string, data vtypes.VectorData, meta document.Interface, withData, withMeta bool) (model.Vector, error) {
	v := model.Vector{Key: key}

	if withData && data != nil {
		if f32, ok := data.(*vtypes.VectorDataMemberFloat32); ok {
			v.Data = f32.Value
		}
	}

	if withMeta && meta != nil {
		raw, err := meta.MarshalSmithyDocument()
		if err != nil {
			return model.Vector{}, fmt.Errorf("marshal metadata of vector %q: %w", key, err)
		}
		v.Metadata = raw
	}

	return v, nil
}
