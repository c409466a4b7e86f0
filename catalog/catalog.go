// Package catalog exposes the metadata surface of the connector: vector
// buckets as schemas, indexes as tables, and the fixed 3-column table
// schema every index shares.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"

	"github.com/hupe1980/vecfed/model"
)

// Client is the interface for the S3 Vectors control-plane operations
// the catalog uses.
type Client interface {
	ListVectorBuckets(ctx context.Context, params *s3vectors.ListVectorBucketsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.ListVectorBucketsOutput, error)
	ListIndexes(ctx context.Context, params *s3vectors.ListIndexesInput, optFns ...func(*s3vectors.Options)) (*s3vectors.ListIndexesOutput, error)
	GetIndex(ctx context.Context, params *s3vectors.GetIndexInput, optFns ...func(*s3vectors.Options)) (*s3vectors.GetIndexOutput, error)
}

var _ Client = (*s3vectors.Client)(nil)

// ColumnType is the host-facing type of an output column.
type ColumnType string

const (
	TypeString      ColumnType = "string"
	TypeFloat32List ColumnType = "list<float32>"
)

// Column describes one column of the fixed output schema.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Comment  string
}

// Schema returns the fixed 3-column schema every index is exposed with.
func Schema() []Column {
	return []Column{
		{Name: model.ColVectorID, Type: TypeString, Nullable: false, Comment: "Vector's unique ID."},
		{Name: model.ColEmbedding, Type: TypeFloat32List, Nullable: true, Comment: "Array of float32 for vector data."},
		{Name: model.ColMetadata, Type: TypeString, Nullable: true, Comment: "Metadata about the vector."},
	}
}

// Table is the resolved definition of one index.
type Table struct {
	Ref     model.TableRef
	Columns []Column

	// Index properties surfaced as table metadata.
	Dimension      int32
	DistanceMetric string
}

// Split is one bounded unit of read work. The connector produces a
// single split per table; columns named in Properties are treated as
// supplied out-of-band by the split descriptor.
type Split struct {
	Table      model.TableRef
	Properties map[string]string
}

// Catalog lists buckets and indexes and resolves table definitions.
type Catalog struct {
	client Client
	log    *slog.Logger
}

// New creates a Catalog. logger may be nil.
func New(client Client, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{client: client, log: logger}
}

// ListSchemas returns all vector bucket names, in service order.
func (c *Catalog) ListSchemas(ctx context.Context) ([]string, error) {
	var (
		names     []string
		nextToken *string
	)
	for {
		out, err := c.client.ListVectorBuckets(ctx, &s3vectors.ListVectorBucketsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list vector buckets: %w", err)
		}
		for _, b := range out.VectorBuckets {
			names = append(names, aws.ToString(b.VectorBucketName))
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	c.log.DebugContext(ctx, "listed schemas", "count", len(names))
	return names, nil
}

// ListTables returns all indexes in the bucket, in service order.
func (c *Catalog) ListTables(ctx context.Context, bucket string) ([]model.TableRef, error) {
	var (
		tables    []model.TableRef
		nextToken *string
	)
	for {
		out, err := c.client.ListIndexes(ctx, &s3vectors.ListIndexesInput{
			VectorBucketName: aws.String(bucket),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list indexes in %s: %w", bucket, err)
		}
		for _, idx := range out.Indexes {
			tables = append(tables, model.TableRef{
				Bucket: bucket,
				Index:  aws.ToString(idx.IndexName),
			})
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	c.log.DebugContext(ctx, "listed tables", "bucket", bucket, "count", len(tables))
	return tables, nil
}

// GetTable resolves one index into a table definition, verifying the
// index exists.
func (c *Catalog) GetTable(ctx context.Context, ref model.TableRef) (*Table, error) {
	out, err := c.client.GetIndex(ctx, &s3vectors.GetIndexInput{
		VectorBucketName: aws.String(ref.Bucket),
		IndexName:        aws.String(ref.Index),
	})
	if err != nil {
		return nil, fmt.Errorf("get index %s: %w", ref, err)
	}

	table := &Table{
		Ref:     ref,
		Columns: Schema(),
	}
	if out.Index != nil {
		table.Dimension = aws.ToInt32(out.Index.Dimension)
		table.DistanceMetric = string(out.Index.DistanceMetric)
	}
	return table, nil
}

// Splits returns the read units for one table: a single split covering
// the whole index. Partition planning belongs to the host engine.
func (c *Catalog) Splits(table model.TableRef) []Split {
	return []Split{{Table: table, Properties: map[string]string{}}}
}
