// Package s3vec wraps the Amazon S3 Vectors data-plane client behind a
// narrow interface so callers stay testable with a substitute client.
package s3vec

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
)

// Client is the interface for the S3 Vectors data-plane operations the
// connector uses.
type Client interface {
	ListVectors(ctx context.Context, params *s3vectors.ListVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.ListVectorsOutput, error)
	GetVectors(ctx context.Context, params *s3vectors.GetVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.GetVectorsOutput, error)
}

var _ Client = (*s3vectors.Client)(nil)
