package s3vec

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
	"golang.org/x/time/rate"
)

// RateLimited wraps a Client so every remote call first waits on a shared
// token bucket. This paces requests against the service's account-level
// throttling; it never retries.
type RateLimited struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimited returns a Client limited to rps requests per second with
// the given burst. burst values below 1 are raised to 1.
func NewRateLimited(inner Client, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *RateLimited) ListVectors(ctx context.Context, params *s3vectors.ListVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.ListVectorsOutput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.inner.ListVectors(ctx, params, optFns...)
}

func (c *RateLimited) GetVectors(ctx context.Context, params *s3vectors.GetVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.GetVectorsOutput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.inner.GetVectors(ctx, params, optFns...)
}
