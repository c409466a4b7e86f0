package vecfed

import (
	"context"
	"os"
	"testing"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecfed/model"
	"github.com/hupe1980/vecfed/sink"
)

func TestIntegration_Scan(t *testing.T) {
	bucket := os.Getenv("VECFED_BUCKET")
	index := os.Getenv("VECFED_INDEX")
	if bucket == "" || index == "" {
		t.Skip("Skipping integration test: VECFED_BUCKET or VECFED_INDEX not set")
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3vectors.NewFromConfig(cfg)

	conn, err := New(client)
	require.NoError(t, err)

	buf := sink.NewBuffer()
	rows, err := conn.Read(ctx, ReadRequest{
		Table:   model.TableRef{Bucket: bucket, Index: index},
		Columns: []string{model.ColVectorID, model.ColEmbedding, model.ColMetadata},
		Limit:   5,
	}, buf, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, rows, int64(5))
	for _, row := range buf.Rows() {
		assert.NotEmpty(t, row.VectorID)
	}
}
