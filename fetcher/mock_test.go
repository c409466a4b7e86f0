package fetcher

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
	"github.com/aws/aws-sdk-go-v2/service/s3vectors/document"
	vtypes "github.com/aws/aws-sdk-go-v2/service/s3vectors/types"
	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/vecfed/model"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ListVectors(ctx context.Context, params *s3vectors.ListVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.ListVectorsOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3vectors.ListVectorsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) GetVectors(ctx context.Context, params *s3vectors.GetVectorsInput, optFns ...func(*s3vectors.Options)) (*s3vectors.GetVectorsOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3vectors.GetVectorsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func listVec(key string, data []float32, meta map[string]interface{}) vtypes.ListOutputVector {
	v := vtypes.ListOutputVector{Key: aws.String(key)}
	if data != nil {
		v.Data = &vtypes.VectorDataMemberFloat32{Value: data}
	}
	if meta != nil {
		v.Metadata = document.NewLazyDocument(meta)
	}
	return v
}

func getVec(key string, data []float32, meta map[string]interface{}) vtypes.GetOutputVector {
	v := vtypes.GetOutputVector{Key: aws.String(key)}
	if data != nil {
		v.Data = &vtypes.VectorDataMemberFloat32{Value: data}
	}
	if meta != nil {
		v.Metadata = document.NewLazyDocument(meta)
	}
	return v
}

func listPage(next string, keys ...string) *s3vectors.ListVectorsOutput {
	out := &s3vectors.ListVectorsOutput{}
	for _, k := range keys {
		out.Vectors = append(out.Vectors, listVec(k, nil, nil))
	}
	if next != "" {
		out.NextToken = aws.String(next)
	}
	return out
}

func batchKeys(vecs []model.Vector) []string {
	keys := make([]string, 0, len(vecs))
	for _, v := range vecs {
		keys = append(keys, v.Key)
	}
	return keys
}
