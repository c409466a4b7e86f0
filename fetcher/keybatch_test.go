package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3vectors"
	vtypes "github.com/aws/aws-sdk-go-v2/service/s3vectors/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecfed/model"
)

func keyConfig(client *mockClient, batchSize int) Config {
	return Config{
		Client:       client,
		Table:        model.TableRef{Bucket: "bkt", Index: "idx"},
		KeyBatchSize: batchSize,
	}
}

func matchKeys(keys ...string) interface{} {
	return mock.MatchedBy(func(input *s3vectors.GetVectorsInput) bool {
		if *input.VectorBucketName != "bkt" || *input.IndexName != "idx" {
			return false
		}
		if len(input.Keys) != len(keys) {
			return false
		}
		for i, k := range keys {
			if input.Keys[i] != k {
				return false
			}
		}
		return true
	})
}

func getPage(keys ...string) *s3vectors.GetVectorsOutput {
	out := &s3vectors.GetVectorsOutput{}
	for _, k := range keys {
		out.Vectors = append(out.Vectors, getVec(k, nil, nil))
	}
	return out
}

func TestKeyBatch_PartitionsKeysInOrder(t *testing.T) {
	// 5 keys, batch size 2: exactly ceil(5/2)=3 calls, no gaps, no overlaps.
	client := new(mockClient)
	client.On("GetVectors", mock.Anything, matchKeys("k1", "k2")).Return(getPage("k1", "k2"), nil).Once()
	client.On("GetVectors", mock.Anything, matchKeys("k3", "k4")).Return(getPage("k3", "k4"), nil).Once()
	client.On("GetVectors", mock.Anything, matchKeys("k5")).Return(getPage("k5"), nil).Once()

	f := NewKeyBatch(keyConfig(client, 2), []string{"k1", "k2", "k3", "k4", "k5"})

	var got []string
	for f.HasNext() {
		batch, err := f.Next(context.Background())
		require.NoError(t, err)
		got = append(got, batchKeys(batch)...)
	}

	assert.Equal(t, []string{"k1", "k2", "k3", "k4", "k5"}, got)
	client.AssertExpectations(t)
}

func TestKeyBatch_MissingKeysDoNotStall(t *testing.T) {
	// The store knows none of the requested keys; the cursor must still
	// advance and the read must terminate.
	client := new(mockClient)
	client.On("GetVectors", mock.Anything, matchKeys("gone1", "gone2")).Return(getPage(), nil).Once()
	client.On("GetVectors", mock.Anything, matchKeys("k3")).Return(getPage("k3"), nil).Once()

	f := NewKeyBatch(keyConfig(client, 2), []string{"gone1", "gone2", "k3"})

	var got []string
	for f.HasNext() {
		batch, err := f.Next(context.Background())
		require.NoError(t, err)
		got = append(got, batchKeys(batch)...)
	}

	assert.Equal(t, []string{"k3"}, got)
	client.AssertExpectations(t)
}

func TestKeyBatch_LimitCapsBatch(t *testing.T) {
	client := new(mockClient)
	client.On("GetVectors", mock.Anything, matchKeys("k1", "k2")).Return(getPage("k1", "k2"), nil).Once()
	client.On("GetVectors", mock.Anything, matchKeys("k3")).Return(getPage("k3"), nil).Once()

	cfg := keyConfig(client, 2)
	cfg.Limit = 3
	f := NewKeyBatch(cfg, []string{"k1", "k2", "k3", "k4", "k5"})

	var total int
	for f.HasNext() {
		batch, err := f.Next(context.Background())
		require.NoError(t, err)
		total += len(batch)
	}

	assert.Equal(t, 3, total)
	client.AssertExpectations(t)
}

func TestKeyBatch_DuplicatesPreserved(t *testing.T) {
	client := new(mockClient)
	client.On("GetVectors", mock.Anything, matchKeys("k1", "k1")).Return(getPage("k1", "k1"), nil).Once()

	f := NewKeyBatch(keyConfig(client, 10), []string{"k1", "k1"})

	batch, err := f.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k1"}, batchKeys(batch))
	client.AssertExpectations(t)
}

func TestKeyBatch_DefaultBatchSize(t *testing.T) {
	f := NewKeyBatch(keyConfig(new(mockClient), 0), []string{"k1"})
	assert.Equal(t, DefaultKeyBatchSize, f.batchSize)
}

func TestKeyBatch_MapsPayload(t *testing.T) {
	client := new(mockClient)
	client.On("GetVectors", mock.Anything, mock.MatchedBy(func(input *s3vectors.GetVectorsInput) bool {
		return input.ReturnData && input.ReturnMetadata
	})).Return(&s3vectors.GetVectorsOutput{
		Vectors: []vtypes.GetOutputVector{
			getVec("k1", []float32{0.5, 1.5}, map[string]interface{}{"lang": "en"}),
			getVec("k2", nil, nil),
		},
	}, nil).Once()

	cfg := keyConfig(client, 10)
	cfg.FetchEmbedding = true
	cfg.FetchMetadata = true
	f := NewKeyBatch(cfg, []string{"k1", "k2"})

	batch, err := f.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Equal(t, []float32{0.5, 1.5}, batch[0].Data)
	assert.JSONEq(t, `{"lang":"en"}`, string(batch[0].Metadata))

	// Nothing returned for k2's payload: both columns stay absent.
	assert.Nil(t, batch[1].Data)
	assert.Nil(t, batch[1].Metadata)
}

func TestKeyBatch_RemoteErrorPropagates(t *testing.T) {
	boom := errors.New("access denied")

	client := new(mockClient)
	client.On("GetVectors", mock.Anything, mock.Anything).Return(nil, boom).Once()

	f := NewKeyBatch(keyConfig(client, 2), []string{"k1"})

	_, err := f.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
