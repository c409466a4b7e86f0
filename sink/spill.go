package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/vecfed/model"
)

// Compression selects the codec applied to spilled chunks.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// DefaultChunkRows is the number of rows per spilled object.
const DefaultChunkRows = 10000

// SpillOptions configures a Spill sink.
type SpillOptions struct {
	// ChunkRows is the number of rows per spilled object.
	ChunkRows int

	// Compression applied to each chunk. Defaults to zstd.
	Compression Compression

	Logger *slog.Logger
}

// spillRow is the JSON-lines encoding of one output row. Nil embedding
// and metadata encode as null, matching the column nullability.
type spillRow struct {
	VectorID  string          `json:"vector_id"`
	Embedding []float32       `json:"embedding"`
	Metadata  json.RawMessage `json:"metadata"`
}

// Spill chunks rows as JSON lines, compresses each chunk and uploads it
// to S3 under the given prefix. Encryption of spilled data is the
// host's responsibility and is not applied here.
type Spill struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	opts     SpillOptions
	log      *slog.Logger

	buf   bytes.Buffer
	enc   *json.Encoder
	rows  int
	chunk int
}

// NewSpill creates a spill sink writing to s3://bucket/prefix/. The
// client only needs PutObject, so tests substitute a fake.
func NewSpill(client manager.UploadAPIClient, bucket, prefix string, optFns ...func(*SpillOptions)) *Spill {
	opts := SpillOptions{
		ChunkRows:   DefaultChunkRows,
		Compression: CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkRows <= 0 {
		opts.ChunkRows = DefaultChunkRows
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Spill{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		opts:     opts,
		log:      log,
	}
	s.enc = json.NewEncoder(&s.buf)
	return s
}

func (s *Spill) WriteRow(ctx context.Context, row model.Row) (int, error) {
	if err := s.enc.Encode(spillRow{
		VectorID:  row.VectorID,
		Embedding: row.Embedding,
		Metadata:  json.RawMessage(row.Metadata),
	}); err != nil {
		return 0, fmt.Errorf("encode row %q: %w", row.VectorID, err)
	}
	s.rows++

	if s.rows >= s.opts.ChunkRows {
		if err := s.flush(ctx); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

// Close flushes any buffered rows. Must be called after the read
// completes.
func (s *Spill) Close(ctx context.Context) error {
	if s.rows == 0 {
		return nil
	}
	return s.flush(ctx)
}

func (s *Spill) flush(ctx context.Context) error {
	body, ext, err := s.compress(s.buf.Bytes())
	if err != nil {
		return err
	}

	key := path.Join(s.prefix, fmt.Sprintf("chunk-%05d.jsonl%s", s.chunk, ext))
	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}); err != nil {
		return fmt.Errorf("spill chunk %s: %w", key, err)
	}

	s.log.DebugContext(ctx, "spilled chunk", "key", key, "rows", s.rows, "bytes", len(body))

	s.chunk++
	s.rows = 0
	s.buf.Reset()
	return nil
}

func (s *Spill) compress(data []byte) ([]byte, string, error) {
	switch s.opts.Compression {
	case CompressionNone, "":
		return data, "", nil
	case CompressionZstd:
		var out bytes.Buffer
		w, err := zstd.NewWriter(&out)
		if err != nil {
			return nil, "", fmt.Errorf("zstd writer: %w", err)
		}
		if err := writeAll(w, data); err != nil {
			return nil, "", err
		}
		return out.Bytes(), ".zst", nil
	case CompressionLZ4:
		var out bytes.Buffer
		w := lz4.NewWriter(&out)
		if err := writeAll(w, data); err != nil {
			return nil, "", err
		}
		return out.Bytes(), ".lz4", nil
	default:
		return nil, "", fmt.Errorf("unknown spill compression %q", s.opts.Compression)
	}
}

func writeAll(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("compress chunk: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("compress chunk: %w", err)
	}
	return nil
}
