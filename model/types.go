package model

import "fmt"

// Column names of the fixed output schema. Every index is exposed as a
// table with exactly these three columns.
const (
	// ColVectorID is the vector's unique key. Never null.
	ColVectorID = "vector_id"
	// ColEmbedding is the vector data as a variable-length float32 list.
	ColEmbedding = "embedding"
	// ColMetadata is the vector's metadata rendered as a JSON string.
	ColMetadata = "metadata"
)

// TableRef identifies the remote index a read is bound to. The host
// engine's schema name maps to the vector bucket, the table name to the
// index within it.
type TableRef struct {
	Bucket string
	Index  string
}

// String returns a string representation of the TableRef.
func (r TableRef) String() string {
	return fmt.Sprintf("%s.%s", r.Bucket, r.Index)
}

// Vector is one item fetched from the remote index. It is created by a
// fetcher from a single API response entry and consumed exactly once by
// the row emitter.
//
// Data and Metadata are nil when the corresponding column was not
// requested or the store returned nothing for it; nil means "absent",
// never "empty".
type Vector struct {
	Key      string
	Data     []float32
	Metadata []byte
}

// Row is one output row in the fixed 3-column schema. Embedding and
// Metadata mirror the nullability of Vector: nil means the column is
// null for this row.
type Row struct {
	VectorID  string
	Embedding []float32
	Metadata  []byte
}
