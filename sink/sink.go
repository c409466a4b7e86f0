// Package sink receives emitted rows. Sinks own buffering, chunking and
// spilling; the reader never duplicates that responsibility.
package sink

import (
	"context"

	"github.com/hupe1980/vecfed/model"
)

// Sink accepts emitted rows one at a time.
type Sink interface {
	// WriteRow writes one row and returns the number of rows written.
	WriteRow(ctx context.Context, row model.Row) (int, error)
}

// Buffer is an in-memory Sink that retains every row. Intended for
// tests and small CLI reads.
type Buffer struct {
	rows []model.Row
}

// NewBuffer creates an empty in-memory sink.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) WriteRow(_ context.Context, row model.Row) (int, error) {
	b.rows = append(b.rows, row)
	return 1, nil
}

// Rows returns all rows written so far, in write order.
func (b *Buffer) Rows() []model.Row {
	return b.rows
}
