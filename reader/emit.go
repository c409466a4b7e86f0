package reader

import "github.com/hupe1980/vecfed/model"

// Emit maps one fetched vector to its output row. Pure, stateless,
// exactly one row per vector. Absent payload stays nil so the sink
// writes NULL, never a zero-length placeholder.
func Emit(v model.Vector) model.Row {
	row := model.Row{VectorID: v.Key}
	if len(v.Data) > 0 {
		row.Embedding = v.Data
	}
	if len(v.Metadata) > 0 {
		row.Metadata = v.Metadata
	}
	return row
}
