// Package model defines core types shared across the vecfed connector.
//
// # Identity Types
//
//   - TableRef: (vector bucket, index) pair a read is bound to
//   - Column names: ColVectorID, ColEmbedding, ColMetadata
//
// # Data Types
//
//   - Vector: one item fetched from the remote index
//   - Row: one emitted output row in the fixed 3-column schema
//   - Summary / ValueSet / Range: the predicate pushdown contract
//     supplied by the host query engine
package model
