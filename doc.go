// Package vecfed is a query-federation connector that lets a SQL query
// engine read rows from Amazon S3 Vectors indexes.
//
// Every index is exposed as a table with a fixed 3-column schema
// (vector_id, embedding, metadata). A read with an equality predicate on
// vector_id is executed as batched key lookups; everything else pages
// through the whole index. Row limits are enforced across remote calls,
// cancellation is polled at every batch boundary, and no more than one
// batch is held in memory at a time (two with prefetch enabled).
//
//	client := s3vectors.NewFromConfig(cfg)
//	conn, err := vecfed.New(client)
//	if err != nil { ... }
//
//	buf := sink.NewBuffer()
//	rows, err := conn.Read(ctx, vecfed.ReadRequest{
//	    Table:   model.TableRef{Bucket: "media", Index: "captions"},
//	    Columns: []string{model.ColVectorID, model.ColEmbedding},
//	    Limit:   100,
//	}, buf, nil)
package vecfed
