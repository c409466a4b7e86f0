package fetcher

import (
	"github.com/hupe1980/vecfed/model"
)

// Strategy names the access pattern a Select call decided on.
type Strategy string

const (
	// StrategyTableScan pages through the whole index.
	StrategyTableScan Strategy = "table_scan"
	// StrategyKeyBatch fetches an explicit key list in batches.
	StrategyKeyBatch Strategy = "key_batch"
)

// Select inspects the predicate summary and picks the cheapest supported
// access pattern: an equality predicate on the vector_id column becomes a
// key-batch lookup, everything else a full table scan.
//
// Degrading to a scan when the vector_id predicate is unusable (interval
// ranges, or no extractable literals) is deliberate and non-fatal; it is
// logged and the scan produces a correct superset for the engine to
// filter.
func Select(cfg Config, summary model.Summary) (Fetcher, Strategy) {
	vs, constrained := summary[model.ColVectorID]
	if !constrained {
		return NewTableScan(cfg), StrategyTableScan
	}

	keys, ok := vs.PointValues()
	if !ok {
		cfg.logger().Warn("vector_id predicate contains interval ranges, falling back to table scan",
			"bucket", cfg.Table.Bucket,
			"index", cfg.Table.Index,
		)
		return NewTableScan(cfg), StrategyTableScan
	}
	if len(keys) == 0 {
		cfg.logger().Warn("vector_id predicate yields no literal keys, falling back to table scan",
			"bucket", cfg.Table.Bucket,
			"index", cfg.Table.Index,
		)
		return NewTableScan(cfg), StrategyTableScan
	}

	return NewKeyBatch(cfg, keys), StrategyKeyBatch
}
