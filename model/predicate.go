package model

// Summary is the predicate pushdown contract supplied by the host query
// engine: for each constrained column, the ordered set of value ranges
// the query accepts.
type Summary map[string]ValueSet

// ValueSet is an ordered collection of ranges for one column.
type ValueSet struct {
	Ranges []Range
}

// Range is a single element of a ValueSet, either an exact point or an
// interval. Empty Low/High bounds on an interval mean unbounded.
type Range struct {
	// Point marks a single-value range; Value holds the literal.
	Point bool
	Value string

	// Interval bounds, meaningful only when Point is false.
	Low  string
	High string
}

// PointRange returns a single-value range.
func PointRange(value string) Range {
	return Range{Point: true, Value: value}
}

// IntervalRange returns a bounded or half-bounded interval range.
func IntervalRange(low, high string) Range {
	return Range{Low: low, High: high}
}

// PointValues extracts the literal values of a ValueSet in range order.
// The second return is false if any range is an interval; callers that
// need an exact key list must treat that as "not extractable".
func (v ValueSet) PointValues() ([]string, bool) {
	values := make([]string, 0, len(v.Ranges))
	for _, r := range v.Ranges {
		if !r.Point {
			return nil, false
		}
		values = append(values, r.Value)
	}
	return values, true
}
