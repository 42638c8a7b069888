// Package rowfilter decides, given a single materialized row, whether a
// constraint accepts it. Grounded in the teacher's
// manager/filter_vector_of_values.go, adapted from a vectorized
// row-batch check to a single-row check -- this engine materializes one
// row at a time, there is no batch to vectorize over.
package rowfilter

// Value is the materialized payload of one column for the current row,
// translated from parquet.Value at the scan layer so this package stays
// independent of the parquet-go API surface.
type Value struct {
	IsNull bool

	IntValue    int64
	DoubleValue float64
	BytesValue  []byte
}
