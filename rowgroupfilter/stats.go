// Package rowgroupfilter decides, from a row group's statistics alone,
// whether a constraint can be proven not to match any row in the group.
// It never touches the underlying pages -- grounded in the teacher's
// header-level skip in manager/executor/plan_chunk_executor.go, which
// checks a block's header min/max before paying for a body read.
package rowgroupfilter

// Stats is the subset of a row group's per-column statistics the filter
// needs, translated from parquet-go's ColumnIndex accessors (HasMinMax,
// NullCount, NumValues, MinValue/MaxValue) into plain Go values so this
// package stays independent of the parquet-go API surface.
type Stats struct {
	HasMinMax    bool
	HasNullCount bool
	NullCount    int64
	NumValues    int64

	// Exactly one of the typed pairs below is meaningful, selected by
	// the column's Kind (bool/int reuse IntMin/Max).
	IntMin, IntMax       int64
	DoubleMin, DoubleMax float64
	BytesMin, BytesMax   []byte
}
