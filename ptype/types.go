// Package ptype maps Parquet physical/logical types onto the SQL type
// system the vtab exposes, and onto a small Kind enum the row/row-group
// filters dispatch on. Grounded in the teacher's schema/type.go
// (Uint64FieldType-style enum with a String() method) and
// schema/field.go (per-column struct), generalized from the teacher's
// fixed on-disk field encoding to whatever parquet-go's parquet.Schema
// reports at connect time.
package ptype

// Kind is the scalar family a column's values decode into. It collapses
// Parquet's physical/logical cross product down to the handful of
// buckets rowgroupfilter/rowfilter actually switch on.
type Kind byte

const (
	KindBool Kind = iota
	KindInt
	KindDouble
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "BOOL"
	case KindInt:
		return "INT"
	case KindDouble:
		return "DOUBLE"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	default:
		panic("ptype: unknown kind")
	}
}
