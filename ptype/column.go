package ptype

// Column is the resolved mapping for one Parquet leaf column: its scalar
// Kind for filter dispatch, its SQL type for the CREATE TABLE DDL, and
// the handful of physical-type details scan needs to decode values
// (INT96 timestamps, fixed-length byte arrays).
type Column struct {
	Index   int
	Name    string
	Kind    Kind
	SQLType string

	// IsInt96 marks INT64-bucket columns that are physically INT96 and
	// need the Julian-day conversion in §4.7 before comparison.
	IsInt96 bool

	// FixedLen is the declared length of a FIXED_LEN_BYTE_ARRAY column,
	// zero for every other physical type.
	FixedLen int
}

// Table is the full resolved schema for a connected Parquet file, in
// Parquet column order.
type Table struct {
	Columns []Column
}

func (t *Table) ColumnByName(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}
