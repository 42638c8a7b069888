package constraint

import (
	"strconv"
	"strings"
)

// Constraint is an immutable typed predicate (column, op, value), the Go
// analogue of original_source's Constraint::describe() target and the
// teacher's FilterCondition (manager/query/condition.go), extended with
// the full operator and value-type set the scan engine needs.
//
// Column == -1 denotes the synthetic rowid column.
type Constraint struct {
	Column     int
	ColumnName string
	Op         Operator
	ValueType  ValueType

	IntValue    int64
	DoubleValue float64
	BlobValue   []byte
	TextValue   string

	// LikePrefix is precomputed for Op == Like on a Text value: the
	// substring up to (not including) the first '%' or '_'.
	LikePrefix string
}

func NewInt(column int, columnName string, op Operator, v int64) *Constraint {
	return &Constraint{Column: column, ColumnName: columnName, Op: op, ValueType: Integer, IntValue: v}
}

func NewDouble(column int, columnName string, op Operator, v float64) *Constraint {
	return &Constraint{Column: column, ColumnName: columnName, Op: op, ValueType: Double, DoubleValue: v}
}

func NewText(column int, columnName string, op Operator, v string) *Constraint {
	c := &Constraint{Column: column, ColumnName: columnName, Op: op, ValueType: Text, TextValue: v}
	if op == Like {
		c.LikePrefix = likePrefix(v)
	}
	return c
}

func NewBlob(column int, columnName string, op Operator, v []byte) *Constraint {
	return &Constraint{Column: column, ColumnName: columnName, Op: op, ValueType: Blob, BlobValue: v}
}

func NewNull(column int, columnName string, op Operator) *Constraint {
	return &Constraint{Column: column, ColumnName: columnName, Op: op, ValueType: Null}
}

// likePrefix derives the literal prefix of a LIKE pattern up to the first
// wildcard, per §4.2/§4.3.
func likePrefix(pattern string) string {
	if idx := strings.IndexAny(pattern, "%_"); idx >= 0 {
		return pattern[:idx]
	}
	return pattern
}

// Fingerprint yields a stable cache key: "<columnName> <opSymbol> <literal>".
// It need not be unique across semantically equivalent constraints, only
// stable within a session (§4.2).
func (c *Constraint) Fingerprint() string {
	var literal string
	switch c.ValueType {
	case Integer:
		literal = strconv.FormatInt(c.IntValue, 10)
	case Double:
		literal = strconv.FormatFloat(c.DoubleValue, 'g', -1, 64)
	case Text:
		literal = c.TextValue
	case Blob, Null:
		literal = ""
	}
	return c.ColumnName + " " + c.Op.String() + " " + literal
}
