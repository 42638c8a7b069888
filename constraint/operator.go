// Package constraint models the typed predicates pushed down from the host
// SQL engine's BestIndex/Filter callbacks: a column, an operator, and a
// single typed value, plus the derived fingerprint used as a cache key.
package constraint

// Operator enumerates the predicate operators the host can push down. The
// String() panic-on-default mirrors the teacher's CondOperand.String()
// (manager/query/cond_operation.go): an unrecognized operator here is a
// programmer error in the vtab ABI adapter, not a user-facing failure.
type Operator byte

const (
	Eq Operator = iota
	Gt
	Ge
	Lt
	Le
	Ne
	Is
	IsNot
	IsNull
	IsNotNull
	Like
	Glob
	Match
	Regexp
)

func (op Operator) String() string {
	switch op {
	case Eq:
		return "="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Ne:
		return "!="
	case Is:
		return "IS"
	case IsNot:
		return "IS NOT"
	case IsNull:
		return "IS NULL"
	case IsNotNull:
		return "IS NOT NULL"
	case Like:
		return "LIKE"
	case Glob:
		return "GLOB"
	case Match:
		return "MATCH"
	case Regexp:
		return "REGEXP"
	default:
		panic("constraint: unknown operator")
	}
}

// ValueType tags which payload field of a Constraint is live.
type ValueType byte

const (
	Null ValueType = iota
	Integer
	Double
	Blob
	Text
)

func (v ValueType) String() string {
	switch v {
	case Null:
		return "NULL"
	case Integer:
		return "INTEGER"
	case Double:
		return "DOUBLE"
	case Blob:
		return "BLOB"
	case Text:
		return "TEXT"
	default:
		panic("constraint: unknown value type")
	}
}
