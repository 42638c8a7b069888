package vtab

import (
	"github.com/mattn/go-sqlite3"

	"github.com/dot5enko/parquet-vtab/constraint"
)

// sqliteOpToOperator maps go-sqlite3's InfoConstraint.Op byte (mirroring
// sqlite3.h's SQLITE_INDEX_CONSTRAINT_* constants) onto our Operator
// enum. Unrecognized ops (FUNCTION, LIMIT, OFFSET) are left to the host.
func sqliteOpToOperator(op sqlite3.Op) (constraint.Operator, bool) {
	switch op {
	case sqlite3.OpEQ:
		return constraint.Eq, true
	case sqlite3.OpGT:
		return constraint.Gt, true
	case sqlite3.OpLE:
		return constraint.Le, true
	case sqlite3.OpLT:
		return constraint.Lt, true
	case sqlite3.OpGE:
		return constraint.Ge, true
	case sqlite3.OpMATCH:
		return constraint.Match, true
	case sqlite3.OpLIKE:
		return constraint.Like, true
	case sqlite3.OpGLOB:
		return constraint.Glob, true
	case sqlite3.OpREGEXP:
		return constraint.Regexp, true
	case sqlite3.OpNE:
		return constraint.Ne, true
	case sqlite3.OpISNOT:
		return constraint.IsNot, true
	case sqlite3.OpISNOTNULL:
		return constraint.IsNotNull, true
	case sqlite3.OpISNULL:
		return constraint.IsNull, true
	case sqlite3.OpIS:
		return constraint.Is, true
	default:
		return 0, false
	}
}
