package rowfilter

import (
	"bytes"

	"github.com/dot5enko/parquet-vtab/constraint"
	"github.com/dot5enko/parquet-vtab/ptype"
)

// Admits implements §4.4: given a constraint and the current row's
// materialized value, report whether the row passes. rowId is used only
// for the rowid pseudo-column.
func Admits(c *constraint.Constraint, kind ptype.Kind, v Value, rowId int64) bool {
	if c.Column == -1 {
		return admitsRowid(c, rowId)
	}

	switch c.Op {
	case constraint.IsNull:
		return v.IsNull
	case constraint.IsNotNull:
		return !v.IsNull
	}

	if v.IsNull {
		// Any other operator against a null value is a non-match; NULL
		// never satisfies an ordinary comparison.
		return false
	}

	switch kind {
	case ptype.KindBool, ptype.KindInt:
		if c.ValueType != constraint.Integer {
			return true
		}
		return admitsInt(c, v.IntValue)
	case ptype.KindDouble:
		if c.ValueType != constraint.Double {
			return true
		}
		return admitsDouble(c, v.DoubleValue)
	case ptype.KindText, ptype.KindBlob:
		if c.ValueType != constraint.Text && c.ValueType != constraint.Blob {
			return true
		}
		return admitsBytes(c, v.BytesValue)
	default:
		return true
	}
}

func admitsRowid(c *constraint.Constraint, rowId int64) bool {
	if c.ValueType != constraint.Integer {
		return true
	}
	switch c.Op {
	case constraint.Eq, constraint.Is:
		return rowId == c.IntValue
	case constraint.Gt:
		return rowId > c.IntValue
	case constraint.Ge:
		return rowId >= c.IntValue
	case constraint.Lt:
		return rowId < c.IntValue
	case constraint.Le:
		return rowId <= c.IntValue
	case constraint.Ne:
		return rowId != c.IntValue
	default:
		return true
	}
}

// admitsInt implements §4.4's Integer rule: arithmetic comparisons are
// exact; LIKE and IS NOT are pass-through (conservative true), since
// neither has meaning against an integer value -- the host re-checks.
func admitsInt(c *constraint.Constraint, v int64) bool {
	switch c.Op {
	case constraint.Eq, constraint.Is:
		return v == c.IntValue
	case constraint.Gt:
		return v > c.IntValue
	case constraint.Ge:
		return v >= c.IntValue
	case constraint.Lt:
		return v < c.IntValue
	case constraint.Le:
		return v <= c.IntValue
	case constraint.Ne:
		return v != c.IntValue
	default:
		return true
	}
}

func admitsDouble(c *constraint.Constraint, v float64) bool {
	switch c.Op {
	case constraint.Eq, constraint.Is:
		return v == c.DoubleValue
	case constraint.Gt:
		return v > c.DoubleValue
	case constraint.Ge:
		return v >= c.DoubleValue
	case constraint.Lt:
		return v < c.DoubleValue
	case constraint.Le:
		return v <= c.DoubleValue
	case constraint.Ne:
		return v != c.DoubleValue
	default:
		return true
	}
}

// admitsBytes implements §4.4's Text rule, extended to Blob: byte-wise
// comparisons mirroring rowgroupfilter's, plus LIKE as an
// over-approximating prefix match against LikePrefix.
func admitsBytes(c *constraint.Constraint, v []byte) bool {
	var target []byte
	if c.ValueType == constraint.Text {
		target = []byte(c.TextValue)
	} else {
		target = c.BlobValue
	}

	switch c.Op {
	case constraint.Eq, constraint.Is:
		return bytes.Equal(v, target)
	case constraint.Gt:
		return bytes.Compare(v, target) > 0
	case constraint.Ge:
		return bytes.Compare(v, target) >= 0
	case constraint.Lt:
		return bytes.Compare(v, target) < 0
	case constraint.Le:
		return bytes.Compare(v, target) <= 0
	case constraint.Ne:
		return !bytes.Equal(v, target)
	case constraint.Like:
		return bytes.HasPrefix(v, []byte(c.LikePrefix))
	default:
		// GLOB, MATCH, REGEXP, IS NOT: the host re-checks.
		return true
	}
}
