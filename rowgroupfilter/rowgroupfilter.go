package rowgroupfilter

import (
	"bytes"

	"github.com/dot5enko/parquet-vtab/constraint"
	"github.com/dot5enko/parquet-vtab/ptype"
)

// Admits implements §4.3: given a constraint and a row group's
// statistics, report whether the group may contain a matching row.
// Returning true means "cannot prove exclusion", not "the
// group matches" -- the caller treats false as the only actionable
// signal.
func Admits(c *constraint.Constraint, kind ptype.Kind, st Stats, rowGroupStart, rowGroupSize int64) bool {
	if c.Column == -1 {
		return admitsRowid(c, rowGroupStart, rowGroupSize)
	}

	switch c.Op {
	case constraint.IsNull:
		if !st.HasNullCount {
			return true
		}
		return st.NullCount > 0
	case constraint.IsNotNull:
		return st.NumValues > 0
	}

	if !st.HasMinMax {
		return true
	}

	switch kind {
	case ptype.KindBool, ptype.KindInt:
		if c.ValueType != constraint.Integer {
			return true
		}
		return admitsInt(c, st.IntMin, st.IntMax)
	case ptype.KindDouble:
		if c.ValueType != constraint.Double {
			return true
		}
		return admitsDouble(c, st.DoubleMin, st.DoubleMax)
	case ptype.KindText, ptype.KindBlob:
		if c.ValueType != constraint.Text && c.ValueType != constraint.Blob {
			return true
		}
		return admitsBytes(c, st.BytesMin, st.BytesMax)
	default:
		return true
	}
}

// admitsRowid checks the rowid constraint against the group's half-open
// row-id interval [rowGroupStart, rowGroupStart+rowGroupSize).
func admitsRowid(c *constraint.Constraint, rowGroupStart, rowGroupSize int64) bool {
	if c.ValueType != constraint.Integer {
		return true
	}
	min := rowGroupStart
	max := rowGroupStart + rowGroupSize - 1
	return admitsIntRange(c.Op, c.IntValue, min, max)
}

// admitsInt applies §4.3's "Integer min-max" rule: arithmetic analogues
// of the Text rules, operating on already-ms-since-epoch-converted INT96
// bounds and 0/1-widened BOOLEAN bounds.
func admitsInt(c *constraint.Constraint, min, max int64) bool {
	switch c.Op {
	case constraint.Eq, constraint.Is:
		return min <= c.IntValue && c.IntValue <= max
	case constraint.Ge:
		return max >= c.IntValue
	case constraint.Gt:
		return max > c.IntValue
	case constraint.Le:
		return min <= c.IntValue
	case constraint.Lt:
		return min < c.IntValue
	case constraint.Ne:
		return !(min == max && max == c.IntValue)
	default:
		// LIKE, IS NOT, GLOB, REGEXP, MATCH conservatively admit.
		return true
	}
}

// admitsIntRange is the arithmetic used by the rowid check -- the rowid
// group's own [min,max] is structurally identical to an ordinary Integer
// column's min/max once expressed as a closed interval, and admitsInt
// applies the same rules to a column's bounds.
func admitsIntRange(op constraint.Operator, v, min, max int64) bool {
	switch op {
	case constraint.Eq, constraint.Is:
		return min <= v && v <= max
	case constraint.Ge:
		return max >= v
	case constraint.Gt:
		return max > v
	case constraint.Le:
		return min <= v
	case constraint.Lt:
		return min < v
	case constraint.Ne:
		return !(min == max && max == v)
	default:
		return true
	}
}

func admitsDouble(c *constraint.Constraint, min, max float64) bool {
	switch c.Op {
	case constraint.Eq, constraint.Is:
		return min <= c.DoubleValue && c.DoubleValue <= max
	case constraint.Ge:
		return max >= c.DoubleValue
	case constraint.Gt:
		return max > c.DoubleValue
	case constraint.Le:
		return min <= c.DoubleValue
	case constraint.Lt:
		return min < c.DoubleValue
	case constraint.Ne:
		return !(min == max && max == c.DoubleValue)
	default:
		return true
	}
}

// admitsBytes applies §4.3's lexicographic Text/Blob rules, including
// the LIKE prefix-truncation test.
func admitsBytes(c *constraint.Constraint, min, max []byte) bool {
	var v []byte
	if c.ValueType == constraint.Text {
		v = []byte(c.TextValue)
	} else {
		v = c.BlobValue
	}

	switch c.Op {
	case constraint.Eq, constraint.Is:
		return bytes.Compare(min, v) <= 0 && bytes.Compare(v, max) <= 0
	case constraint.Ge:
		return bytes.Compare(max, v) >= 0
	case constraint.Gt:
		return bytes.Compare(max, v) > 0
	case constraint.Le:
		return bytes.Compare(min, v) <= 0
	case constraint.Lt:
		return bytes.Compare(min, v) < 0
	case constraint.Ne:
		return !(bytes.Equal(min, max) && bytes.Equal(max, v))
	case constraint.Like:
		prefix := []byte(c.LikePrefix)
		if len(prefix) == 0 {
			return true
		}
		tMin := truncate(min, len(prefix))
		tMax := truncate(max, len(prefix))
		return bytes.Compare(tMin, prefix) <= 0 && bytes.Compare(prefix, tMax) <= 0
	default:
		// GLOB, REGEXP, MATCH, IS NOT conservatively admit.
		return true
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
