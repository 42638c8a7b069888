package vtab

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/dot5enko/parquet-vtab/bitmap"
	"github.com/dot5enko/parquet-vtab/constraint"
	"github.com/dot5enko/parquet-vtab/ptype"
	"github.com/dot5enko/parquet-vtab/scan"
)

// Cursor is the sqlite3.VTabCursor implementation, a thin ABI adapter
// over scan.Cursor: it decodes idxStr/vals into constraint.Constraint
// values and translates materialized columns into SQLiteContext result
// calls, per the design note that host error codes and pointers stop at
// this boundary.
type Cursor struct {
	table     *Table
	inner     *scan.Cursor
	sessionID uuid.UUID
}

func (c *Cursor) Close() error { return c.inner.Close() }

func (c *Cursor) Filter(idxNum int, idxStr string, vals []interface{}) error {
	c.sessionID = uuid.New()
	specs, err := decodeIdxStr(idxStr)
	if err != nil {
		return err
	}

	constraints, err := c.buildConstraints(specs, vals)
	if err != nil {
		return err
	}

	if c.table.opts.Trace {
		c.inner.SetTrace(true)
	}

	slog.Debug("vtab: scan started", "component", "vtab", "table", c.table.name, "session", c.sessionID, "constraints", len(constraints))

	load := func(fp string) *bitmap.Bitset { return c.table.store.Load(fp, c.table.fh.NumRowGroups) }
	save := func(fp string, estimate, actual *bitmap.Bitset) { c.table.store.Save(fp, estimate, actual) }

	c.inner.Filter(constraints, load, save)
	return c.inner.Next()
}

func (c *Cursor) Next() error { return c.inner.Next() }

func (c *Cursor) EOF() bool { return c.inner.EOF() }

func (c *Cursor) Rowid() (int64, error) { return c.inner.Rowid(), nil }

func (c *Cursor) Column(ctx *sqlite3.SQLiteContext, col int) error {
	if err := c.inner.Column(col); err != nil {
		return err
	}
	if c.inner.IsNull(col) {
		ctx.ResultNull()
		return nil
	}

	switch c.table.fh.Table.Columns[col].Kind {
	case ptype.KindBool, ptype.KindInt:
		ctx.ResultInt64(c.inner.Int(col))
	case ptype.KindDouble:
		ctx.ResultDouble(c.inner.Double(col))
	case ptype.KindText:
		ctx.ResultText(string(c.inner.Bytes(col)))
	case ptype.KindBlob:
		ctx.ResultBlob(c.inner.Bytes(col))
	}
	return nil
}

func (c *Cursor) columnName(col int) string {
	if col == -1 {
		return "rowid"
	}
	return c.table.fh.Table.Columns[col].Name
}

// buildConstraints pairs every pushed-down spec with exactly one entry
// of vals, in order. go-sqlite3 assigns an argvIndex -- and therefore a
// vals[] slot -- to every constraint BestIndex marked Used, with no
// exception for IS NULL/IS NOT NULL: SQLite still allocates an xFilter
// argument for those, it is simply a SQL NULL. Treating "has no literal
// operand" as "consumes no vals[] slot" was wrong and could misalign a
// later valued constraint onto the wrong literal; buildConstraint
// already ignores val for IsNull/IsNotNull, so the 1:1 pairing here is
// always safe regardless of operator.
func (c *Cursor) buildConstraints(specs []constraintSpec, vals []interface{}) ([]*constraint.Constraint, error) {
	if len(vals) != len(specs) {
		return nil, fmt.Errorf("vtab: idxStr/vals length mismatch: %d specs, %d vals", len(specs), len(vals))
	}

	constraints := make([]*constraint.Constraint, 0, len(specs))
	for i, s := range specs {
		cons, err := buildConstraint(s, c.columnName(s.Column), vals[i])
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, cons)
	}
	return constraints, nil
}

// buildConstraint resolves the dynamic Go type go-sqlite3 hands back
// through vals[] into a typed constraint.Constraint.
func buildConstraint(s constraintSpec, columnName string, val interface{}) (*constraint.Constraint, error) {
	switch s.Op {
	case constraint.IsNull, constraint.IsNotNull:
		return constraint.NewNull(s.Column, columnName, s.Op), nil
	}

	switch v := val.(type) {
	case int64:
		return constraint.NewInt(s.Column, columnName, s.Op, v), nil
	case int:
		return constraint.NewInt(s.Column, columnName, s.Op, int64(v)), nil
	case float64:
		return constraint.NewDouble(s.Column, columnName, s.Op, v), nil
	case string:
		return constraint.NewText(s.Column, columnName, s.Op, v), nil
	case []byte:
		return constraint.NewBlob(s.Column, columnName, s.Op, v), nil
	case nil:
		return constraint.NewNull(s.Column, columnName, s.Op), nil
	default:
		return nil, fmt.Errorf("vtab: unsupported constraint value type %T", val)
	}
}
