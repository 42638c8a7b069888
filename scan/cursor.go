package scan

import (
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/parquet-go/parquet-go"

	"github.com/dot5enko/parquet-vtab/bitmap"
	"github.com/dot5enko/parquet-vtab/constraint"
	"github.com/dot5enko/parquet-vtab/ptype"
	"github.com/dot5enko/parquet-vtab/rowfilter"
	"github.com/dot5enko/parquet-vtab/rowgroupfilter"
)

// cursorState is the explicit state machine from §4.5 and Design Note
// §9 ("cursor as state machine, not inheritance") -- a class hierarchy
// would scatter this logic across types; one enum keeps it in one place.
type cursorState byte

const (
	stateBeforeFirst cursorState = iota
	stateInGroup
	stateEof
)

// constraintState is the mutable per-scan companion of an immutable
// constraint.Constraint, split the way the teacher splits
// FilterConditionRuntime{Filter, Runtime} in
// manager/query/planner_runtime_types.go.
type constraintState struct {
	c       *constraint.Constraint
	bitmap  *bitmap.RowGroupBitmap
	hadRows bool
}

// SaveFunc persists a constraint's learned bitmap at end of scan. It is
// supplied by the vtab layer, which owns the cache.Store; scan has no
// dependency on cache, keeping the dependency graph one-directional.
type SaveFunc func(fingerprint string, estimate, actual *bitmap.Bitset)

// LoadFunc retrieves a constraint's previously learned actual bitmap, or
// nil if none is cached.
type LoadFunc func(fingerprint string) *bitmap.Bitset

// Cursor is one open VTabCursor's worth of scan state: exactly one per
// active scan, not safe for concurrent use (§5).
type Cursor struct {
	fh *FileHandle

	state              cursorState
	rowGroupIdx        int
	rowGroupStart      int64
	rowsLeftInRowGroup int64
	rowId              int64

	constraints []*constraintState

	columns   []*columnCursor
	colRowId  []int64
	colNull   []bool
	colInt    []int64
	colDouble []float64
	colBytes  [][]byte

	saveCache  SaveFunc
	cacheSaved bool

	trace bool
}

func NewCursor(fh *FileHandle) *Cursor {
	n := len(fh.Table.Columns)
	return &Cursor{
		fh:          fh,
		state:       stateBeforeFirst,
		rowGroupIdx: -1,
		columns:     make([]*columnCursor, n),
		colRowId:    make([]int64, n),
		colNull:     make([]bool, n),
		colInt:      make([]int64, n),
		colDouble:   make([]float64, n),
		colBytes:    make([][]byte, n),
	}
}

// SetTrace enables spew-dumped debug logging of row-group transitions,
// mirroring the teacher's own spew.Dump debug calls
// (manager/load_slab_from_disk.go). Off by default; never invoked from
// the per-row hot path (only at row-group boundaries).
func (cur *Cursor) SetTrace(on bool) { cur.trace = on }

// Filter resets the cursor to BeforeFirst with a fresh constraint set,
// the vtab layer's entry point for the host's xFilter callback. Per §5,
// repeated Filter calls on one cursor are treated as a full reset: all
// in-flight column scanners are closed and no state survives across
// calls except the shared FileHandle.
func (cur *Cursor) Filter(constraints []*constraint.Constraint, load LoadFunc, save SaveFunc) {
	for _, cc := range cur.columns {
		if cc != nil {
			cc.close()
		}
	}
	for i := range cur.columns {
		cur.columns[i] = nil
	}

	cur.constraints = make([]*constraintState, len(constraints))
	for i, c := range constraints {
		bm := bitmap.New(cur.fh.NumRowGroups)
		if load != nil {
			if actual := load(c.Fingerprint()); actual != nil && actual.Len() == bm.Len() {
				bm.Actual = *actual
			}
		}
		cur.constraints[i] = &constraintState{c: c, bitmap: bm}
	}

	cur.state = stateBeforeFirst
	cur.rowGroupIdx = -1
	cur.rowGroupStart = 0
	cur.rowsLeftInRowGroup = 0
	cur.rowId = 0
	cur.saveCache = save
	cur.cacheSaved = false
}

func (cur *Cursor) EOF() bool { return cur.state == stateEof }

func (cur *Cursor) Rowid() int64 { return cur.rowId }

// Next implements §4.5's next() algorithm: advance to the next
// admissible row group when the current one is exhausted, otherwise
// step one row and evaluate every constraint against it (evaluateRowFilters
// materializes each constrained column), looping on rejection.
func (cur *Cursor) Next() error {
	for {
		if cur.rowsLeftInRowGroup == 0 {
			if cur.rowGroupIdx >= 0 {
				cur.refineCompletedGroup(cur.rowGroupIdx)
			}

			ok, err := cur.advanceRowGroup()
			if err != nil {
				return err
			}
			if !ok {
				cur.state = stateEof
				cur.rowId = cur.fh.TotalRows + 1
				cur.finishScan()
				return nil
			}
			cur.state = stateInGroup
		}

		cur.rowsLeftInRowGroup--
		cur.rowId++

		admitted, err := cur.evaluateRowFilters()
		if err != nil {
			return err
		}
		if admitted {
			return nil
		}
	}
}

// advanceRowGroup scans forward from the current group for the next one
// every constraint admits, per §4.3's combination rule: a group is
// admitted iff every constraint's statistical filter says true AND its
// actualMembership bit is still set. Any rejection clears both bits of
// that constraint's bitmap at g.
func (cur *Cursor) advanceRowGroup() (bool, error) {
	for g := cur.rowGroupIdx + 1; g < cur.fh.NumRowGroups; g++ {
		admitted := true
		for _, cs := range cur.constraints {
			statAdmit := cur.statAdmits(cs.c, g)
			combined := statAdmit && cs.bitmap.Actual.Get(g)
			if !combined {
				cs.bitmap.ExcludeGroup(g)
				admitted = false
			}
		}

		if cur.trace {
			slog.Debug("scan: row group evaluated", "component", "scan", "group", g, "admitted", admitted)
		}

		if !admitted {
			continue
		}

		cur.rowGroupIdx = g
		cur.rowGroupStart = cur.fh.RowGroupStarts[g]
		cur.rowsLeftInRowGroup = cur.fh.RowGroupSizes[g]
		cur.rowId = cur.rowGroupStart - 1

		for i := range cur.columns {
			if cur.columns[i] != nil {
				cur.columns[i].close()
				cur.columns[i] = nil
			}
			cur.colRowId[i] = cur.rowGroupStart - 1
		}
		for _, cs := range cur.constraints {
			cs.hadRows = false
		}

		if cur.trace {
			slog.Debug("scan: entering row group", "component", "scan", "state", spew.Sdump(cur.constraints))
		}
		return true, nil
	}
	return false, nil
}

func (cur *Cursor) statAdmits(c *constraint.Constraint, g int) bool {
	if c.Column == -1 {
		return rowgroupfilter.Admits(c, ptype.KindInt, rowgroupfilter.Stats{}, cur.fh.RowGroupStarts[g], cur.fh.RowGroupSizes[g])
	}
	col := &cur.fh.Table.Columns[c.Column]
	st := cur.fh.ColumnStats(g, c.Column)
	return rowgroupfilter.Admits(c, col.Kind, st, cur.fh.RowGroupStarts[g], cur.fh.RowGroupSizes[g])
}

func (cur *Cursor) refineCompletedGroup(g int) {
	for _, cs := range cur.constraints {
		cs.bitmap.RefineActual(g, cs.hadRows)
	}
}

// evaluateRowFilters implements §4.5 step 3: every constraint's column is
// materialized for the current row (via ensureColumn) and genuinely
// evaluated here, the way original_source/parquet_cursor.cc's
// currentRowSatisfiesFilter() calls ensureColumn(column) for every
// constraint before comparing. hadRows must reflect a real evaluation --
// Next() always runs before the host's own Column(i) calls, so deferring
// evaluation until "the column happens to already be materialized" would
// leave hadRows permanently false and poison the learned bitmap with a
// false "no rows matched" for groups that were never actually checked.
func (cur *Cursor) evaluateRowFilters() (bool, error) {
	for _, cs := range cur.constraints {
		col := cs.c.Column

		kind := ptype.KindInt
		var rv rowfilter.Value
		if col != -1 {
			if err := cur.ensureColumn(col); err != nil {
				return false, err
			}
			kind = cur.fh.Table.Columns[col].Kind
			rv = cur.rowValue(col)
		}

		if rowfilter.Admits(cs.c, kind, rv, cur.rowId) {
			cs.hadRows = true
		} else {
			return false, nil
		}
	}
	return true, nil
}

func (cur *Cursor) rowValue(col int) rowfilter.Value {
	return rowfilter.Value{
		IsNull:      cur.colNull[col],
		IntValue:    cur.colInt[col],
		DoubleValue: cur.colDouble[col],
		BytesValue:  cur.colBytes[col],
	}
}

// Column implements §4.5's column(i): the host's post-Next() read of a
// materialized value. It shares ensureColumn with evaluateRowFilters, so
// a column a constraint already forced during row filtering costs
// nothing extra here -- colRowId[i] == rowId short circuits before
// touching the scanner.
func (cur *Cursor) Column(i int) error {
	if i == -1 {
		return nil
	}
	return cur.ensureColumn(i)
}

// ensureColumn implements §4.5's ensureColumn(i): lazily creates the
// column's scanner, discards rows the cursor skipped without
// materializing, and reads exactly one value for the current row.
func (cur *Cursor) ensureColumn(i int) error {
	if cur.colRowId[i] == cur.rowId {
		return nil
	}

	cc := cur.columns[i]
	if cc == nil {
		cc = newColumnCursor(cur.fh.RowGroup(cur.rowGroupIdx), i)
		cur.columns[i] = cc
	}

	for cur.colRowId[i] < cur.rowId-1 {
		if _, err := cc.next(); err != nil {
			return err
		}
		cur.colRowId[i]++
	}

	v, err := cc.next()
	if err != nil {
		return err
	}
	cur.materializeColumn(i, v)
	cur.colRowId[i] = cur.rowId
	return nil
}

func (cur *Cursor) materializeColumn(i int, v parquet.Value) {
	col := &cur.fh.Table.Columns[i]
	cur.colNull[i] = v.IsNull()
	if cur.colNull[i] {
		return
	}
	switch col.Kind {
	case ptype.KindBool, ptype.KindInt:
		cur.colInt[i] = materializeInt(col, v)
	case ptype.KindDouble:
		cur.colDouble[i] = materializeDouble(v)
	case ptype.KindText, ptype.KindBlob:
		cur.colBytes[i] = materializeBytes(v)
	}
}

func (cur *Cursor) IsNull(i int) bool    { return cur.colNull[i] }
func (cur *Cursor) Int(i int) int64      { return cur.colInt[i] }
func (cur *Cursor) Double(i int) float64 { return cur.colDouble[i] }
func (cur *Cursor) Bytes(i int) []byte   { return cur.colBytes[i] }

// finishScan persists every constraint's learned bitmap exactly once,
// at the first eof-returning Next() call, per §5's "cache writes happen
// exactly once, at the first eof-returning call".
func (cur *Cursor) finishScan() {
	if cur.cacheSaved || cur.saveCache == nil {
		return
	}
	cur.cacheSaved = true
	for _, cs := range cur.constraints {
		cur.saveCache(cs.c.Fingerprint(), &cs.bitmap.Estimated, &cs.bitmap.Actual)
	}
}

func (cur *Cursor) Close() error {
	for _, cc := range cur.columns {
		if cc != nil {
			if err := cc.close(); err != nil {
				return err
			}
		}
	}
	return nil
}
