package vtab

import (
	"os"

	"github.com/mattn/go-sqlite3"

	"github.com/dot5enko/parquet-vtab/cache"
	"github.com/dot5enko/parquet-vtab/scan"
)

// Table is the sqlite3.VTab implementation for one connected Parquet
// file: the shared FileHandle and cache.Store every cursor opened
// against it reads from, per §3's "file metadata is shared (read-only)
// across cursors" resource policy.
type Table struct {
	name  string
	file  *os.File
	fh    *scan.FileHandle
	store *cache.Store
	opts  Options
}

// BestIndex advertises every constraint this engine can use for
// pushdown (everything rowgroupfilter/rowfilter understand). It never
// sets Omit -- the row/row-group filters are over-approximate
// (conservative on LIKE, GLOB, REGEXP, MATCH), so the host must always
// re-check. Every entry marked Used gets exactly one vals[] slot at
// Filter time, including IS NULL/IS NOT NULL (see buildConstraints).
func (t *Table) BestIndex(cst []sqlite3.InfoConstraint, ob []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	used := make([]bool, len(cst))
	specs := make([]constraintSpec, 0, len(cst))

	for i, c := range cst {
		if !c.Usable {
			continue
		}
		op, ok := sqliteOpToOperator(c.Op)
		if !ok {
			continue
		}
		used[i] = true
		specs = append(specs, constraintSpec{Column: c.Column, Op: op})
	}

	orderedByRowid := len(ob) == 1 && ob[0].Column == -1 && !ob[0].Desc

	return &sqlite3.IndexResult{
		Used:           used,
		IdxNum:         0,
		IdxStr:         encodeIdxStr(specs),
		AlreadyOrdered: orderedByRowid,
		EstimatedCost:  estimateCost(specs),
		EstimatedRows:  float64(t.fh.TotalRows),
	}, nil
}

func (t *Table) Open() (sqlite3.VTabCursor, error) {
	return &Cursor{table: t, inner: scan.NewCursor(t.fh)}, nil
}

func (t *Table) Disconnect() error {
	return t.file.Close()
}

func (t *Table) Destroy() error {
	t.store.Destroy()
	return t.file.Close()
}

// estimateCost follows §6's cost contract exactly: any usable constraint
// is assumed to make the scan cheap (pushdown may skip whole row
// groups), a bare full scan is assumed expensive. Not row-count-scaled,
// since §6 specifies flat values rather than a gradient.
func estimateCost(specs []constraintSpec) float64 {
	if len(specs) > 0 {
		return 1
	}
	return 1e12
}
