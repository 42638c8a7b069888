// Package scan implements the cursor state machine of §4.5: advancing
// row groups admitted by rowgroupfilter, lazily materializing columns a
// row at a time, and applying rowfilter to the materialized values.
// Grounded in the teacher's manager/executor/plan_chunk_executor.go
// (per-chunk reset, header-level skip before body read) and
// original_source/parquet/parquet_cursor.cc's state machine.
package scan

import (
	"github.com/parquet-go/parquet-go"

	"github.com/dot5enko/parquet-vtab/ptype"
	"github.com/dot5enko/parquet-vtab/rowgroupfilter"
)

// FileHandle is the per-connected-table shared state: the parquet.File
// collaborator, the resolved Table schema, and a once-computed row-group
// index, matching §3's "File handle, shared read-only across cursors"
// data model note.
type FileHandle struct {
	File  *parquet.File
	Table *ptype.Table

	NumRowGroups   int
	RowGroupStarts []int64
	RowGroupSizes  []int64
	TotalRows      int64
}

func Open(f *parquet.File) (*FileHandle, error) {
	table, err := ptype.MapSchema(f.Schema())
	if err != nil {
		return nil, err
	}

	groups := f.RowGroups()
	starts := make([]int64, len(groups))
	sizes := make([]int64, len(groups))
	var total int64
	for i, g := range groups {
		starts[i] = total
		n := g.NumRows()
		sizes[i] = n
		total += n
	}

	return &FileHandle{
		File:           f,
		Table:          table,
		NumRowGroups:   len(groups),
		RowGroupStarts: starts,
		RowGroupSizes:  sizes,
		TotalRows:      total,
	}, nil
}

func (fh *FileHandle) RowGroup(i int) parquet.RowGroup {
	return fh.File.RowGroups()[i]
}

// ColumnStats aggregates a row group's page-index statistics for one
// column into the plain rowgroupfilter.Stats shape, merging per-page
// min/max across the column's pages the way a single row-group-level
// statistic would read, since parquet-go only exposes page-level bounds
// through ColumnIndex.
func (fh *FileHandle) ColumnStats(g, col int) rowgroupfilter.Stats {
	chunk := fh.RowGroup(g).ColumnChunks()[col]
	st := rowgroupfilter.Stats{NumValues: chunk.NumValues()}

	ci, err := chunk.ColumnIndex()
	if err != nil || ci == nil {
		return st
	}

	n := ci.NumPages()
	if n == 0 {
		return st
	}

	colInfo := &fh.Table.Columns[col]
	var nullCount int64
	haveBounds := false

	for p := 0; p < n; p++ {
		nullCount += ci.NullCount(p)
		if ci.NullPage(p) {
			continue
		}
		minV := ci.MinValue(p)
		maxV := ci.MaxValue(p)
		mergeBound(&st, colInfo, minV, maxV, &haveBounds)
	}

	st.NullCount = nullCount
	st.HasNullCount = true
	st.HasMinMax = haveBounds
	return st
}

func mergeBound(st *rowgroupfilter.Stats, col *ptype.Column, minV, maxV parquet.Value, haveBounds *bool) {
	switch col.Kind {
	case ptype.KindBool, ptype.KindInt:
		lo, hi := materializeInt(col, minV), materializeInt(col, maxV)
		if !*haveBounds {
			st.IntMin, st.IntMax = lo, hi
		} else {
			if lo < st.IntMin {
				st.IntMin = lo
			}
			if hi > st.IntMax {
				st.IntMax = hi
			}
		}
	case ptype.KindDouble:
		lo, hi := materializeDouble(minV), materializeDouble(maxV)
		if !*haveBounds {
			st.DoubleMin, st.DoubleMax = lo, hi
		} else {
			if lo < st.DoubleMin {
				st.DoubleMin = lo
			}
			if hi > st.DoubleMax {
				st.DoubleMax = hi
			}
		}
	case ptype.KindText, ptype.KindBlob:
		lo, hi := materializeBytes(minV), materializeBytes(maxV)
		if !*haveBounds {
			st.BytesMin, st.BytesMax = lo, hi
		} else {
			if string(lo) < string(st.BytesMin) {
				st.BytesMin = lo
			}
			if string(hi) > string(st.BytesMax) {
				st.BytesMax = hi
			}
		}
	}
	*haveBounds = true
}
