package scan

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/dot5enko/parquet-vtab/bitmap"
	"github.com/dot5enko/parquet-vtab/constraint"
)

type testRow struct {
	ID    int64   `parquet:"id"`
	Name  string  `parquet:"name"`
	Score float64 `parquet:"score"`
}

func buildFile(t *testing.T, rows []testRow) *FileHandle {
	t.Helper()
	var buf bytes.Buffer
	if err := parquet.Write(&buf, rows); err != nil {
		t.Fatalf("parquet.Write: %v", err)
	}
	pf, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("parquet.OpenFile: %v", err)
	}
	fh, err := Open(pf)
	if err != nil {
		t.Fatalf("scan.Open: %v", err)
	}
	return fh
}

func TestCursorFullScanNoConstraints(t *testing.T) {
	rows := []testRow{{1, "a", 1.5}, {2, "b", 2.5}, {3, "c", 3.5}}
	fh := buildFile(t, rows)

	cur := NewCursor(fh)
	cur.Filter(nil, nil, nil)

	var ids []int64
	for {
		if err := cur.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
		if cur.EOF() {
			break
		}
		if err := cur.Column(0); err != nil {
			t.Fatalf("Column(0): %v", err)
		}
		ids = append(ids, cur.Int(0))
	}

	want := []int64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("got %v rows, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("row %d: got id %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestCursorColumnLazySkip(t *testing.T) {
	rows := []testRow{{10, "a", 0}, {20, "b", 0}, {30, "c", 0}}
	fh := buildFile(t, rows)

	cur := NewCursor(fh)
	cur.Filter(nil, nil, nil)

	if err := cur.Next(); err != nil {
		t.Fatal(err)
	}
	if err := cur.Next(); err != nil {
		t.Fatal(err)
	}
	// Row 1 (id=20): never called Column(0) for row 0, exercising the
	// discard-skip path in ensureColumn.
	if err := cur.Column(0); err != nil {
		t.Fatalf("Column(0): %v", err)
	}
	if got := cur.Int(0); got != 20 {
		t.Fatalf("Int(0) = %d, want 20 (lazy skip must discard row 0's value)", got)
	}
}

func TestCursorColumnRepeatedCallSameRow(t *testing.T) {
	rows := []testRow{{1, "a", 0}, {2, "b", 0}}
	fh := buildFile(t, rows)

	cur := NewCursor(fh)
	cur.Filter(nil, nil, nil)

	if err := cur.Next(); err != nil {
		t.Fatal(err)
	}
	if err := cur.Column(0); err != nil {
		t.Fatal(err)
	}
	first := cur.Int(0)
	if err := cur.Column(0); err != nil {
		t.Fatal(err)
	}
	second := cur.Int(0)
	if first != second {
		t.Fatalf("repeated Column(0) on same row must not advance the scanner: got %d then %d", first, second)
	}
}

func TestCursorRowidConstraintInline(t *testing.T) {
	rows := []testRow{{1, "a", 0}, {2, "b", 0}, {3, "c", 0}, {4, "d", 0}}
	fh := buildFile(t, rows)

	cur := NewCursor(fh)
	c := constraint.NewInt(-1, "rowid", constraint.Ge, 2)
	cur.Filter([]*constraint.Constraint{c}, nil, nil)

	var rowids []int64
	for {
		if err := cur.Next(); err != nil {
			t.Fatal(err)
		}
		if cur.EOF() {
			break
		}
		rowids = append(rowids, cur.Rowid())
	}

	want := []int64{2, 3}
	if len(rowids) != len(want) {
		t.Fatalf("got rowids %v, want %v", rowids, want)
	}
	for i := range want {
		if rowids[i] != want[i] {
			t.Errorf("rowids[%d] = %d, want %d", i, rowids[i], want[i])
		}
	}
}

// TestCursorColumnConstraintSurvivesRepeatedScan reproduces the learned-
// bitmap poisoning bug: a WHERE name = 'b' scan over a single row group
// must return the same row on a second run primed from the first run's
// persisted cache, since no column constraint's row group may ever be
// skipped whole based on an actualMembership bit that was never derived
// from a genuine per-row evaluation.
func TestCursorColumnConstraintSurvivesRepeatedScan(t *testing.T) {
	rows := []testRow{{1, "a", 0}, {2, "b", 0}, {3, "c", 0}}
	fh := buildFile(t, rows)

	cached := map[string]*bitmap.Bitset{}
	load := func(fingerprint string) *bitmap.Bitset { return cached[fingerprint] }
	save := func(fingerprint string, estimate, actual *bitmap.Bitset) {
		clone := actual.Clone()
		cached[fingerprint] = &clone
	}

	scanOnce := func() []string {
		cur := NewCursor(fh)
		c := constraint.NewText(1, "name", constraint.Eq, "b")
		cur.Filter([]*constraint.Constraint{c}, load, save)

		var names []string
		for {
			if err := cur.Next(); err != nil {
				t.Fatal(err)
			}
			if cur.EOF() {
				break
			}
			if err := cur.Column(1); err != nil {
				t.Fatal(err)
			}
			names = append(names, string(cur.Bytes(1)))
		}
		return names
	}

	first := scanOnce()
	if len(first) != 1 || first[0] != "b" {
		t.Fatalf("first scan: got %v, want [\"b\"]", first)
	}

	second := scanOnce()
	if len(second) != 1 || second[0] != "b" {
		t.Fatalf("second scan (cache-primed): got %v, want [\"b\"] -- learned bitmap must not exclude a row group that genuinely matched", second)
	}
}

func TestCursorCacheSaveCalledOnceAtEOF(t *testing.T) {
	rows := []testRow{{1, "a", 0}, {2, "b", 0}, {3, "c", 0}}
	fh := buildFile(t, rows)

	cur := NewCursor(fh)
	c := constraint.NewInt(-1, "rowid", constraint.Eq, 1)

	saveCalls := 0
	var savedFingerprint string
	save := func(fingerprint string, estimate, actual *bitmap.Bitset) {
		saveCalls++
		savedFingerprint = fingerprint
	}

	cur.Filter([]*constraint.Constraint{c}, nil, save)
	for {
		if err := cur.Next(); err != nil {
			t.Fatal(err)
		}
		if cur.EOF() {
			break
		}
	}
	// A second EOF-returning Next() must not save again.
	if err := cur.Next(); err != nil {
		t.Fatal(err)
	}

	if saveCalls != 1 {
		t.Fatalf("save was called %d times, want exactly 1", saveCalls)
	}
	if savedFingerprint != c.Fingerprint() {
		t.Fatalf("saved fingerprint %q, want %q", savedFingerprint, c.Fingerprint())
	}
}
