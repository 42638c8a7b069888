package rowgroupfilter

import (
	"testing"

	"github.com/dot5enko/parquet-vtab/constraint"
	"github.com/dot5enko/parquet-vtab/ptype"
)

func TestAdmitsRowid(t *testing.T) {
	c := constraint.NewInt(-1, "rowid", constraint.Eq, 150)
	if Admits(c, ptype.KindInt, Stats{}, 100, 100) != true {
		t.Fatalf("rowid 150 should be admitted by group [100,200)")
	}
	if Admits(c, ptype.KindInt, Stats{}, 200, 100) != false {
		t.Fatalf("rowid 150 should be excluded by group [200,300)")
	}
}

func TestAdmitsNoMinMax(t *testing.T) {
	c := constraint.NewInt(0, "x", constraint.Eq, 5)
	if !Admits(c, ptype.KindInt, Stats{HasMinMax: false}, 0, 10) {
		t.Fatalf("no min/max must conservatively admit")
	}
}

func TestAdmitsIsNull(t *testing.T) {
	c := constraint.NewNull(0, "x", constraint.IsNull)
	if Admits(c, ptype.KindInt, Stats{HasNullCount: true, NullCount: 0}, 0, 10) {
		t.Fatalf("IS NULL with null_count 0 must exclude")
	}
	if !Admits(c, ptype.KindInt, Stats{HasNullCount: true, NullCount: 3}, 0, 10) {
		t.Fatalf("IS NULL with null_count > 0 must admit")
	}
}

func TestAdmitsIsNullUnknownNullCountConservative(t *testing.T) {
	c := constraint.NewNull(0, "x", constraint.IsNull)
	if !Admits(c, ptype.KindInt, Stats{HasNullCount: false}, 0, 10) {
		t.Fatalf("IS NULL with no null-count statistics must conservatively admit")
	}
}

func TestAdmitsIsNotNull(t *testing.T) {
	c := constraint.NewNull(0, "x", constraint.IsNotNull)
	if Admits(c, ptype.KindInt, Stats{NumValues: 0}, 0, 10) {
		t.Fatalf("IS NOT NULL with num_values 0 must exclude")
	}
	if !Admits(c, ptype.KindInt, Stats{NumValues: 5}, 0, 10) {
		t.Fatalf("IS NOT NULL with num_values > 0 must admit")
	}
}

func TestAdmitsIntEqOutsideRange(t *testing.T) {
	c := constraint.NewInt(0, "x", constraint.Eq, 500)
	st := Stats{HasMinMax: true, IntMin: 0, IntMax: 100}
	if Admits(c, ptype.KindInt, st, 0, 10) {
		t.Fatalf("x=500 must be excluded by min/max [0,100]")
	}
}

func TestAdmitsIntGt(t *testing.T) {
	c := constraint.NewInt(0, "x", constraint.Gt, 100)
	st := Stats{HasMinMax: true, IntMin: 0, IntMax: 100}
	if Admits(c, ptype.KindInt, st, 0, 10) {
		t.Fatalf("x>100 must be excluded when max==100")
	}
	st.IntMax = 101
	if !Admits(c, ptype.KindInt, st, 0, 10) {
		t.Fatalf("x>100 must be admitted when max==101")
	}
}

func TestAdmitsDoubleRange(t *testing.T) {
	c := constraint.NewDouble(0, "x", constraint.Lt, 1.0)
	st := Stats{HasMinMax: true, DoubleMin: 2.0, DoubleMax: 3.0}
	if Admits(c, ptype.KindDouble, st, 0, 10) {
		t.Fatalf("x<1.0 must be excluded when min==2.0")
	}
}

func TestAdmitsTextLike(t *testing.T) {
	c := constraint.NewText(0, "x", constraint.Like, "abc%")
	st := Stats{HasMinMax: true, BytesMin: []byte("aaa"), BytesMax: []byte("abz")}
	if !Admits(c, ptype.KindText, st, 0, 10) {
		t.Fatalf("prefix 'abc' overlaps [aaa,abz] truncated range")
	}

	st2 := Stats{HasMinMax: true, BytesMin: []byte("xaa"), BytesMax: []byte("xzz")}
	if Admits(c, ptype.KindText, st2, 0, 10) {
		t.Fatalf("prefix 'abc' cannot overlap [xaa,xzz]")
	}
}

func TestAdmitsTextNeMinEqMaxEqV(t *testing.T) {
	c := constraint.NewText(0, "x", constraint.Ne, "same")
	st := Stats{HasMinMax: true, BytesMin: []byte("same"), BytesMax: []byte("same")}
	if Admits(c, ptype.KindText, st, 0, 10) {
		t.Fatalf("x != 'same' must be excluded when min==max=='same'")
	}
}

func TestAdmitsConservativeOnValueTypeMismatch(t *testing.T) {
	c := constraint.NewText(0, "x", constraint.Eq, "abc")
	st := Stats{HasMinMax: true, IntMin: 0, IntMax: 100}
	if !Admits(c, ptype.KindInt, st, 0, 10) {
		t.Fatalf("value-type family mismatch must conservatively admit")
	}
}

func TestAdmitsGlobConservative(t *testing.T) {
	c := constraint.NewText(0, "x", constraint.Glob, "a*")
	st := Stats{HasMinMax: true, BytesMin: []byte("zzz"), BytesMax: []byte("zzz")}
	if !Admits(c, ptype.KindText, st, 0, 10) {
		t.Fatalf("GLOB must conservatively admit regardless of min/max")
	}
}
