package vtab

import (
	"testing"

	"github.com/dot5enko/parquet-vtab/constraint"
)

func TestIdxStrRoundTrip(t *testing.T) {
	specs := []constraintSpec{
		{Column: -1, Op: constraint.Ge},
		{Column: 2, Op: constraint.IsNull},
		{Column: 5, Op: constraint.Like},
	}

	encoded := encodeIdxStr(specs)
	decoded, err := decodeIdxStr(encoded)
	if err != nil {
		t.Fatalf("decodeIdxStr: %v", err)
	}

	if len(decoded) != len(specs) {
		t.Fatalf("got %d specs, want %d", len(decoded), len(specs))
	}
	for i, want := range specs {
		if decoded[i] != want {
			t.Errorf("spec %d: got %+v, want %+v", i, decoded[i], want)
		}
	}
}

func TestIdxStrEmpty(t *testing.T) {
	decoded, err := decodeIdxStr("")
	if err != nil {
		t.Fatalf("decodeIdxStr(\"\"): %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected no specs, got %v", decoded)
	}
}

func TestIdxStrMalformed(t *testing.T) {
	if _, err := decodeIdxStr("not-a-spec"); err == nil {
		t.Fatalf("expected error decoding malformed idxStr")
	}
}

func TestUnquoteArg(t *testing.T) {
	cases := map[string]string{
		`'a/b.parquet'`: "a/b.parquet",
		`"a/b.parquet"`: "a/b.parquet",
		`a/b.parquet`:   "a/b.parquet",
		`''`:            "",
	}
	for in, want := range cases {
		if got := unquoteArg(in); got != want {
			t.Errorf("unquoteArg(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildConstraintTypes(t *testing.T) {
	c, err := buildConstraint(constraintSpec{Column: 0, Op: constraint.Eq}, "x", int64(5))
	if err != nil || c.ValueType != constraint.Integer || c.IntValue != 5 {
		t.Fatalf("int64 constraint: %+v, err=%v", c, err)
	}

	c, err = buildConstraint(constraintSpec{Column: 0, Op: constraint.Eq}, "x", "hello")
	if err != nil || c.ValueType != constraint.Text || c.TextValue != "hello" {
		t.Fatalf("string constraint: %+v, err=%v", c, err)
	}

	c, err = buildConstraint(constraintSpec{Column: 0, Op: constraint.IsNull}, "x", nil)
	if err != nil || c.ValueType != constraint.Null {
		t.Fatalf("IS NULL constraint: %+v, err=%v", c, err)
	}

	if _, err := buildConstraint(constraintSpec{Column: 0, Op: constraint.Eq}, "x", struct{}{}); err == nil {
		t.Fatalf("expected error for unsupported value type")
	}
}

// TestBuildConstraintsMixedNullAndValuedAttribution is the regression
// case for the argv-arity bug: go-sqlite3 allocates a vals[] slot for
// every Used constraint, including IS NULL, passing it a NULL. If
// buildConstraints skipped a slot for IS NULL instead of consuming one,
// a valued constraint listed after it would read the wrong vals[] entry.
func TestBuildConstraintsMixedNullAndValuedAttribution(t *testing.T) {
	specs := []constraintSpec{
		{Column: -1, Op: constraint.IsNull},
		{Column: -1, Op: constraint.Eq},
	}
	vals := []interface{}{nil, int64(5)}

	constraints, err := (&Cursor{}).buildConstraints(specs, vals)
	if err != nil {
		t.Fatalf("buildConstraints: %v", err)
	}

	if constraints[0].ValueType != constraint.Null {
		t.Fatalf("constraint 0 (IS NULL): got %+v, want ValueType=Null", constraints[0])
	}
	if constraints[1].ValueType != constraint.Integer || constraints[1].IntValue != 5 {
		t.Fatalf("constraint 1 (= 5): got %+v, want Integer 5 -- the IS NULL slot must not have shifted this value", constraints[1])
	}
}
