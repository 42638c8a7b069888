package vtab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dot5enko/parquet-vtab/constraint"
)

// constraintSpec is what BestIndex decides to push down for one
// constraint: which column and which operator. idxStr is this package's
// wire format for handing that decision from BestIndex to Filter across
// the host's opaque idxNum/idxStr/vals calling convention. Every pushed
// spec gets exactly one vals[] slot at Filter time, including IS NULL/IS
// NOT NULL -- go-sqlite3 allocates an argvIndex per Used constraint
// regardless of operator, so there is nothing to track here beyond
// column and operator.
type constraintSpec struct {
	Column int
	Op     constraint.Operator
}

func encodeIdxStr(specs []constraintSpec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = fmt.Sprintf("%d,%d", s.Column, s.Op)
	}
	return strings.Join(parts, ";")
}

func decodeIdxStr(idxStr string) ([]constraintSpec, error) {
	if idxStr == "" {
		return nil, nil
	}
	parts := strings.Split(idxStr, ";")
	specs := make([]constraintSpec, 0, len(parts))
	for _, p := range parts {
		fields := strings.Split(p, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("vtab: malformed idxStr entry %q", p)
		}
		col, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("vtab: malformed idxStr column %q: %w", fields[0], err)
		}
		op, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("vtab: malformed idxStr op %q: %w", fields[1], err)
		}
		specs = append(specs, constraintSpec{Column: col, Op: constraint.Operator(op)})
	}
	return specs, nil
}
