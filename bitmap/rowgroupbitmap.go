package bitmap

// RowGroupBitmap is the per-constraint companion described in the data
// model: estimatedMembership starts all-ones and is only ever cleared by a
// proven statistical exclusion; actualMembership starts all-ones
// (optimistic) and is refined downward once a row group's scan completes.
// Grounded in the teacher's IndiceUnmerged/MergeAND refinement idiom
// (lists/merger.go in the source tree), generalized from vectorized row
// indices to one bit per row group.
type RowGroupBitmap struct {
	Estimated Bitset
	Actual    Bitset
}

func New(numRowGroups int) *RowGroupBitmap {
	return &RowGroupBitmap{
		Estimated: NewBitsetAllOnes(numRowGroups),
		Actual:    NewBitsetAllOnes(numRowGroups),
	}
}

func (m *RowGroupBitmap) Len() int { return m.Estimated.Len() }

// ExcludeGroup records that the row-group filter proved group g cannot
// match: both bits are cleared together, per §4.3's combination rule.
func (m *RowGroupBitmap) ExcludeGroup(g int) {
	m.Estimated.Clear(g)
	m.Actual.Clear(g)
}

// RefineActual is called once a group's scan completes; matched is whether
// any row in the group actually satisfied the constraint (hadRows).
func (m *RowGroupBitmap) RefineActual(g int, matched bool) {
	m.Actual.SetTo(g, matched)
}

// Converged reports whether estimated and actual have become identical --
// once true, the cache store must stop writing (§9, "Bitmap persistence").
func (m *RowGroupBitmap) Converged() bool {
	return m.Estimated.Equal(m.Actual)
}
