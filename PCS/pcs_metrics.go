package pcs

// OpeningStats is the byte-level size breakdown of one opening, on the wire
// format of MarshalBinary.
type OpeningStats struct {
	TPrimeBytes int
	ColumnBytes int
	PathBytes   int
	IndexBytes  int
	TotalBytes  int
}

// ComputeOpeningStats measures op without serializing it.
func ComputeOpeningStats(op *Opening) OpeningStats {
	var st OpeningStats
	if op == nil {
		return st
	}
	st.TPrimeBytes = 2*len(op.TPrime) + 2 // folded row plus the claimed value
	for _, col := range op.Columns {
		st.ColumnBytes += 2 * len(col)
	}
	for _, path := range op.Paths {
		for _, sib := range path {
			st.PathBytes += len(sib)
		}
	}
	st.IndexBytes = 4 * len(op.Indices)
	st.TotalBytes = 16 + st.TPrimeBytes + st.ColumnBytes + st.PathBytes + st.IndexBytes
	return st
}
