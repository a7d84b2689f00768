package pcs

import (
	"fmt"
	"math/bits"
	"time"

	"binius-PCS/binaryfield"
	"binius-PCS/bntt"
	"binius-PCS/prof"
)

// Commit reshapes the evaluation table into a matrix, extends every row, and
// Merkle-commits the extended columns. The returned ProverState is required
// by Open; the Commitment is what travels to the verifier.
func (s *Scheme) Commit(evals []binaryfield.Elem) (*Commitment, *ProverState, error) {
	defer prof.Track(time.Now(), "pcs.Commit")

	n := len(evals)
	if n < 4 || n&(n-1) != 0 {
		return nil, nil, fmt.Errorf("%w: evaluation table length %d, want a power of two >= 4", ErrShapeMismatch, n)
	}
	m := bits.TrailingZeros(uint(n))
	logRows, logCols, ok := chooseDims(m, s.params.LogCols)
	if !ok {
		return nil, nil, fmt.Errorf("%w: LogCols %d exceeds table exponent %d", ErrShapeMismatch, s.params.LogCols, m)
	}
	nrows, ncols := 1<<logRows, 1<<logCols
	logExt := logCols + s.params.LogRate
	if logExt > fieldBits {
		return nil, nil, fmt.Errorf("%w: extended width 2^%d exceeds the field domain", ErrShapeMismatch, logExt)
	}
	extCols := 1 << logExt

	enc := bntt.NewEncoder(logExt)
	rows := make([][]binaryfield.Elem, nrows)
	ext := make([][]binaryfield.Elem, nrows)
	encErrs := make([]error, nrows)
	parallelFor(nrows, func(i int) {
		rows[i] = evals[i*ncols : (i+1)*ncols]
		ext[i], encErrs[i] = enc.Extend(rows[i], 1<<s.params.LogRate)
	})
	for _, err := range encErrs {
		if err != nil {
			return nil, nil, err
		}
	}

	leaves := make([][]byte, extCols)
	parallelFor(extCols, func(j int) {
		leaves[j] = columnBytes(transposeColumn(ext, j))
	})
	tree := BuildMerkleTree(leaves)

	com := &Commitment{
		Root:      tree.Root(),
		Rows:      nrows,
		Cols:      ncols,
		ExtCols:   extCols,
		FieldBits: fieldBits,
	}
	st := &ProverState{rows: rows, ext: ext, tree: tree, enc: enc, com: com}
	return com, st, nil
}

// Open produces the evaluation proof for one point. The transcript absorbs
// the root, the point, and the folded row before the spot-check columns are
// drawn, so the prover commits to everything a challenge depends on before
// seeing it.
func (s *Scheme) Open(st *ProverState, point []binaryfield.Elem) (*Opening, error) {
	defer prof.Track(time.Now(), "pcs.Open")

	if st == nil || st.tree == nil {
		return nil, fmt.Errorf("%w: open without a prior commit", ErrShapeMismatch)
	}
	com := st.com
	logRows := bits.TrailingZeros(uint(com.Rows))
	logCols := bits.TrailingZeros(uint(com.Cols))
	if len(point) != logRows+logCols {
		return nil, fmt.Errorf("%w: point has %d coordinates, want %d", ErrShapeMismatch, len(point), logRows+logCols)
	}
	if s.params.Queries > com.ExtCols {
		return nil, fmt.Errorf("%w: %d queries over %d columns", ErrShapeMismatch, s.params.Queries, com.ExtCols)
	}

	wRow := EvalTensor(point[logCols:])
	tPrime := foldRows(st.rows, wRow)
	wCol := EvalTensor(point[:logCols])
	eval := dot(wCol, tPrime)

	tr := NewTranscript(protocolTag)
	tr.Absorb("root", com.Root[:])
	tr.Absorb("point", elemsBytes(point))
	tr.Absorb("t-prime", elemsBytes(tPrime))
	indices := tr.ChallengeIndices("columns", s.params.Queries, com.ExtCols)

	columns := make([][]binaryfield.Elem, len(indices))
	paths := make([][][]byte, len(indices))
	for qi, idx := range indices {
		columns[qi] = transposeColumn(st.ext, idx)
		paths[qi] = st.tree.Path(idx)
	}

	return &Opening{
		TPrime:  tPrime,
		Eval:    eval,
		Indices: indices,
		Columns: columns,
		Paths:   paths,
	}, nil
}
