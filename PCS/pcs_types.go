// Package pcs implements a tensor polynomial commitment scheme over the
// binary tower field GF(2^16). The prover reshapes a multilinear evaluation
// table into a matrix, Reed–Solomon-extends each row with the additive NTT,
// and Merkle-commits the extended columns. An opening reveals the folded row
// for a query point plus a transcript-chosen set of spot-check columns; the
// verifier replays the Fiat–Shamir transcript, checks the Merkle paths, and
// checks row-fold consistency at every challenged column.
package pcs

import (
	"errors"

	"binius-PCS/binaryfield"
	"binius-PCS/bntt"
)

// protocolTag seeds every transcript of this scheme; changing it invalidates
// all existing proofs.
const protocolTag = "binius-pcs/v1"

// fieldBits is the width of the committed field. It travels inside the
// commitment so a verifier rejects proofs from a mismatched field build.
const fieldBits = 16

// ErrShapeMismatch reports an operand whose dimensions cannot enter the
// protocol: non-power-of-two tables, points of the wrong arity, openings
// with missing or ragged components.
var ErrShapeMismatch = errors.New("pcs: shape mismatch")

// Params configures a Scheme.
type Params struct {
	// LogRate is the log2 of the Reed–Solomon expansion rate. Higher rates
	// buy soundness per query at the cost of a bigger committed matrix.
	LogRate int
	// Queries is the number of spot-checked columns per opening.
	Queries int
	// LogCols, when positive, pins the matrix width to 2^LogCols instead of
	// the default split.
	LogCols int
}

// Commitment is the verifier's handle on a committed polynomial.
type Commitment struct {
	Root      [digestSize]byte
	Rows      int
	Cols      int
	ExtCols   int
	FieldBits int
}

// ProverState carries everything the prover must retain between Commit and
// Open: the message matrix, its extension, and the column tree.
type ProverState struct {
	rows [][]binaryfield.Elem
	ext  [][]binaryfield.Elem
	tree *MerkleTree
	enc  *bntt.Encoder
	com  *Commitment
}

// Opening is the proof that the committed polynomial evaluates to Eval at
// the opened point.
type Opening struct {
	// TPrime is the message matrix folded by the row tensor.
	TPrime []binaryfield.Elem
	// Eval is the claimed evaluation.
	Eval binaryfield.Elem
	// Indices are the transcript-derived spot-check column positions.
	Indices []int
	// Columns are the revealed extended-matrix columns, one per index.
	Columns [][]binaryfield.Elem
	// Paths are the Merkle authentication paths, one per column.
	Paths [][][]byte
}

// Scheme ties parameters to the commit/open/verify operations.
type Scheme struct {
	params Params
}

// NewScheme validates params. It panics on unusable parameters: these are
// fixed at integration time, not at run time.
func NewScheme(params Params) *Scheme {
	if params.LogRate < 1 || params.LogRate > 8 {
		panic("pcs: LogRate must be in [1, 8]")
	}
	if params.Queries < 1 {
		panic("pcs: Queries must be positive")
	}
	if params.LogCols < 0 || params.LogCols > fieldBits {
		panic("pcs: LogCols out of range")
	}
	return &Scheme{params: params}
}

// Params returns the scheme configuration.
func (s *Scheme) Params() Params { return s.params }
