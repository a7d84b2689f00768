package pcs

import (
	"fmt"
	"math/bits"
	"os"
	"time"

	"binius-PCS/binaryfield"
	"binius-PCS/bntt"
	"binius-PCS/prof"
)

var debugPCS = os.Getenv("DEBUG_PCS") != ""

// Verify checks an opening against a commitment: the spot-check indices must
// match a replay of the transcript, every revealed column must authenticate
// against the root, the row fold must agree with the extended folded row at
// every challenged position, and the column fold of TPrime must equal the
// claimed value. Adversarial input of any shape returns false; Verify never
// panics.
func (s *Scheme) Verify(com *Commitment, point []binaryfield.Elem, value binaryfield.Elem, op *Opening) bool {
	defer prof.Track(time.Now(), "pcs.Verify")

	if com == nil || op == nil {
		return false
	}
	if !validShape(com, point, op, s.params) {
		if debugPCS {
			fmt.Printf("[pcs] verify: malformed commitment or opening shape\n")
		}
		return false
	}
	logCols := bits.TrailingZeros(uint(com.Cols))

	if op.Eval != value {
		if debugPCS {
			fmt.Printf("[pcs] verify: claimed value %d disagrees with opening %d\n", value, op.Eval)
		}
		return false
	}

	tr := NewTranscript(protocolTag)
	tr.Absorb("root", com.Root[:])
	tr.Absorb("point", elemsBytes(point))
	tr.Absorb("t-prime", elemsBytes(op.TPrime))
	indices := tr.ChallengeIndices("columns", s.params.Queries, com.ExtCols)
	for qi := range indices {
		if indices[qi] != op.Indices[qi] {
			if debugPCS {
				fmt.Printf("[pcs] verify: index %d diverges from transcript (got %d, want %d)\n", qi, op.Indices[qi], indices[qi])
			}
			return false
		}
	}

	enc := bntt.NewEncoder(bits.TrailingZeros(uint(com.ExtCols)))
	extT, err := enc.Extend(op.TPrime, com.ExtCols/com.Cols)
	if err != nil {
		if debugPCS {
			fmt.Printf("[pcs] verify: folded row does not encode: %v\n", err)
		}
		return false
	}

	wRow := EvalTensor(point[logCols:])
	wCol := EvalTensor(point[:logCols])
	if dot(wCol, op.TPrime) != value {
		if debugPCS {
			fmt.Printf("[pcs] verify: column fold of folded row disagrees with claimed value\n")
		}
		return false
	}

	for qi, idx := range indices {
		col := op.Columns[qi]
		if !VerifyPath(columnBytes(col), op.Paths[qi], com.Root, idx) {
			if debugPCS {
				fmt.Printf("[pcs] verify: merkle path rejected at column %d\n", idx)
			}
			return false
		}
		if dot(wRow, col) != extT[idx] {
			if debugPCS {
				fmt.Printf("[pcs] verify: row fold mismatch at column %d\n", idx)
			}
			return false
		}
	}
	return true
}

// validShape rejects commitments and openings whose dimensions cannot belong
// to this scheme before any of them is dereferenced.
func validShape(com *Commitment, point []binaryfield.Elem, op *Opening, params Params) bool {
	if com.FieldBits != fieldBits {
		return false
	}
	if !isPow2(com.Rows) || !isPow2(com.Cols) || !isPow2(com.ExtCols) {
		return false
	}
	if com.ExtCols != com.Cols<<params.LogRate || com.ExtCols > 1<<fieldBits {
		return false
	}
	logRows := bits.TrailingZeros(uint(com.Rows))
	logCols := bits.TrailingZeros(uint(com.Cols))
	if len(point) != logRows+logCols {
		return false
	}
	if len(op.TPrime) != com.Cols {
		return false
	}
	if params.Queries > com.ExtCols {
		return false
	}
	if len(op.Indices) != params.Queries || len(op.Columns) != params.Queries || len(op.Paths) != params.Queries {
		return false
	}
	for qi := range op.Indices {
		if op.Indices[qi] < 0 || op.Indices[qi] >= com.ExtCols {
			return false
		}
		if len(op.Columns[qi]) != com.Rows {
			return false
		}
	}
	return true
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }
