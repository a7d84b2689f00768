package pcs

import (
	"encoding/binary"
	"fmt"

	"binius-PCS/binaryfield"
)

// elemsBytes serializes a field-element vector canonically: two big-endian
// bytes per element, no framing. Used for transcript absorbs and as the
// column leaf encoding, so both sides must agree on it byte for byte.
func elemsBytes(elems []binaryfield.Elem) []byte {
	out := make([]byte, 2*len(elems))
	for i, e := range elems {
		b := e.Bytes()
		out[2*i] = b[0]
		out[2*i+1] = b[1]
	}
	return out
}

// columnBytes is the leaf encoding of one extended-matrix column.
func columnBytes(col []binaryfield.Elem) []byte {
	return elemsBytes(col)
}

// elemsFromBytes inverts elemsBytes.
func elemsFromBytes(data []byte) ([]binaryfield.Elem, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd element byte count %d", ErrShapeMismatch, len(data))
	}
	out := make([]binaryfield.Elem, len(data)/2)
	for i := range out {
		out[i] = binaryfield.ElemFromBytes([2]byte{data[2*i], data[2*i+1]})
	}
	return out, nil
}

// Opening wire format, all integers big-endian uint32:
//
//	tprimeLen | rows | pathLen | queries
//	TPrime (2B per element) | Eval (2B)
//	per query: index | column (rows × 2B) | path (pathLen × 32B)
//
// Every field is fixed-width given the header, so the decoder can size-check
// the whole buffer before reading any payload.

// MarshalBinary encodes the opening.
func (op *Opening) MarshalBinary() ([]byte, error) {
	pathLen := 0
	if len(op.Paths) > 0 {
		pathLen = len(op.Paths[0])
	}
	rows := 0
	if len(op.Columns) > 0 {
		rows = len(op.Columns[0])
	}
	queries := len(op.Indices)
	if len(op.Columns) != queries || len(op.Paths) != queries {
		return nil, fmt.Errorf("%w: opening has %d indices, %d columns, %d paths", ErrShapeMismatch, queries, len(op.Columns), len(op.Paths))
	}

	total := 16 + 2*len(op.TPrime) + 2 + queries*(4+2*rows+pathLen*digestSize)
	out := make([]byte, 0, total)

	var u32 [4]byte
	putU32 := func(v int) {
		binary.BigEndian.PutUint32(u32[:], uint32(v))
		out = append(out, u32[:]...)
	}
	putU32(len(op.TPrime))
	putU32(rows)
	putU32(pathLen)
	putU32(queries)
	out = append(out, elemsBytes(op.TPrime)...)
	eb := op.Eval.Bytes()
	out = append(out, eb[:]...)

	for qi := 0; qi < queries; qi++ {
		if len(op.Columns[qi]) != rows || len(op.Paths[qi]) != pathLen {
			return nil, fmt.Errorf("%w: ragged opening at query %d", ErrShapeMismatch, qi)
		}
		putU32(op.Indices[qi])
		out = append(out, elemsBytes(op.Columns[qi])...)
		for _, sib := range op.Paths[qi] {
			if len(sib) != digestSize {
				return nil, fmt.Errorf("%w: path digest of %d bytes at query %d", ErrShapeMismatch, len(sib), qi)
			}
			out = append(out, sib...)
		}
	}
	return out, nil
}

// UnmarshalBinary decodes an opening produced by MarshalBinary.
func (op *Opening) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("%w: opening truncated at header", ErrShapeMismatch)
	}
	tprimeLen := int(binary.BigEndian.Uint32(data[0:]))
	rows := int(binary.BigEndian.Uint32(data[4:]))
	pathLen := int(binary.BigEndian.Uint32(data[8:]))
	queries := int(binary.BigEndian.Uint32(data[12:]))
	// 1<<20 caps every dimension: far above any real parameter set, small
	// enough that a forged header cannot drive allocations.
	const dimCap = 1 << 20
	if tprimeLen > dimCap || rows > dimCap || pathLen > 64 || queries > dimCap {
		return fmt.Errorf("%w: opening header out of range", ErrShapeMismatch)
	}
	want := 16 + 2*tprimeLen + 2 + queries*(4+2*rows+pathLen*digestSize)
	if len(data) != want {
		return fmt.Errorf("%w: opening is %d bytes, want %d", ErrShapeMismatch, len(data), want)
	}

	off := 16
	tPrime, err := elemsFromBytes(data[off : off+2*tprimeLen])
	if err != nil {
		return err
	}
	off += 2 * tprimeLen
	eval := binaryfield.ElemFromBytes([2]byte{data[off], data[off+1]})
	off += 2

	indices := make([]int, queries)
	columns := make([][]binaryfield.Elem, queries)
	paths := make([][][]byte, queries)
	for qi := 0; qi < queries; qi++ {
		indices[qi] = int(binary.BigEndian.Uint32(data[off:]))
		off += 4
		col, err := elemsFromBytes(data[off : off+2*rows])
		if err != nil {
			return err
		}
		columns[qi] = col
		off += 2 * rows
		path := make([][]byte, pathLen)
		for lvl := range path {
			path[lvl] = append([]byte(nil), data[off:off+digestSize]...)
			off += digestSize
		}
		paths[qi] = path
	}

	op.TPrime = tPrime
	op.Eval = eval
	op.Indices = indices
	op.Columns = columns
	op.Paths = paths
	return nil
}
