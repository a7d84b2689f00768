package binaryfield

import "fmt"

// Lanes is the number of 16-bit field elements packed into one Packed word.
const Lanes = 4

// laneBits is the width of one lane in bits.
const laneBits = 16

// ErrLengthMismatch is returned when a packed-field operand has the wrong
// number of lanes.
var ErrLengthMismatch = fmt.Errorf("binaryfield: packed operand must hold exactly %d elements", Lanes)

// Packed bundles four GF(2^16) elements into one uint64, lane i occupying
// bits [16i, 16i+16). All operations are strictly lane-wise: no carry or
// reduction ever crosses a lane boundary, which is what distinguishes this
// from integer SIMD.
type Packed uint64

// Pack stores elems into the four lanes of a Packed word. It fails with
// ErrLengthMismatch unless len(elems) == Lanes.
func Pack(elems []Elem) (Packed, error) {
	if len(elems) != Lanes {
		return 0, ErrLengthMismatch
	}
	var p Packed
	for i, e := range elems {
		p |= Packed(uint64(e) << (laneBits * i))
	}
	return p, nil
}

// PackRow packs a row whose length is a multiple of Lanes into consecutive
// Packed words. It fails with ErrLengthMismatch otherwise.
func PackRow(row []Elem) ([]Packed, error) {
	if len(row)%Lanes != 0 {
		return nil, ErrLengthMismatch
	}
	out := make([]Packed, len(row)/Lanes)
	for i := range out {
		p, err := Pack(row[i*Lanes : (i+1)*Lanes])
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Unpack returns the four lane elements of p.
func (p Packed) Unpack() [Lanes]Elem {
	var out [Lanes]Elem
	for i := range out {
		out[i] = Elem(uint16(p >> (laneBits * i)))
	}
	return out
}

// UnpackRow expands packed words back into a flat row of elements.
func UnpackRow(packed []Packed) []Elem {
	out := make([]Elem, 0, len(packed)*Lanes)
	for _, p := range packed {
		lanes := p.Unpack()
		out = append(out, lanes[:]...)
	}
	return out
}

// Lane returns the element in lane i.
func (p Packed) Lane(i int) Elem {
	return Elem(uint16(p >> (laneBits * i)))
}

// Add returns the lane-wise sum. Since addition is XOR, all four lanes are
// handled by a single word-wide XOR with no cross-lane interaction.
func (p Packed) Add(q Packed) Packed { return p ^ q }

// Mul returns the lane-wise product, decomposed to one tower multiplication
// per lane.
func (p Packed) Mul(q Packed) Packed {
	var out Packed
	for i := 0; i < Lanes; i++ {
		prod := binMul(uint16(p>>(laneBits*i)), uint16(q>>(laneBits*i)), 0)
		out |= Packed(uint64(prod) << (laneBits * i))
	}
	return out
}

// BroadcastMul multiplies every lane by the scalar s.
func (p Packed) BroadcastMul(s Elem) Packed {
	var out Packed
	for i := 0; i < Lanes; i++ {
		prod := binMul(uint16(p>>(laneBits*i)), uint16(s), 0)
		out |= Packed(uint64(prod) << (laneBits * i))
	}
	return out
}
