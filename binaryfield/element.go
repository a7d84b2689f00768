// Package binaryfield implements arithmetic in the binary tower field
// GF(2^16), built as four iterated quadratic extensions of GF(2). Elements
// are stored in a uint16; addition is XOR and multiplication reduces
// recursively (Karatsuba split plus the tower identity x_{i+1}^2 = 1 +
// x_{i+1}·x_i) down to single-bit AND, so the same code path serves every
// sub-field size without lookup tables.
package binaryfield

import "math/bits"

// Elem is an element of GF(2^16) (or of the sub-field GF(2^2^k) whose bits
// it occupies). The zero value is the additive identity.
type Elem uint16

// Zero returns the additive identity.
func Zero() Elem { return 0 }

// One returns the multiplicative identity.
func One() Elem { return 1 }

// IsZero reports whether a is the additive identity.
func (a Elem) IsZero() bool { return a == 0 }

// Add returns a + b. Addition in characteristic 2 is XOR, so it is its own
// inverse and Sub is the same operation.
func (a Elem) Add(b Elem) Elem { return a ^ b }

// Sub returns a - b, which equals a + b in characteristic 2.
func (a Elem) Sub(b Elem) Elem { return a ^ b }

// Mul returns a · b under the tower reduction.
func (a Elem) Mul(b Elem) Elem {
	return Elem(binMul(uint16(a), uint16(b), 0))
}

// Div returns a · b⁻¹. It panics if b is zero.
func (a Elem) Div(b Elem) Elem { return a.Mul(b.Inv()) }

// Pow returns a^exp by square-and-multiply. exp is an ordinary integer
// exponent, not a field element.
func (a Elem) Pow(exp uint) Elem {
	result := One()
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base)
		}
	}
	return result
}

// Inv returns the multiplicative inverse of a, computed as a^(2^L - 2) where
// 2^L is the size of the smallest tower level containing a (Fermat). It
// panics if a is zero.
func (a Elem) Inv() Elem {
	if a == 0 {
		panic("binaryfield: inverse of zero element")
	}
	bl := uint(16 - bits.LeadingZeros16(uint16(a)))
	l := uint(1) << (16 - bits.LeadingZeros16(uint16(bl-1)))
	return a.Pow((1 << l) - 2)
}

// Bytes returns the canonical fixed-width serialization of a: two bytes,
// big-endian.
func (a Elem) Bytes() [2]byte {
	return [2]byte{byte(a >> 8), byte(a)}
}

// ElemFromBytes reads the canonical two-byte big-endian encoding.
func ElemFromBytes(b [2]byte) Elem {
	return Elem(uint16(b[0])<<8 | uint16(b[1]))
}

// binMul multiplies v1 and v2 in the binary tower field. length is the bit
// width of the tower level being multiplied in (a power of two); 0 means
// "infer the smallest level containing both operands". The recursion splits
// each operand into low/high halves l + r·x_i and uses three half-width
// multiplications (Karatsuba), with r1r2·x_i reduced through the identity
// x_i^2 = 1 + x_i·x_{i-1}. The (l1,r1) == (0,1) case is the special-cased
// multiplication by the basis element itself.
func binMul(v1, v2 uint16, length int) uint16 {
	if v1 < 2 || v2 < 2 {
		return v1 * v2
	}

	if length == 0 {
		max := v1
		if v2 > max {
			max = v2
		}
		bitLen := 16 - bits.LeadingZeros16(max)
		length = 1 << (32 - bits.LeadingZeros32(uint32(bitLen-1)))
	}

	halfLen := length / 2
	quarterLen := length / 4
	halfMask := uint16(1)<<halfLen - 1

	l1, r1 := v1&halfMask, v1>>halfLen
	l2, r2 := v2&halfMask, v2>>halfLen

	if l1 == 0 && r1 == 1 {
		outR := binMul(1<<quarterLen, r2, halfLen) ^ l2
		return r2 ^ outR<<halfLen
	}

	l1l2 := binMul(l1, l2, halfLen)
	r1r2 := binMul(r1, r2, halfLen)
	r1r2High := binMul(1<<quarterLen, r1r2, halfLen)
	z3 := binMul(l1^r1, l2^r2, halfLen)
	return l1l2 ^ r1r2 ^ (z3^l1l2^r1r2^r1r2High)<<halfLen
}
