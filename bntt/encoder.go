// Package bntt implements the additive number-theoretic transform over the
// binary tower field and the Reed–Solomon style row extension built on it.
// Binary fields have no multiplicative subgroup of smooth order, so instead
// of evaluating at roots of unity the transform evaluates over the additive
// subspace {0, 1, ..., n-1} of GF(2^16), splitting it recursively through
// the normalized subspace polynomials Ŵ_i (the additive analogue of twiddle
// factors). Forward and inverse transforms cost O(n log n) field operations.
package bntt

import (
	"fmt"
	"math/bits"

	"binius-PCS/binaryfield"
)

// Encoder owns the precomputed Ŵ_i twiddle tables for one transform domain.
// The tables are immutable after construction, so a single Encoder is safe
// to share across concurrent per-row transforms.
type Encoder struct {
	logN int
	// wHat[lvl][k] = Ŵ_lvl(k · 2^(lvl+1)): the subspace-polynomial values
	// consumed at recursion level lvl, where the sub-transform of size
	// 2^(lvl+1) starting at offset k·2^(lvl+1) uses exactly one of them.
	wHat [][]binaryfield.Elem
}

// NewEncoder precomputes twiddles for transforms of length up to 2^logN.
// It panics if logN is outside [0, 16], the range representable by the
// 16-bit field domain.
func NewEncoder(logN int) *Encoder {
	if logN < 0 || logN > 16 {
		panic("bntt: transform domain must satisfy 0 <= logN <= 16")
	}
	n := 1 << logN
	e := &Encoder{logN: logN, wHat: make([][]binaryfield.Elem, logN)}

	// cur[pt] = Ŵ_lvl(pt) over the whole domain, advanced one level at a
	// time via Ŵ_i(x) = Ŵ_{i-1}(x)(Ŵ_{i-1}(x)+1) / (Ŵ_{i-1}(2^i)(Ŵ_{i-1}(2^i)+1)).
	// Ŵ_0 is the identity.
	cur := make([]binaryfield.Elem, n)
	for pt := 0; pt < n; pt++ {
		cur[pt] = binaryfield.Elem(pt)
	}
	for lvl := 0; lvl < logN; lvl++ {
		step := 1 << (lvl + 1)
		tab := make([]binaryfield.Elem, n/step)
		for k := range tab {
			tab[k] = cur[k*step]
		}
		e.wHat[lvl] = tab

		if lvl+1 < logN {
			quot := cur[1<<(lvl+1)]
			invQuot := quot.Mul(quot.Add(binaryfield.One())).Inv()
			for pt := 0; pt < n; pt++ {
				cur[pt] = cur[pt].Mul(cur[pt].Add(binaryfield.One())).Mul(invQuot)
			}
		}
	}
	return e
}

// N returns the maximum transform length.
func (e *Encoder) N() int { return 1 << e.logN }

// checkLen validates a transform operand length against the domain.
func (e *Encoder) checkLen(n int) error {
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("bntt: transform length %d is not a power of two", n)
	}
	if n > e.N() {
		return fmt.Errorf("bntt: transform length %d exceeds domain size %d", n, e.N())
	}
	return nil
}

// NTT converts polynomial coefficients (in the novel additive basis) into
// evaluations over the subspace {0, ..., len(vals)-1}. The input is not
// modified.
func (e *Encoder) NTT(vals []binaryfield.Elem) ([]binaryfield.Elem, error) {
	if err := e.checkLen(len(vals)); err != nil {
		return nil, err
	}
	out := append([]binaryfield.Elem(nil), vals...)
	e.ntt(out, 0)
	return out, nil
}

// InvNTT converts evaluations over {0, ..., len(vals)-1} back into
// coefficients. The input is not modified.
func (e *Encoder) InvNTT(vals []binaryfield.Elem) ([]binaryfield.Elem, error) {
	if err := e.checkLen(len(vals)); err != nil {
		return nil, err
	}
	out := append([]binaryfield.Elem(nil), vals...)
	e.invNTT(out, 0)
	return out, nil
}

// ntt runs the forward butterfly in place on a sub-transform whose domain
// offset is start (always a multiple of len(vals)).
func (e *Encoder) ntt(vals []binaryfield.Elem, start int) {
	n := len(vals)
	if n == 1 {
		return
	}
	half := n / 2
	lvl := bits.TrailingZeros(uint(half))
	c := e.wHat[lvl][start>>(lvl+1)]
	for i := 0; i < half; i++ {
		lo := vals[i].Add(vals[half+i].Mul(c))
		vals[i] = lo
		vals[half+i] = lo.Add(vals[half+i])
	}
	e.ntt(vals[:half], start)
	e.ntt(vals[half:], start+half)
}

// invNTT inverts ntt: it recurses first, then undoes the butterfly using
// lo = a(Ŵ+1) + bŴ, hi = a + b for the pair (a, b) produced by the forward
// pass.
func (e *Encoder) invNTT(vals []binaryfield.Elem, start int) {
	n := len(vals)
	if n == 1 {
		return
	}
	half := n / 2
	e.invNTT(vals[:half], start)
	e.invNTT(vals[half:], start+half)
	lvl := bits.TrailingZeros(uint(half))
	c1 := e.wHat[lvl][start>>(lvl+1)]
	c2 := c1.Add(binaryfield.One())
	for i := 0; i < half; i++ {
		a, b := vals[i], vals[half+i]
		vals[i] = a.Mul(c2).Add(b.Mul(c1))
		vals[half+i] = a.Add(b)
	}
}

// Extend Reed–Solomon-extends row by the given rate: interpolate the unique
// degree-<len(row) polynomial through the row (inverse transform), zero-pad
// the coefficients to len(row)·rate, and re-evaluate over the larger
// subspace (forward transform). The code is systematic: the first len(row)
// output symbols equal the input row. rate must be a power of two >= 1; the
// extended length must fit the encoder's domain. A length-1 row at rate 1
// is returned unchanged.
func (e *Encoder) Extend(row []binaryfield.Elem, rate int) ([]binaryfield.Elem, error) {
	if rate < 1 || rate&(rate-1) != 0 {
		return nil, fmt.Errorf("bntt: expansion rate %d is not a power of two", rate)
	}
	if err := e.checkLen(len(row)); err != nil {
		return nil, err
	}
	extLen := len(row) * rate
	if err := e.checkLen(extLen); err != nil {
		return nil, err
	}

	coeffs, err := e.InvNTT(row)
	if err != nil {
		return nil, err
	}
	padded := make([]binaryfield.Elem, extLen)
	copy(padded, coeffs)
	e.ntt(padded, 0)
	return padded, nil
}
