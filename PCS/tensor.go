package pcs

import "binius-PCS/binaryfield"

// EvalTensor expands an evaluation point into its 2^len(point) multilinear
// equality coefficients: out[k] = Π_j (k_j == 1 ? point[j] : 1 + point[j]),
// where k_j is bit j of k (point[0] drives the least significant bit). The
// inner product of this vector with an evaluation table is exactly the
// multilinear extension evaluated at the point.
func EvalTensor(point []binaryfield.Elem) []binaryfield.Elem {
	out := []binaryfield.Elem{binaryfield.One()}
	for _, c := range point {
		next := make([]binaryfield.Elem, 2*len(out))
		for i, x := range out {
			xc := x.Mul(c)
			next[i] = x.Add(xc)
			next[len(out)+i] = xc
		}
		out = next
	}
	return out
}

// dot returns the inner product of two equal-length vectors.
func dot(a, b []binaryfield.Elem) binaryfield.Elem {
	acc := binaryfield.Zero()
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}
