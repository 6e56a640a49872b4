// Package poly implements coefficient-form polynomial operations: point
// evaluation, synthetic division, the vanishing polynomial, and Lagrange
// interpolation. Coefficients are little-endian (index i is the coefficient
// of X^i) and callers' slice lengths are preserved verbatim — no trailing-
// zero stripping is performed anywhere in this package.
package poly

import (
	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
)

// Evaluate computes p(x) using Horner's method.
func Evaluate(p []field.Element, x field.Element) field.Element {
	var result field.Element // zero
	for i := len(p) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &p[i])
	}
	return result
}

// DivPolys performs synthetic long division a(X) / b(X), returning the
// quotient q with len(q) == len(a) - len(b) + 1. It requires len(a) >=
// len(b); the remainder is left in a scratch copy and not returned. Every
// caller in this module needs only the quotient: the single-point proof (the
// quotient of p by X - z equals that of p - p(z)), the multiproof (the
// remainder modulo the coset's vanishing polynomial is the interpolant the
// verifier rebuilds from the claimed values), and Interpolate, where the
// division is exact.
func DivPolys(a, b []field.Element) ([]field.Element, error) {
	if len(a) < len(b) || len(b) == 0 {
		return nil, daserr.ErrLengthMismatch
	}

	work := make([]field.Element, len(a))
	copy(work, a)

	bLead := b[len(b)-1]
	bLeadInv := field.Inv(bLead)

	qLen := len(a) - len(b) + 1
	q := make([]field.Element, qLen)

	apos := len(work) - 1
	bpos := len(b) - 1
	diff := apos - bpos
	for diff >= 0 {
		var quot field.Element
		quot.Mul(&work[apos], &bLeadInv)
		q[diff] = quot

		for i := bpos; i >= 0; i-- {
			var term field.Element
			term.Mul(&b[i], &quot)
			work[diff+i].Sub(&work[diff+i], &term)
		}

		apos--
		diff--
	}
	return q, nil
}

// ZPoly returns the vanishing polynomial Π(X - xᵢ) for the given points, with
// len(result) == len(xs)+1 and leading coefficient 1.
func ZPoly(xs []field.Element) []field.Element {
	root := make([]field.Element, 1, len(xs)+1)
	root[0] = field.One()

	for _, x := range xs {
		root = append([]field.Element{field.Zero()}, root...)
		for j := 0; j < len(root)-1; j++ {
			var term field.Element
			term.Mul(&root[j+1], &x)
			root[j].Sub(&root[j], &term)
		}
	}
	return root
}

// Interpolate returns the unique polynomial p of degree < len(xs) with
// p(xs[i]) == ys[i], via Lagrange interpolation (O(n^2) field ops). xs must
// be pairwise distinct.
func Interpolate(xs, ys []field.Element) ([]field.Element, error) {
	if len(xs) != len(ys) {
		return nil, daserr.ErrLengthMismatch
	}

	root := ZPoly(xs)
	if len(root) != len(ys)+1 {
		return nil, daserr.ErrLengthMismatch
	}

	nums := make([][]field.Element, len(xs))
	denoms := make([]field.Element, len(xs))
	for i, x := range xs {
		var negX field.Element
		negX.Neg(&x)
		num, err := DivPolys(root, []field.Element{negX, field.One()})
		if err != nil {
			return nil, err
		}
		nums[i] = num
		denoms[i] = Evaluate(num, x)
	}

	invDenoms := make([]field.Element, len(xs))
	for i, d := range denoms {
		invDenoms[i] = field.Inv(d)
	}

	out := make([]field.Element, len(ys))
	for i := range xs {
		if ys[i].IsZero() {
			continue
		}
		var yslice field.Element
		yslice.Mul(&ys[i], &invDenoms[i])

		for j := range out {
			if nums[i][j].IsZero() {
				continue
			}
			var term field.Element
			term.Mul(&nums[i][j], &yslice)
			out[j].Add(&out[j], &term)
		}
	}
	return out, nil
}
