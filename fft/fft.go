// Package fft implements the radix-2 Cooley-Tukey discrete Fourier
// transform over the BLS12-381 scalar field, in both directions, given an
// explicit domain of roots of unity.
package fft

import (
	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
)

// Transform computes the forward or inverse DFT of values over domainRoots.
// len(values) must equal len(domainRoots) and be a power of two.
//
// Forward: out[k] = Σⱼ values[j] · ω^(jk) mod r.
// Inverse: the forward transform run against the reciprocal domain (roots
// reversed from index 1), then every output scaled by 1/n; this is
// equivalent to, and implemented as, calling the forward butterflies on the
// conjugate domain.
//
// Transform(Transform(v, D, false), D, true) == v for any v of matching size.
func Transform(values []field.Element, domainRoots []field.Element, inverse bool) ([]field.Element, error) {
	n := len(values)
	if n != len(domainRoots) {
		return nil, daserr.ErrLengthMismatch
	}
	if !field.IsPowerOfTwo(uint64(n)) {
		return nil, daserr.ErrInvalidDomain
	}

	roots := domainRoots
	if inverse {
		roots = conjugateDomain(domainRoots)
	}

	out := make([]field.Element, n)
	copy(out, values)

	if err := bitReversalPermute(out); err != nil {
		return nil, err
	}

	// Iterative Cooley-Tukey butterflies.
	for size := 2; size <= n; size *= 2 {
		half := size / 2
		step := n / size
		for start := 0; start < n; start += size {
			for i := 0; i < half; i++ {
				w := roots[i*step]
				var t field.Element
				t.Mul(&w, &out[start+half+i])

				var even field.Element
				even.Set(&out[start+i])

				out[start+i].Add(&even, &t)
				out[start+half+i].Sub(&even, &t)
			}
		}
	}

	if inverse {
		nInv := field.Inv(field.FromUint64(uint64(n)))
		for i := range out {
			out[i].Mul(&out[i], &nInv)
		}
	}

	return out, nil
}

// conjugateDomain returns [ω⁰, ω^(n-1), ω^(n-2), ..., ω¹] — the domain roots
// reversed from index 1, equivalent to using 1/ω as the base root.
func conjugateDomain(domainRoots []field.Element) []field.Element {
	n := len(domainRoots)
	out := make([]field.Element, n)
	out[0] = domainRoots[0]
	for i := 1; i < n; i++ {
		out[i] = domainRoots[n-i]
	}
	return out
}

// bitReversalPermute reorders values in place by bit-reversed index, the
// standard precursor to iterative in-place butterflies.
func bitReversalPermute(values []field.Element) error {
	n := uint64(len(values))
	for i := range values {
		j, err := field.ReverseBits(uint64(i), n)
		if err != nil {
			return err
		}
		if j > uint64(i) {
			values[i], values[j] = values[j], values[i]
		}
	}
	return nil
}
