// Package field implements the scalar-field helpers kzgshard layers on top
// of gnark-crypto's BLS12-381 scalar field: modular inverse and
// exponentiation, power-of-two checks, and the reverse-bit-order
// permutation used throughout the blob/sample convention.
package field

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/dascore/kzgshard/internal/daserr"
)

// Element is a scalar in [0, r). It is an alias for gnark-crypto's Montgomery-
// form representation so callers can pass values straight to the curve
// library without a conversion step.
type Element = fr.Element

// Modulus returns r, the BLS12-381 scalar field order.
func Modulus() *big.Int {
	return fr.Modulus()
}

// Zero and One are convenience constructors.
func Zero() Element { var e Element; return e }

func One() Element {
	var e Element
	e.SetOne()
	return e
}

// FromUint64 builds an Element from a small unsigned integer.
func FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// FromInt64 builds an Element from a signed integer, wrapping negative
// values into [0, r) the same way the reference Python reduces negative
// coefficients mod r.
func FromInt64(v int64) Element {
	var e Element
	e.SetInt64(v)
	return e
}

// Inv returns y in [0, r) with x*y ≡ 1 (mod r), or 0 when x == 0.
//
// gnark-crypto's Inverse computes x^(r-2) mod r (Fermat's little theorem)
// rather than the extended-Euclid sketch in the reference algorithm; both
// satisfy inv(0) = 0, since 0 raised to any positive power is 0.
func Inv(x Element) Element {
	var y Element
	y.Inverse(&x)
	return y
}

// PowMod returns x^k mod r via gnark-crypto's right-to-left square-and-
// multiply exponentiation.
func PowMod(x Element, k uint64) Element {
	var y Element
	y.Exp(x, new(big.Int).SetUint64(k))
	return y
}

// IsPowerOfTwo reports whether n > 0 and n has exactly one set bit.
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// ReverseBits reverses the low log2(n) bits of i, where n must be a power of
// two. Returns daserr.ErrInvalidDomain otherwise.
func ReverseBits(i, n uint64) (uint64, error) {
	if !IsPowerOfTwo(n) {
		return 0, daserr.ErrInvalidDomain
	}
	if n == 1 {
		return 0, nil
	}
	k := bits.Len64(n - 1) // log2(n)
	return bits.Reverse64(i) >> (64 - k), nil
}

// RBOPermute returns a copy of v permuted by bit-reversing its indices:
// out[i] = v[reverseBits(i, len(v))]. len(v) must be a power of two. The
// permutation is involutive: RBOPermute(RBOPermute(v)) == v.
func RBOPermute[T any](v []T) ([]T, error) {
	n := uint64(len(v))
	if !IsPowerOfTwo(n) {
		return nil, daserr.ErrInvalidDomain
	}
	out := make([]T, n)
	for i := range v {
		j, err := ReverseBits(uint64(i), n)
		if err != nil {
			return nil, err
		}
		out[i] = v[j]
	}
	return out, nil
}
