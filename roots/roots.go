// Package roots precomputes the roots of unity that fft, poly, and kzg
// operate over, following the reverse-bit-order convention blobs are stored
// in.
package roots

import (
	"math/big"
	"sync"

	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
)

// PrimitiveRootOfUnity is the fixed generator g = 7 of the BLS12-381 scalar
// field's multiplicative group, used to derive every domain's base root.
const PrimitiveRootOfUnity = 7

// Compute returns [ω⁰, ω¹, …, ω^(n-1)] for the unique subgroup of size n,
// where ω = g^((r-1)/n) mod r. It fails with daserr.ErrInvalidDomain unless
// n > 0, n is a power of two, and n divides r-1.
func Compute(n uint64) ([]field.Element, error) {
	if !field.IsPowerOfTwo(n) {
		return nil, daserr.ErrInvalidDomain
	}

	rMinus1 := new(big.Int).Sub(field.Modulus(), big.NewInt(1))
	nBig := new(big.Int).SetUint64(n)
	quotient, rem := new(big.Int).QuoRem(rMinus1, nBig, new(big.Int))
	if rem.Sign() != 0 {
		return nil, daserr.ErrInvalidDomain
	}

	var g field.Element
	g.SetUint64(PrimitiveRootOfUnity)
	var root field.Element
	root.Exp(g, quotient)

	roots := make([]field.Element, n)
	roots[0] = field.One()
	for i := uint64(1); i < n; i++ {
		roots[i].Mul(&roots[i-1], &root)
	}
	return roots, nil
}

// Domain bundles a size-n subgroup's roots together with their reverse-bit-
// order permutation, the shape every higher-level caller (fft, kzg, shard)
// needs: the natural order for algebra, the rbo order for indexing blobs.
type Domain struct {
	Size  uint64
	Roots []field.Element
	RBO   []field.Element
}

// NewDomain computes a Domain for size n.
func NewDomain(n uint64) (*Domain, error) {
	r, err := Compute(n)
	if err != nil {
		return nil, err
	}
	rbo, err := field.RBOPermute(r)
	if err != nil {
		return nil, err
	}
	return &Domain{Size: n, Roots: r, RBO: rbo}, nil
}

// Root returns ω^1 for this domain, i.e. Roots[1] (Roots[0] is always 1).
func (d *Domain) Root() field.Element {
	if d.Size == 1 {
		return field.One()
	}
	return d.Roots[1]
}

var (
	canonicalMu    sync.Mutex
	canonicalCache = map[uint64]*Domain{}
)

// Canonical memoizes one Domain per size, matching the "single immutable
// context value" pattern recommended for the module-level globals the
// reference implementation keeps for its canonical blob domain.
func Canonical(n uint64) (*Domain, error) {
	canonicalMu.Lock()
	defer canonicalMu.Unlock()

	if d, ok := canonicalCache[n]; ok {
		return d, nil
	}
	d, err := NewDomain(n)
	if err != nil {
		return nil, err
	}
	canonicalCache[n] = d
	return d, nil
}
