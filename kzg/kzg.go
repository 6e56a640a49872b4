// Package kzg implements KZG polynomial commitments over BLS12-381 and the
// two proof systems built on them: single-point opening proofs and
// multi-point ("coset") opening proofs, together with their pairing-based
// verifiers.
package kzg

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/dascore/kzgshard/fft"
	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
	"github.com/dascore/kzgshard/internal/dlog"
	"github.com/dascore/kzgshard/msm"
	"github.com/dascore/kzgshard/poly"
	"github.com/dascore/kzgshard/roots"
	"github.com/dascore/kzgshard/trustedsetup"
)

// Commit returns the KZG commitment to p in coefficient form, MSM(S¹[0..len(p)], p).
func Commit(setup *trustedsetup.Setup, p []field.Element) (bls12381.G1Affine, error) {
	if len(p) > len(setup.G1) {
		return bls12381.G1Affine{}, fmt.Errorf("kzg: commit needs %d setup points, have %d: %w", len(p), len(setup.G1), daserr.ErrSetupTooSmall)
	}
	return msm.LinComb(setup.G1[:len(p)], p)
}

// BlobToCommitment interprets blob as n evaluations in reverse-bit-order on
// the canonical domain of size n = len(blob), recovers the coefficient-form
// polynomial by inverse FFT, and commits to it.
func BlobToCommitment(setup *trustedsetup.Setup, blob []field.Element) (bls12381.G1Affine, error) {
	n := len(blob)
	if !field.IsPowerOfTwo(uint64(n)) {
		return bls12381.G1Affine{}, daserr.ErrInvalidDomain
	}
	domain, err := roots.Canonical(uint64(n))
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	permuted, err := field.RBOPermute(blob)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	coeffs, err := fft.Transform(permuted, domain.Roots, true)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return Commit(setup, coeffs)
}

// CreateProof computes a single-point opening proof for p at z: the
// commitment to q(X) = (p(X) - p(z)) / (X - z), where the subtraction of
// p(z) is absorbed by exact division.
func CreateProof(setup *trustedsetup.Setup, p []field.Element, z field.Element) (bls12381.G1Affine, error) {
	var negZ field.Element
	negZ.Neg(&z)
	q, err := poly.DivPolys(p, []field.Element{negZ, field.One()})
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return Commit(setup, q)
}

// VerifyProof checks a single-point opening proof:
//
//	e(G₂, -(C - y·G₁)) · e(S²_1 - z·G₂, π) = 1
//
// It returns (false, nil) for an invalid proof and a non-nil error only for
// malformed input (setup too small).
func VerifyProof(setup *trustedsetup.Setup, commitment bls12381.G1Affine, z, y field.Element, proof bls12381.G1Affine) (bool, error) {
	if len(setup.G2) < 2 {
		return false, fmt.Errorf("kzg: verify needs S²_1: %w", daserr.ErrSetupTooSmall)
	}

	_, _, g1gen, g2gen := bls12381.Generators()

	yG1 := scalarMulG1(&g1gen, &y)
	cMinusY := subG1(&commitment, &yG1)
	negCMinusY := negG1(&cMinusY)

	zG2 := scalarMulG2(&g2gen, &z)
	s2MinusZ := subG2(&setup.G2[1], &zG2)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{negCMinusY, proof},
		[]bls12381.G2Affine{g2gen, s2MinusZ},
	)
	if err != nil {
		return false, err
	}
	dlog.Logger().Debug().Bool("ok", ok).Msg("kzg: verified single-point proof")
	return ok, nil
}

// CreateMultiproof computes a proof that p takes known values on the coset
// C_h = {h·ω_M^i : 0 ≤ i < M}, where ω_M is a primitive M-th root of unity.
// The vanishing polynomial of C_h is Z(X) = X^M - h^M.
func CreateMultiproof(setup *trustedsetup.Setup, p []field.Element, h field.Element, m int) (bls12381.G1Affine, error) {
	if h.IsZero() {
		return bls12381.G1Affine{}, daserr.ErrInvalidCoset
	}
	if m <= 0 || !field.IsPowerOfTwo(uint64(m)) {
		return bls12381.G1Affine{}, daserr.ErrInvalidCoset
	}
	if m > setup.Degree() {
		return bls12381.G1Affine{}, fmt.Errorf("kzg: multiproof needs degree %d, setup has %d: %w", m, setup.Degree(), daserr.ErrSetupTooSmall)
	}
	if m+1 > len(setup.G2) {
		return bls12381.G1Affine{}, fmt.Errorf("kzg: multiproof needs S²_%d, setup has %d: %w", m, len(setup.G2), daserr.ErrSetupTooSmall)
	}

	hm := field.PowMod(h, uint64(m))
	var negHm field.Element
	negHm.Neg(&hm)

	zeroPoly := make([]field.Element, m+1)
	zeroPoly[0] = negHm
	zeroPoly[m] = field.One()

	q, err := poly.DivPolys(p, zeroPoly)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return Commit(setup, q)
}

// VerifyMultiproof checks a coset opening proof given M = len(ys) evaluations
// ys[i] = p(h·ω_M^i) in natural order:
//
//  1. interpolate at the subgroup via inverse FFT;
//  2. shift coefficients into the coset (I[i] /= h^i);
//  3. check e(G₂, -(C - commit(I'))) · e(S²_M - h^M·G₂, π) = 1.
func VerifyMultiproof(setup *trustedsetup.Setup, commitment bls12381.G1Affine, h field.Element, ys []field.Element, proof bls12381.G1Affine) (bool, error) {
	m := len(ys)
	if h.IsZero() {
		return false, daserr.ErrInvalidCoset
	}
	if !field.IsPowerOfTwo(uint64(m)) {
		return false, daserr.ErrInvalidCoset
	}
	if m >= len(setup.G2) {
		return false, fmt.Errorf("kzg: verify multiproof needs S²_%d, setup has %d: %w", m, len(setup.G2), daserr.ErrSetupTooSmall)
	}

	domainRoots, err := roots.Compute(uint64(m))
	if err != nil {
		return false, err
	}
	interp, err := fft.Transform(ys, domainRoots, true)
	if err != nil {
		return false, err
	}

	shifted := make([]field.Element, m)
	hPow := field.One()
	for i := range interp {
		invHPow := field.Inv(hPow)
		shifted[i].Mul(&interp[i], &invHPow)
		hPow.Mul(&hPow, &h)
	}

	commitShifted, err := Commit(setup, shifted)
	if err != nil {
		return false, err
	}

	cMinusI := subG1(&commitment, &commitShifted)
	negCMinusI := negG1(&cMinusI)

	hm := field.PowMod(h, uint64(m))
	_, _, _, g2gen := bls12381.Generators()
	hmG2 := scalarMulG2(&g2gen, &hm)
	s2mMinusHm := subG2(&setup.G2[m], &hmG2)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{negCMinusI, proof},
		[]bls12381.G2Affine{g2gen, s2mMinusHm},
	)
	if err != nil {
		return false, err
	}
	dlog.Logger().Debug().Bool("ok", ok).Int("m", m).Msg("kzg: verified multiproof")
	return ok, nil
}

func scalarMulG1(base *bls12381.G1Affine, s *field.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(base, &bi)
	return out
}

func scalarMulG2(base *bls12381.G2Affine, s *field.Element) bls12381.G2Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G2Affine
	out.ScalarMultiplication(base, &bi)
	return out
}

func subG1(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var aJac, bJac bls12381.G1Jac
	aJac.FromAffine(a)
	bJac.FromAffine(b)
	aJac.SubAssign(&bJac)
	var out bls12381.G1Affine
	out.FromJacobian(&aJac)
	return out
}

func negG1(a *bls12381.G1Affine) bls12381.G1Affine {
	var out bls12381.G1Affine
	out.Neg(a)
	return out
}

func subG2(a, b *bls12381.G2Affine) bls12381.G2Affine {
	var aJac, bJac bls12381.G2Jac
	aJac.FromAffine(a)
	bJac.FromAffine(b)
	aJac.SubAssign(&bJac)
	var out bls12381.G2Affine
	out.FromJacobian(&aJac)
	return out
}
