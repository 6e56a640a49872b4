// Package msm computes linear combinations of G1 points by scalars — the
// multiscalar multiplication every KZG commitment reduces to.
package msm

import (
	"runtime"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc"

	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/daserr"
)

// LinComb returns Σ scalars[i]·points[i], delegating to gnark-crypto's
// Pippenger-bucket MultiExp rather than a naive accumulate-and-add loop.
// Zero scalars are handled correctly by MultiExp (the corresponding point
// contributes the identity). Fails with daserr.ErrLengthMismatch if the two
// slices differ in length.
func LinComb(points []bls12381.G1Affine, scalars []field.Element) (bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Affine{}, daserr.ErrLengthMismatch
	}
	if len(points) == 0 {
		var zero bls12381.G1Affine
		return zero, nil
	}

	var result bls12381.G1Affine
	cfg := ecc.MultiExpConfig{NbTasks: runtime.NumCPU()}
	if _, err := result.MultiExp(points, scalars, cfg); err != nil {
		return bls12381.G1Affine{}, err
	}
	return result, nil
}
