package shard

import (
	"context"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"

	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/roots"
	"github.com/dascore/kzgshard/trustedsetup"
)

func testMatrixSetup(t *testing.T, n, m int) *trustedsetup.Setup {
	t.Helper()
	s, err := trustedsetup.NewInsecure(big.NewInt(424242), n, m)
	require.NoError(t, err)
	return s
}

// S5: 4 rows x 4 samples per row (n=64, m=16), built from random field
// elements. A random sample must verify against its row commitment, and
// tampering with any single data point, the proof, or the commitment must
// cause verification to fail.
func TestBlobsMatrixRandomSampleVerifies(t *testing.T) {
	const rows, n, m = 4, 64, 16
	setup := testMatrixSetup(t, n, m)

	matrix, err := NewBlobsMatrix(context.Background(), setup, rows, n, m)
	require.NoError(t, err)
	require.Len(t, matrix.Rows, rows)
	require.Equal(t, n/m, matrix.SamplesPerRow)

	domain, err := roots.Canonical(uint64(n))
	require.NoError(t, err)

	sample, commitment, err := matrix.RandomSample()
	require.NoError(t, err)

	ok, err := sample.VerifyMultiproof(setup, domain, m, commitment)
	require.NoError(t, err)
	require.True(t, ok)

	// tamper a data point
	tamperedSample := &Sample{
		SampleIndex: sample.SampleIndex,
		DataPoints:  append([]field.Element(nil), sample.DataPoints...),
		Multiproof:  sample.Multiproof,
	}
	one := field.One()
	tamperedSample.DataPoints[0].Add(&tamperedSample.DataPoints[0], &one)
	ok, err = tamperedSample.VerifyMultiproof(setup, domain, m, commitment)
	require.NoError(t, err)
	require.False(t, ok)

	// tamper the proof
	tamperedProof := &Sample{
		SampleIndex: sample.SampleIndex,
		DataPoints:  sample.DataPoints,
		Multiproof:  randomG1Tweak(sample.Multiproof),
	}
	ok, err = tamperedProof.VerifyMultiproof(setup, domain, m, commitment)
	require.NoError(t, err)
	require.False(t, ok)

	// tamper the commitment
	ok, err = sample.VerifyMultiproof(setup, domain, m, randomG1Tweak(commitment))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBlobsMatrixRowAndColumnLookup(t *testing.T) {
	const rows, n, m = 4, 64, 16
	setup := testMatrixSetup(t, n, m)
	matrix, err := NewBlobsMatrix(context.Background(), setup, rows, n, m)
	require.NoError(t, err)

	samples, commitment, err := matrix.Row(2)
	require.NoError(t, err)
	require.Len(t, samples, n/m)
	require.True(t, commitment.Equal(&matrix.Rows[2].Commitment))

	colSamples, colCommitments, err := matrix.Column(1)
	require.NoError(t, err)
	require.Len(t, colSamples, rows)
	require.Len(t, colCommitments, rows)
	for i := range colSamples {
		require.Equal(t, 1, colSamples[i].SampleIndex)
	}
}

func TestBlobsMatrixSampleRejectsOutOfRange(t *testing.T) {
	const rows, n, m = 2, 32, 16
	setup := testMatrixSetup(t, n, m)
	matrix, err := NewBlobsMatrix(context.Background(), setup, rows, n, m)
	require.NoError(t, err)

	_, _, err = matrix.Sample(-1)
	require.Error(t, err)
	_, _, err = matrix.Sample(matrix.SamplesPerRow * rows)
	require.Error(t, err)
}

func TestNewBlobsMatrixRejectsInvalidDomain(t *testing.T) {
	setup := testMatrixSetup(t, 32, 16)
	_, err := NewBlobsMatrix(context.Background(), setup, 2, 20, 16)
	require.Error(t, err)
}

func TestCoverageTracksDistinctSamples(t *testing.T) {
	c := NewCoverage(16)
	require.False(t, c.Covered(3))
	c.Mark(1)
	c.Mark(1)
	c.Mark(2)
	require.Equal(t, 2, c.Count())
	require.True(t, c.Covered(2))
	require.False(t, c.Covered(3))
}

// randomG1Tweak returns a point distinct from p (a different multiple of the
// generator), standing in for a corrupted proof or commitment.
func randomG1Tweak(p bls12381.G1Affine) bls12381.G1Affine {
	_, _, g1gen, _ := bls12381.Generators()
	var out bls12381.G1Affine
	out.ScalarMultiplication(&g1gen, big.NewInt(999999937))
	if out.Equal(&p) {
		out.ScalarMultiplication(&g1gen, big.NewInt(999999999))
	}
	return out
}
