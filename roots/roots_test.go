package roots

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dascore/kzgshard/field"
)

func TestComputeRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Compute(6)
	require.Error(t, err)
}

func TestComputeRejectsSizeNotDividingROrder(t *testing.T) {
	// 2^40 does not divide r-1 for BLS12-381 (2-adicity is 32).
	_, err := Compute(1 << 40)
	require.Error(t, err)
}

func TestComputeRootOrder(t *testing.T) {
	const n = 64
	rs, err := Compute(n)
	require.NoError(t, err)
	require.Len(t, rs, n)
	require.True(t, rs[0].IsOne())

	// ω^n == 1
	last := field.PowMod(rs[1], n)
	require.True(t, last.IsOne())

	// ω^(n/2) != 1 (primitive, not a smaller-order root)
	half := field.PowMod(rs[1], n/2)
	require.False(t, half.IsOne())
}

func TestDomainRBOIsInvolution(t *testing.T) {
	d, err := NewDomain(32)
	require.NoError(t, err)

	twice, err := field.RBOPermute(d.RBO)
	require.NoError(t, err)
	for i := range d.Roots {
		require.True(t, twice[i].Equal(&d.Roots[i]))
	}
}

func TestCanonicalMemoizes(t *testing.T) {
	a, err := Canonical(128)
	require.NoError(t, err)
	b, err := Canonical(128)
	require.NoError(t, err)
	require.Same(t, a, b)
}
