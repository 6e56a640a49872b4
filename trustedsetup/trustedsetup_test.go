package trustedsetup

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

func TestNewInsecureSizesAndDegree(t *testing.T) {
	s, err := NewInsecure(big.NewInt(1234567), 15, 16)
	require.NoError(t, err)
	require.Len(t, s.G1, 16)
	require.Len(t, s.G2, 17)
	require.Equal(t, 15, s.Degree())
	require.Equal(t, 16, s.MaxCosetSize())
}

func TestNewInsecureFirstEntryIsGenerator(t *testing.T) {
	s, err := NewInsecure(big.NewInt(42), 2, 2)
	require.NoError(t, err)

	_, _, g1, g2 := bls12381.Generators()
	require.True(t, s.G1[0].Equal(&g1))
	require.True(t, s.G2[0].Equal(&g2))
}
