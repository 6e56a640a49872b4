// Package trustedsetup holds the two trusted-setup vectors (S¹ in G1, S² in
// G2) that every KZG operation reads from. Loading is the only I/O this
// module performs; the result is immutable and safe to share across
// goroutines without synchronization.
package trustedsetup

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"

	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/internal/dlog"
)

// Setup holds S¹ (G1) and S² (G2), Sⁱ_k = [s^k]·Gᵢ for a secret s that must
// have been discarded by whoever generated these files. Read-only after
// construction.
type Setup struct {
	G1 []bls12381.G1Affine
	G2 []bls12381.G2Affine
}

// Degree is the largest polynomial degree this setup can commit to (len(G1)-1).
func (s *Setup) Degree() int {
	return len(s.G1) - 1
}

// MaxCosetSize is the largest coset size this setup can produce a multiproof
// for (len(G2)-1, since create_multiproof needs S²_M).
func (s *Setup) MaxCosetSize() int {
	return len(s.G2) - 1
}

type g1JSON struct {
	SetupG1 [][2]string `json:"setup_G1"`
}

type g2JSON struct {
	SetupG2 [][2][2]string `json:"setup_G2"`
}

// Load reads a trusted setup from the two JSON files in the format
// documented by spec.md §6: trusted_setup_G1.json holds
// {"setup_G1": [[x, y], ...]} (decimal strings, affine G1 points) and
// trusted_setup_G2.json holds
// {"setup_G2": [[[x0, x1], [y0, y1]], ...]} (decimal strings, affine G2
// points over the quadratic extension).
func Load(g1Path, g2Path string) (*Setup, error) {
	g1Bytes, err := os.ReadFile(g1Path)
	if err != nil {
		return nil, fmt.Errorf("trustedsetup: read G1 file: %w", err)
	}
	g2Bytes, err := os.ReadFile(g2Path)
	if err != nil {
		return nil, fmt.Errorf("trustedsetup: read G2 file: %w", err)
	}

	var g1doc g1JSON
	if err := json.Unmarshal(g1Bytes, &g1doc); err != nil {
		return nil, fmt.Errorf("trustedsetup: decode G1 json: %w", err)
	}
	var g2doc g2JSON
	if err := json.Unmarshal(g2Bytes, &g2doc); err != nil {
		return nil, fmt.Errorf("trustedsetup: decode G2 json: %w", err)
	}

	g1s := make([]bls12381.G1Affine, len(g1doc.SetupG1))
	for i, xy := range g1doc.SetupG1 {
		x, err := parseBaseField(xy[0])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G1[%d].x: %w", i, err)
		}
		y, err := parseBaseField(xy[1])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G1[%d].y: %w", i, err)
		}
		g1s[i].X, g1s[i].Y = x, y
	}

	g2s := make([]bls12381.G2Affine, len(g2doc.SetupG2))
	for i, coords := range g2doc.SetupG2 {
		x0, err := parseBaseField(coords[0][0])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G2[%d].x0: %w", i, err)
		}
		x1, err := parseBaseField(coords[0][1])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G2[%d].x1: %w", i, err)
		}
		y0, err := parseBaseField(coords[1][0])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G2[%d].y0: %w", i, err)
		}
		y1, err := parseBaseField(coords[1][1])
		if err != nil {
			return nil, fmt.Errorf("trustedsetup: G2[%d].y1: %w", i, err)
		}
		g2s[i].X.A0, g2s[i].X.A1 = x0, x1
		g2s[i].Y.A0, g2s[i].Y.A1 = y0, y1
	}

	dlog.Logger().Info().Int("g1", len(g1s)).Int("g2", len(g2s)).Msg("trusted setup loaded")
	return &Setup{G1: g1s, G2: g2s}, nil
}

func parseBaseField(s string) (fp.Element, error) {
	var e fp.Element
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return e, fmt.Errorf("invalid decimal string %q", s)
	}
	e.SetBigInt(bi)
	return e, nil
}

// NewInsecure derives a toy trusted setup from an explicit secret scalar,
// for tests only — the real setup ceremony (and discarding the secret
// afterward) is out of scope for this module. Mirrors the "INSECURE s"
// generator used to bootstrap local test fixtures for the reference
// implementation this module's KZG semantics are drawn from.
func NewInsecure(secret *big.Int, n, m int) (*Setup, error) {
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("trustedsetup: negative size")
	}

	_, _, g1gen, g2gen := bls12381.Generators()

	var s field.Element
	s.SetBigInt(secret)

	g1s := make([]bls12381.G1Affine, n+1)
	g2s := make([]bls12381.G2Affine, m+1)

	power := field.One()
	for i := 0; i <= n; i++ {
		var powerBig big.Int
		power.BigInt(&powerBig)
		g1s[i].ScalarMultiplication(&g1gen, &powerBig)
		power.Mul(&power, &s)
	}

	power = field.One()
	for i := 0; i <= m; i++ {
		var powerBig big.Int
		power.BigInt(&powerBig)
		g2s[i].ScalarMultiplication(&g2gen, &powerBig)
		power.Mul(&power, &s)
	}

	return &Setup{G1: g1s, G2: g2s}, nil
}
