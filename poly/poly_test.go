package poly

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/dascore/kzgshard/field"
	"github.com/dascore/kzgshard/roots"
)

func TestEvaluateConstant(t *testing.T) {
	p := []field.Element{field.FromUint64(5)}
	got := Evaluate(p, field.FromUint64(123))
	want := field.FromUint64(5)
	require.True(t, got.Equal(&want))
}

func TestEvaluateKnownPolynomial(t *testing.T) {
	// p(X) = 1 + 2X + 3X^2, p(10) = 1 + 20 + 300 = 321
	p := []field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3)}
	got := Evaluate(p, field.FromUint64(10))
	want := field.FromUint64(321)
	require.True(t, got.Equal(&want))
}

func TestDivPolysExactDivision(t *testing.T) {
	// (X^2 - 1) / (X - 1) = X + 1
	a := []field.Element{field.FromInt64(-1), field.FromUint64(0), field.FromUint64(1)}
	b := []field.Element{field.FromInt64(-1), field.FromUint64(1)}

	q, err := DivPolys(a, b)
	require.NoError(t, err)
	require.Len(t, q, 2)

	one := field.One()
	require.True(t, q[0].Equal(&one))
	require.True(t, q[1].Equal(&one))
}

func TestDivPolysRejectsShortDividend(t *testing.T) {
	_, err := DivPolys([]field.Element{field.One()}, []field.Element{field.One(), field.One()})
	require.Error(t, err)
}

func TestDivPolysRejectsEmptyDivisor(t *testing.T) {
	_, err := DivPolys([]field.Element{field.One()}, nil)
	require.Error(t, err)
}

func TestZPolyRoots(t *testing.T) {
	xs := []field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3)}
	z := ZPoly(xs)
	require.Len(t, z, len(xs)+1)

	one := field.One()
	require.True(t, z[len(z)-1].Equal(&one))

	for _, x := range xs {
		got := Evaluate(z, x)
		require.True(t, got.IsZero())
	}
}

func TestZPolyNonRootIsNonZero(t *testing.T) {
	xs := []field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3)}
	z := ZPoly(xs)
	got := Evaluate(z, field.FromUint64(4))
	require.False(t, got.IsZero())
}

func TestInterpolateRejectsLengthMismatch(t *testing.T) {
	_, err := Interpolate([]field.Element{field.One()}, nil)
	require.Error(t, err)
}

func TestInterpolateKnownPoints(t *testing.T) {
	// p(X) = 1 + 2X + 3X^2 sampled at x = 0, 1, 2.
	coeffs := []field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3)}
	xs := []field.Element{field.FromUint64(0), field.FromUint64(1), field.FromUint64(2)}
	ys := make([]field.Element, len(xs))
	for i, x := range xs {
		ys[i] = Evaluate(coeffs, x)
	}

	got, err := Interpolate(xs, ys)
	require.NoError(t, err)
	require.Len(t, got, len(xs))

	for i, x := range xs {
		want := Evaluate(coeffs, x)
		gotY := Evaluate(got, x)
		require.Truef(t, gotY.Equal(&want), "x=%v", x)
	}
}

// TestInterpolateRoundTrip checks evaluate(interpolate(xs, ys), xs[i]) ==
// ys[i] for random ys over a fixed set of pairwise-distinct xs (a
// root-of-unity domain, since Interpolate requires distinct evaluation
// points).
func TestInterpolateRoundTrip(t *testing.T) {
	const n = 8
	xs, err := roots.Compute(n)
	require.NoError(t, err)

	props := gopter.NewProperties(nil)
	props.Property("evaluate(interpolate(xs,ys), xs[i]) == ys[i]", prop.ForAll(
		func(raw []uint64) bool {
			ys := make([]field.Element, n)
			for i, v := range raw {
				ys[i] = field.FromUint64(v)
			}

			p, err := Interpolate(xs, ys)
			if err != nil {
				return false
			}
			for i, x := range xs {
				got := Evaluate(p, x)
				if !got.Equal(&ys[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(n, gen.UInt64Range(0, 1<<40)),
	))
	props.TestingRun(t)
}
