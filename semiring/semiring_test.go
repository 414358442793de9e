package semiring_test

import (
	"math"
	"testing"

	"github.com/mengqhui/kaldi/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// TestTropical_Identities checks Zero/One laws and min-plus arithmetic.
func TestTropical_Identities(t *testing.T) {
	sr := semiring.Tropical
	w := semiring.Weight(2.5)

	assert.Equal(t, w, sr.Plus(w, sr.Zero()), "Zero is the ⊕ identity")
	assert.Equal(t, w, sr.Times(w, sr.One()), "One is the ⊗ identity")
	assert.True(t, sr.Times(w, sr.Zero()).IsZero(), "Zero annihilates")
	assert.Equal(t, semiring.Weight(1), sr.Plus(1, 3), "⊕ is min")
	assert.Equal(t, semiring.Weight(4), sr.Times(1, 3), "⊗ is +")
}

// TestLog_Plus verifies −log(e^−a + e^−b) against a direct evaluation.
func TestLog_Plus(t *testing.T) {
	sr := semiring.Log
	a, b := semiring.Weight(-math.Log(0.25)), semiring.Weight(-math.Log(0.5))

	got := sr.Plus(a, b)
	assert.InDelta(t, -math.Log(0.75), float64(got), eps)
	assert.Equal(t, a, sr.Plus(a, sr.Zero()))
	assert.Equal(t, b, sr.Plus(sr.Zero(), b))
	// far-apart costs short-circuit to the smaller one
	assert.Equal(t, semiring.Weight(1), sr.Plus(1, 100))
}

// TestDivide covers left division and the divide-by-zero sentinel.
func TestDivide(t *testing.T) {
	for _, sr := range []semiring.Semiring{semiring.Tropical, semiring.Log} {
		c, err := sr.Divide(5, 2)
		require.NoError(t, err)
		assert.Equal(t, semiring.Weight(5), sr.Times(2, c), sr.Name())

		z, err := sr.Divide(sr.Zero(), 2)
		require.NoError(t, err)
		assert.True(t, z.IsZero())

		_, err = sr.Divide(1, sr.Zero())
		assert.ErrorIs(t, err, semiring.ErrDivideByZero)
	}
}

// TestApproxEqual covers finite and infinite comparisons.
func TestApproxEqual(t *testing.T) {
	zero := semiring.Tropical.Zero()
	assert.True(t, semiring.ApproxEqual(1, 1.0005, semiring.DefaultDelta))
	assert.False(t, semiring.ApproxEqual(1, 1.01, semiring.DefaultDelta))
	assert.True(t, semiring.ApproxEqual(zero, zero, semiring.DefaultDelta))
	assert.False(t, semiring.ApproxEqual(zero, 1e9, semiring.DefaultDelta))
	assert.True(t, semiring.IsOne(semiring.Log, 0.0001, 0.001))
}

// TestSum folds with ⊕.
func TestSum(t *testing.T) {
	half := semiring.Weight(math.Log(2))
	assert.InDelta(t, 0, float64(semiring.Sum(semiring.Log, half, half)), eps)
	assert.Equal(t, half, semiring.Sum(semiring.Tropical, half, half))
	assert.True(t, semiring.Sum(semiring.Log).IsZero(), "empty sum is Zero")
}

// TestCast_RoundTrip checks that casting is value preserving and reversible,
// and that non-members are refused.
func TestCast_RoundTrip(t *testing.T) {
	for _, w := range []semiring.Weight{0, 1.5, -2, semiring.Tropical.Zero()} {
		l, err := semiring.Cast(w, semiring.Tropical, semiring.Log)
		require.NoError(t, err)
		back, err := semiring.Cast(l, semiring.Log, semiring.Tropical)
		require.NoError(t, err)
		assert.Equal(t, w, back)
	}

	_, err := semiring.Cast(semiring.Weight(math.NaN()), semiring.Tropical, semiring.Log)
	assert.ErrorIs(t, err, semiring.ErrMismatch)
	_, err = semiring.Cast(semiring.Weight(math.Inf(-1)), semiring.Tropical, semiring.Log)
	assert.ErrorIs(t, err, semiring.ErrMismatch)
	_, err = semiring.Cast(1, nil, semiring.Log)
	assert.ErrorIs(t, err, semiring.ErrMismatch)
}

// TestCast_OrderPreserving checks that Less agrees before and after a cast.
func TestCast_OrderPreserving(t *testing.T) {
	a, b := semiring.Weight(0.3), semiring.Weight(0.7)
	la, _ := semiring.Cast(a, semiring.Tropical, semiring.Log)
	lb, _ := semiring.Cast(b, semiring.Tropical, semiring.Log)
	assert.Equal(t, semiring.Tropical.Less(a, b), semiring.Log.Less(la, lb))
}

// TestLookup resolves names used in configuration files.
func TestLookup(t *testing.T) {
	sr, err := semiring.Lookup("log")
	require.NoError(t, err)
	assert.True(t, semiring.Same(sr, semiring.Log))

	sr, err = semiring.Lookup("")
	require.NoError(t, err)
	assert.True(t, semiring.Same(sr, semiring.Tropical))

	_, err = semiring.Lookup("real")
	assert.ErrorIs(t, err, semiring.ErrUnknown)
	assert.False(t, semiring.Same(nil, semiring.Log))
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, semiring.Weight(1), semiring.Quantize(1.0001, 0.01))
	assert.True(t, semiring.Quantize(semiring.Log.Zero(), 0.01).IsZero())
}
