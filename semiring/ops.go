// SPDX-License-Identifier: MIT
// Package: semiring
//
// ops.go - comparisons, sums and casts that work across semirings.

package semiring

import (
	"fmt"
	"math"
)

// ApproxEqual reports whether a and b differ by at most delta. Two Zero
// weights are equal; Zero is never close to a finite weight.
func ApproxEqual(a, b Weight, delta float64) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	return math.Abs(float64(a-b)) <= delta
}

// IsOne reports whether w is within delta of sr.One().
func IsOne(sr Semiring, w Weight, delta float64) bool {
	return ApproxEqual(w, sr.One(), delta)
}

// Sum folds ws with sr.Plus, starting from sr.Zero().
func Sum(sr Semiring, ws ...Weight) Weight {
	acc := sr.Zero()
	for _, w := range ws {
		acc = sr.Plus(acc, w)
	}
	return acc
}

// Quantize rounds w to a multiple of delta so that weights equal within
// delta usually share a hash bucket. Zero is returned unchanged.
func Quantize(w Weight, delta float64) Weight {
	if w.IsZero() || delta <= 0 {
		return w
	}
	return Weight(math.Floor(float64(w)/delta+0.5) * delta)
}

// Same reports whether a and b are the same semiring.
func Same(a, b Semiring) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name()
}

// castable lists the semiring pairs that share the cost representation.
func castable(s Semiring) bool {
	return s != nil && (s.Name() == Tropical.Name() || s.Name() == Log.Name())
}

// Cast moves w from one semiring to another. Tropical and log weights
// share a representation, so the value is returned unchanged; the call
// fails with ErrMismatch when either semiring is outside that pair or w
// is not a member of the target.
func Cast(w Weight, from, to Semiring) (Weight, error) {
	if !castable(from) || !castable(to) {
		return 0, fmt.Errorf("%w: cannot cast %s to %s", ErrMismatch, name(from), name(to))
	}
	if !from.Member(w) || !to.Member(w) {
		return 0, fmt.Errorf("%w: weight %v has no %s representation", ErrMismatch, float64(w), to.Name())
	}
	return w, nil
}

func name(s Semiring) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}
