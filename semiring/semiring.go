// SPDX-License-Identifier: MIT
// Package: semiring
//
// semiring.go - the tropical and log semirings.

package semiring

import (
	"fmt"
	"math"
)

// logAddCutoff is the cost gap beyond which the larger cost no longer
// changes a log-sum at float64 precision (exp(-36) ≈ 2.3e-16).
const logAddCutoff = 36.0

// Tropical is the (min, +) semiring.
var Tropical Semiring = tropical{}

// Log is the (−log(e^−a + e^−b), +) semiring.
var Log Semiring = logSemiring{}

type tropical struct{}

func (tropical) Name() string { return "tropical" }
func (tropical) Zero() Weight { return Weight(math.Inf(1)) }
func (tropical) One() Weight  { return 0 }

func (tropical) Plus(a, b Weight) Weight {
	if a < b {
		return a
	}
	return b
}

func (tropical) Times(a, b Weight) Weight { return times(a, b) }

func (tropical) Divide(a, b Weight) (Weight, error) { return divide(a, b) }

func (tropical) Less(a, b Weight) bool { return a < b }

func (tropical) Member(w Weight) bool { return member(w) }

type logSemiring struct{}

func (logSemiring) Name() string { return "log" }
func (logSemiring) Zero() Weight { return Weight(math.Inf(1)) }
func (logSemiring) One() Weight  { return 0 }

// Plus computes −log(e^−a + e^−b) without overflow, skipping log1p when
// the larger cost is negligible.
func (logSemiring) Plus(a, b Weight) Weight {
	x, y := float64(a), float64(b)
	if math.IsInf(x, 1) {
		return b
	}
	if math.IsInf(y, 1) {
		return a
	}
	if x > y {
		x, y = y, x
	}
	d := y - x
	if d > logAddCutoff {
		return Weight(x)
	}
	return Weight(x - math.Log1p(math.Exp(-d)))
}

func (logSemiring) Times(a, b Weight) Weight { return times(a, b) }

func (logSemiring) Divide(a, b Weight) (Weight, error) { return divide(a, b) }

func (logSemiring) Less(a, b Weight) bool { return a < b }

func (logSemiring) Member(w Weight) bool { return member(w) }

// times is ⊗ for both semirings: cost addition with Zero absorbing.
func times(a, b Weight) Weight {
	if a.IsZero() || b.IsZero() {
		return Weight(math.Inf(1))
	}
	return a + b
}

func divide(a, b Weight) (Weight, error) {
	if b.IsZero() {
		return 0, ErrDivideByZero
	}
	if a.IsZero() {
		return a, nil
	}
	return a - b, nil
}

func member(w Weight) bool {
	v := float64(w)
	return !math.IsNaN(v) && !math.IsInf(v, -1)
}

// Lookup returns the semiring registered under name.
func Lookup(name string) (Semiring, error) {
	switch name {
	case "tropical", "":
		return Tropical, nil
	case "log":
		return Log, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}
