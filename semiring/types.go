// SPDX-License-Identifier: MIT
// Package: semiring
//
// types.go - Weight, the Semiring capability and sentinel errors.

package semiring

import (
	"errors"
	"math"
)

var (
	// ErrMismatch indicates operands or automata from different semirings,
	// or a weight that has no representation in the requested semiring.
	ErrMismatch = errors.New("semiring: semiring mismatch")

	// ErrDivideByZero indicates a division by the additive identity.
	ErrDivideByZero = errors.New("semiring: division by zero weight")

	// ErrUnknown indicates Lookup was given a name no semiring answers to.
	ErrUnknown = errors.New("semiring: unknown semiring")
)

// DefaultDelta is the slack used for weight comparisons when callers do
// not provide one.
const DefaultDelta = 1.0 / 1024.0

// Weight is a path cost in −log representation.
type Weight float64

// Value returns the raw cost.
func (w Weight) Value() float64 { return float64(w) }

// IsZero reports whether w is the additive identity (+Inf).
func (w Weight) IsZero() bool { return math.IsInf(float64(w), 1) }

// Semiring is the capability every algorithm consumes: the two identities,
// ⊕ and ⊗, left division and the natural order.
type Semiring interface {
	// Name identifies the semiring ("tropical", "log").
	Name() string

	// Zero returns the additive identity.
	Zero() Weight

	// One returns the multiplicative identity.
	One() Weight

	// Plus returns a ⊕ b.
	Plus(a, b Weight) Weight

	// Times returns a ⊗ b.
	Times(a, b Weight) Weight

	// Divide returns c such that b ⊗ c = a.
	Divide(a, b Weight) (Weight, error)

	// Less reports whether a is strictly better (cheaper) than b.
	Less(a, b Weight) bool

	// Member reports whether w is a valid element of the semiring.
	Member(w Weight) bool
}
