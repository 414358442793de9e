// SPDX-License-Identifier: MIT
// Package: stochastic
//
// types.go - options and the check result.

package stochastic

import (
	"errors"
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ErrOptionViolation indicates an invalid option value.
var ErrOptionViolation = errors.New("stochastic: invalid option")

// Result is the outcome of IsStochasticFst.
type Result struct {
	Stochastic bool
	MinSum     semiring.Weight
	MaxSum     semiring.Weight
	// Violations lists, in state order, the states whose sum is not
	// within tolerance of One.
	Violations []fst.StateID
}

// Options configures IsStochasticFst.
type Options struct {
	// TestInLog casts to the log semiring before summing. Default true.
	TestInLog bool

	// Tolerance is the allowed distance of a sum from One.
	Tolerance float64

	// Semiring overrides the evaluation semiring when TestInLog is false.
	Semiring semiring.Semiring

	err error
}

// Option configures IsStochasticFst.
type Option func(*Options)

// DefaultOptions returns TestInLog=true and semiring.DefaultDelta.
func DefaultOptions() Options {
	return Options{TestInLog: true, Tolerance: semiring.DefaultDelta}
}

// WithTestInLog toggles the log-semiring cast.
func WithTestInLog(on bool) Option {
	return func(o *Options) { o.TestInLog = on }
}

// WithTolerance sets the allowed distance from One; it must be positive.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 {
			o.err = fmt.Errorf("%w: tolerance %g must be positive", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithSemiring sets the evaluation semiring used when TestInLog is false.
func WithSemiring(sr semiring.Semiring) Option {
	return func(o *Options) { o.Semiring = sr }
}
