// SPDX-License-Identifier: MIT
// Package: builder
//
// errors.go - sentinel errors for the builder package.
//
// Callers branch with errors.Is; constructors attach method context with %w.

package builder

import "errors"

// ErrTooFewStates indicates a size parameter below the constructor minimum.
var ErrTooFewStates = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without an RNG.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrLengthMismatch indicates input and output label slices of different length.
var ErrLengthMismatch = errors.New("builder: label slices differ in length")

// ErrConstructFailed indicates a constructor could not complete, including a
// nil constructor passed to Build.
var ErrConstructFailed = errors.New("builder: construction failed")
