// SPDX-License-Identifier: MIT
// Package: fst
//
// validate.go - structural checks run by every algorithm before it starts.

package fst

import "fmt"

// Validate checks the arena invariants: the start state exists and every
// arc destination exists. All failures wrap ErrMalformed.
//
// An automaton with no states and no start is valid (the empty language).
// Complexity: O(V+E).
func (f *Fst) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: %w", ErrMalformed, ErrNilFst)
	}
	if f.sr == nil {
		return fmt.Errorf("%w: no semiring", ErrMalformed)
	}
	if f.start == NoState {
		if len(f.states) == 0 {
			return nil
		}
		return fmt.Errorf("%w: %w: unset with %d states", ErrMalformed, ErrNoStart, len(f.states))
	}
	if !f.HasState(f.start) {
		return fmt.Errorf("%w: %w: %d not in [0,%d)", ErrMalformed, ErrNoStart, f.start, len(f.states))
	}
	for s := range f.states {
		for i, a := range f.states[s].arcs {
			if !f.HasState(a.NextState) {
				return fmt.Errorf("%w: %w: state %d arc %d → %d", ErrMalformed, ErrDanglingArc, s, i, a.NextState)
			}
		}
	}
	return nil
}

// Check is Validate for callers holding a possibly nil automaton.
func Check(f *Fst) error {
	if f == nil {
		return fmt.Errorf("%w: %w", ErrMalformed, ErrNilFst)
	}
	return f.Validate()
}
