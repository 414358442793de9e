// SPDX-License-Identifier: MIT
// Package: fst
//
// fst.go - construction, arena access and mutation.

package fst

import (
	"fmt"

	"github.com/mengqhui/kaldi/semiring"
)

// New returns an empty automaton over sr with no states and no start.
// A nil sr selects the tropical semiring.
func New(sr semiring.Semiring) *Fst {
	if sr == nil {
		sr = semiring.Tropical
	}
	return &Fst{sr: sr, start: NoState}
}

// NewWithStart returns an automaton with one non-final state, which is
// also the start state.
func NewWithStart(sr semiring.Semiring) *Fst {
	f := New(sr)
	f.start = f.AddState()
	return f
}

// Semiring returns the semiring the weights of f belong to.
func (f *Fst) Semiring() semiring.Semiring { return f.sr }

// Start returns the start state, or NoState.
func (f *Fst) Start() StateID { return f.start }

// SetStart designates s as the start state.
func (f *Fst) SetStart(s StateID) error {
	if !f.HasState(s) {
		return fmt.Errorf("SetStart(%d): %w", s, ErrStateOutOfRange)
	}
	f.start = s
	return nil
}

// AddState appends a non-final state and returns its index.
// Complexity: amortized O(1).
func (f *Fst) AddState() StateID {
	f.states = append(f.states, state{final: f.sr.Zero()})
	return StateID(len(f.states) - 1)
}

// AddStates appends n states and returns the first new index.
func (f *Fst) AddStates(n int) StateID {
	first := StateID(len(f.states))
	for i := 0; i < n; i++ {
		f.AddState()
	}
	return first
}

// NumStates returns the arena size.
func (f *Fst) NumStates() int { return len(f.states) }

// HasState reports whether s indexes an arena slot.
func (f *Fst) HasState(s StateID) bool { return s >= 0 && int(s) < len(f.states) }

// SetFinal sets the final weight of s. Zero makes s non-final.
func (f *Fst) SetFinal(s StateID, w semiring.Weight) error {
	if !f.HasState(s) {
		return fmt.Errorf("SetFinal(%d): %w", s, ErrStateOutOfRange)
	}
	f.states[s].final = w
	return nil
}

// Final returns the final weight of s (Zero for non-final or unknown states).
func (f *Fst) Final(s StateID) semiring.Weight {
	if !f.HasState(s) {
		return f.sr.Zero()
	}
	return f.states[s].final
}

// IsFinal reports whether s has a non-Zero final weight.
func (f *Fst) IsFinal(s StateID) bool { return !f.Final(s).IsZero() }

// AddArc appends arc to the arcs of s. Both endpoints must exist.
func (f *Fst) AddArc(s StateID, arc Arc) error {
	if !f.HasState(s) {
		return fmt.Errorf("AddArc(%d): source: %w", s, ErrStateOutOfRange)
	}
	if !f.HasState(arc.NextState) {
		return fmt.Errorf("AddArc(%d→%d): destination: %w", s, arc.NextState, ErrStateOutOfRange)
	}
	f.states[s].arcs = append(f.states[s].arcs, arc)
	return nil
}

// NumArcs returns the out-degree of s.
func (f *Fst) NumArcs(s StateID) int {
	if !f.HasState(s) {
		return 0
	}
	return len(f.states[s].arcs)
}

// TotalArcs returns the number of arcs in the automaton.
func (f *Fst) TotalArcs() int {
	n := 0
	for i := range f.states {
		n += len(f.states[i].arcs)
	}
	return n
}

// Arcs returns a copy of the arcs of s in stable order.
func (f *Fst) Arcs(s StateID) []Arc {
	if !f.HasState(s) {
		return nil
	}
	out := make([]Arc, len(f.states[s].arcs))
	copy(out, f.states[s].arcs)
	return out
}

// ArcsView returns the live arc slice of s. The caller must not retain it
// across a mutating call.
func (f *Fst) ArcsView(s StateID) []Arc {
	if !f.HasState(s) {
		return nil
	}
	return f.states[s].arcs
}

// MutateArcs calls fn with the index and a pointer to every arc of s, in
// order, allowing in-place replacement. Destinations written by fn are
// not checked; run Validate afterwards if fn may produce new ones.
func (f *Fst) MutateArcs(s StateID, fn func(i int, arc *Arc)) error {
	if !f.HasState(s) {
		return fmt.Errorf("MutateArcs(%d): %w", s, ErrStateOutOfRange)
	}
	arcs := f.states[s].arcs
	for i := range arcs {
		fn(i, &arcs[i])
	}
	return nil
}

// SetArcs replaces all arcs of s.
func (f *Fst) SetArcs(s StateID, arcs []Arc) error {
	if !f.HasState(s) {
		return fmt.Errorf("SetArcs(%d): %w", s, ErrStateOutOfRange)
	}
	for _, a := range arcs {
		if !f.HasState(a.NextState) {
			return fmt.Errorf("SetArcs(%d→%d): %w", s, a.NextState, ErrStateOutOfRange)
		}
	}
	f.states[s].arcs = arcs
	return nil
}

// DeleteArcs removes all arcs of s. The state itself stays in the arena.
func (f *Fst) DeleteArcs(s StateID) error {
	if !f.HasState(s) {
		return fmt.Errorf("DeleteArcs(%d): %w", s, ErrStateOutOfRange)
	}
	f.states[s].arcs = nil
	return nil
}

// Clone returns a deep copy sharing only the symbol tables.
func (f *Fst) Clone() *Fst {
	c := &Fst{
		sr:            f.sr,
		start:         f.start,
		states:        make([]state, len(f.states)),
		InputSymbols:  f.InputSymbols,
		OutputSymbols: f.OutputSymbols,
	}
	for i, st := range f.states {
		c.states[i].final = st.final
		c.states[i].arcs = append([]Arc(nil), st.arcs...)
	}
	return c
}

// Stats summarizes f in one pass.
func (f *Fst) Stats() Stats {
	st := Stats{States: len(f.states)}
	for i := range f.states {
		if !f.states[i].final.IsZero() {
			st.FinalStates++
		}
		for _, a := range f.states[i].arcs {
			st.Arcs++
			if a.ILabel == Epsilon {
				st.InputEpsilons++
			}
			if a.OLabel == Epsilon {
				st.OutputEpsilons++
			}
		}
	}
	return st
}
