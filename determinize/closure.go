// SPDX-License-Identifier: MIT
// Package: determinize
//
// closure.go - weighted epsilon closure carrying residual output strings.

package determinize

import (
	"fmt"
	"slices"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// element is one member of a subset: an input state, the output labels
// still owed on the way to it, and its residual weight.
type element struct {
	state  fst.StateID
	str    stringID
	weight semiring.Weight
}

// closureEntry tracks one state during a closure. pending is the weight
// that arrived since the state was last expanded.
type closureEntry struct {
	str     stringID
	weight  semiring.Weight
	pending semiring.Weight
	queued  bool
}

// closure expands in over input-epsilon arcs. Arrivals at a known state
// with the same string are ⊕-merged; the state is expanded again only when
// the merge moved its weight by more than delta. The result is sorted by
// state and holds no Zero-weight members.
func (d *determinizer) closure(in []element) ([]element, error) {
	sr := d.sr
	entries := make(map[fst.StateID]*closureEntry, len(in))
	var queue []fst.StateID

	add := func(s fst.StateID, str stringID, w semiring.Weight) error {
		if w.IsZero() {
			return nil
		}
		e, ok := entries[s]
		if !ok {
			entries[s] = &closureEntry{str: str, weight: w, pending: w, queued: true}
			queue = append(queue, s)
			return nil
		}
		if e.str != str {
			return fmt.Errorf("%w: state %d reached with outputs %v and %v",
				ErrNonFunctional, s, d.strings.get(e.str), d.strings.get(str))
		}
		merged := sr.Plus(e.weight, w)
		changed := !semiring.ApproxEqual(merged, e.weight, d.opts.Delta)
		e.weight = merged
		if !changed {
			return nil
		}
		e.pending = sr.Plus(e.pending, w)
		if !e.queued {
			e.queued = true
			queue = append(queue, s)
		}
		return nil
	}

	for _, el := range in {
		if err := add(el.state, el.str, el.weight); err != nil {
			return nil, err
		}
	}

	pops := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		pops++
		if pops > d.opts.MaxClosureIterations {
			d.stats.ClosureIterations += pops
			return nil, fmt.Errorf("%w: epsilon closure exceeded %d iterations (%d states)",
				ErrNonTermination, d.opts.MaxClosureIterations, len(entries))
		}
		e := entries[s]
		e.queued = false
		w := e.pending
		e.pending = sr.Zero()
		for _, a := range d.in.ArcsView(s) {
			if a.ILabel != fst.Epsilon {
				continue
			}
			str := e.str
			if a.OLabel != fst.Epsilon {
				str = d.strings.extend(str, a.OLabel)
				if d.strings.length(str) > d.opts.MaxDelay {
					return nil, fmt.Errorf("%w: residual output longer than %d labels", ErrNonTermination, d.opts.MaxDelay)
				}
			}
			if err := add(a.NextState, str, sr.Times(w, a.Weight)); err != nil {
				return nil, err
			}
		}
	}
	d.stats.ClosureIterations += pops

	out := make([]element, 0, len(entries))
	for s, e := range entries {
		out = append(out, element{state: s, str: e.str, weight: e.weight})
	}
	slices.SortFunc(out, func(a, b element) int { return int(a.state - b.state) })
	return out, nil
}

// ClosureElement is one state of an epsilon closure: the state, the output
// labels emitted on the epsilon paths leading to it, and their total weight.
type ClosureElement struct {
	State  fst.StateID
	Output []fst.Label
	Weight semiring.Weight
}

// EpsilonClosure returns the weighted epsilon closure of state s in f: every
// state reachable from s through input-epsilon arcs, with the ⊕ over those
// paths of their ⊗-weights. s itself is included with weight One.
//
// Errors: fst.ErrMalformed, fst.ErrStateOutOfRange, ErrNonFunctional when two
// epsilon paths to one state emit different outputs, ErrNonTermination when
// the closure does not settle.
func EpsilonClosure(f *fst.Fst, s fst.StateID, opts ...Option) ([]ClosureElement, error) {
	if err := fst.Check(f); err != nil {
		return nil, err
	}
	if !f.HasState(s) {
		return nil, fmt.Errorf("EpsilonClosure(%d): %w", s, fst.ErrStateOutOfRange)
	}
	d, err := newDeterminizer(f, opts)
	if err != nil {
		return nil, err
	}
	elems, err := d.closure([]element{{state: s, str: emptyString, weight: f.Semiring().One()}})
	if err != nil {
		return nil, err
	}
	out := make([]ClosureElement, len(elems))
	for i, e := range elems {
		out[i] = ClosureElement{
			State:  e.state,
			Output: append([]fst.Label(nil), d.strings.get(e.str)...),
			Weight: e.weight,
		}
	}
	return out, nil
}
