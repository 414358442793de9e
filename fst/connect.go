// SPDX-License-Identifier: MIT
// Package: fst
//
// connect.go - trimming by full reconstruction.

package fst

// Accessible marks the states reachable from the start state with an
// iterative breadth-first walk.
// Complexity: O(V+E) time, O(V) memory.
func (f *Fst) Accessible() []bool {
	seen := make([]bool, len(f.states))
	if !f.HasState(f.start) {
		return seen
	}
	queue := []StateID{f.start}
	seen[f.start] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range f.states[s].arcs {
			if !seen[a.NextState] {
				seen[a.NextState] = true
				queue = append(queue, a.NextState)
			}
		}
	}
	return seen
}

// Coaccessible marks the states from which some final state is reachable,
// walking the reversed arcs backwards from every final state.
// Complexity: O(V+E) time and memory.
func (f *Fst) Coaccessible() []bool {
	n := len(f.states)
	rev := make([][]StateID, n)
	for s := range f.states {
		for _, a := range f.states[s].arcs {
			rev[a.NextState] = append(rev[a.NextState], StateID(s))
		}
	}
	seen := make([]bool, n)
	var queue []StateID
	for s := range f.states {
		if !f.states[s].final.IsZero() {
			seen[s] = true
			queue = append(queue, StateID(s))
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range rev[s] {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return seen
}

// Connect rebuilds f keeping only states that are accessible and
// coaccessible. Kept states keep their relative order; arcs into removed
// states are dropped. This is the only operation that renumbers states.
//
// It returns the old→new mapping (NoState for removed states).
// Complexity: O(V+E).
func (f *Fst) Connect() []StateID {
	acc := f.Accessible()
	coacc := f.Coaccessible()
	remap := make([]StateID, len(f.states))
	kept := make([]state, 0, len(f.states))
	for s := range f.states {
		if acc[s] && coacc[s] {
			remap[s] = StateID(len(kept))
			kept = append(kept, f.states[s])
		} else {
			remap[s] = NoState
		}
	}
	for i := range kept {
		arcs := kept[i].arcs[:0:0]
		for _, a := range kept[i].arcs {
			if to := remap[a.NextState]; to != NoState {
				a.NextState = to
				arcs = append(arcs, a)
			}
		}
		kept[i].arcs = arcs
	}
	if f.HasState(f.start) {
		f.start = remap[f.start]
	} else {
		f.start = NoState
	}
	f.states = kept
	return remap
}
