// SPDX-License-Identifier: MIT
// Package: fst
//
// properties.go - structural property checks.

package fst

// IsDeterministic reports whether every state has at most one arc per
// input label, epsilon counted as an ordinary label.
// Complexity: O(V+E) time, O(d) memory per state.
func (f *Fst) IsDeterministic() bool {
	for s := range f.states {
		seen := make(map[Label]struct{}, len(f.states[s].arcs))
		for _, a := range f.states[s].arcs {
			if _, dup := seen[a.ILabel]; dup {
				return false
			}
			seen[a.ILabel] = struct{}{}
		}
	}
	return true
}

// NumInputEpsilons counts the arcs of s with an epsilon input label.
func (f *Fst) NumInputEpsilons(s StateID) int {
	n := 0
	for _, a := range f.ArcsView(s) {
		if a.ILabel == Epsilon {
			n++
		}
	}
	return n
}

// NumOutputEpsilons counts the arcs of s with an epsilon output label.
func (f *Fst) NumOutputEpsilons(s StateID) int {
	n := 0
	for _, a := range f.ArcsView(s) {
		if a.OLabel == Epsilon {
			n++
		}
	}
	return n
}

// InDegrees returns the number of arcs entering each state.
func (f *Fst) InDegrees() []int {
	in := make([]int, len(f.states))
	for s := range f.states {
		for _, a := range f.states[s].arcs {
			in[a.NextState]++
		}
	}
	return in
}
