// SPDX-License-Identifier: MIT
// Package: fst
//
// sort.go - arc ordering required by label matchers.

package fst

import (
	"cmp"
	"slices"
)

func compareArcs(by SortType) func(a, b Arc) int {
	if by == ByOutput {
		return func(a, b Arc) int {
			if c := cmp.Compare(a.OLabel, b.OLabel); c != 0 {
				return c
			}
			return cmp.Compare(a.ILabel, b.ILabel)
		}
	}
	return func(a, b Arc) int {
		if c := cmp.Compare(a.ILabel, b.ILabel); c != 0 {
			return c
		}
		return cmp.Compare(a.OLabel, b.OLabel)
	}
}

// ArcSort stably orders the arcs of every state by the given key.
// Complexity: O(E log d) where d is the maximum out-degree.
func (f *Fst) ArcSort(by SortType) {
	c := compareArcs(by)
	for i := range f.states {
		slices.SortStableFunc(f.states[i].arcs, c)
	}
}

// IsSorted reports whether every state's arcs are ordered by the primary
// key of by.
func (f *Fst) IsSorted(by SortType) bool {
	for i := range f.states {
		arcs := f.states[i].arcs
		for j := 1; j < len(arcs); j++ {
			if by == ByOutput && arcs[j-1].OLabel > arcs[j].OLabel {
				return false
			}
			if by == ByInput && arcs[j-1].ILabel > arcs[j].ILabel {
				return false
			}
		}
	}
	return true
}
