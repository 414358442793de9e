// SPDX-License-Identifier: MIT
// Package: disambig
//
// disambig.go - self loops, label deletion and label inspection.

package disambig

import (
	"fmt"
	"slices"

	"github.com/mengqhui/kaldi/fst"
)

// AddSelfLoops adds, on every state that is final or has an arc with a
// non-epsilon output label, one self loop ilabels[k]:olabels[k] with weight
// One per k. The condition is evaluated on f as given, before any loop is
// added.
func AddSelfLoops(f *fst.Fst, ilabels, olabels []fst.Label) error {
	if err := fst.Check(f); err != nil {
		return fmt.Errorf("AddSelfLoops: %w", err)
	}
	if len(ilabels) != len(olabels) {
		return fmt.Errorf("AddSelfLoops: %d input vs %d output labels: %w", len(ilabels), len(olabels), ErrLengthMismatch)
	}
	if len(ilabels) == 0 {
		return nil
	}
	one := f.Semiring().One()
	n := f.NumStates()
	for s := 0; s < n; s++ {
		id := fst.StateID(s)
		if !needsLoops(f, id) {
			continue
		}
		for k := range ilabels {
			_ = f.AddArc(id, fst.Arc{ILabel: ilabels[k], OLabel: olabels[k], Weight: one, NextState: id})
		}
	}
	return nil
}

func needsLoops(f *fst.Fst, s fst.StateID) bool {
	if f.IsFinal(s) {
		return true
	}
	for _, a := range f.ArcsView(s) {
		if a.OLabel != fst.Epsilon {
			return true
		}
	}
	return false
}

// DeleteISymbols relabels to epsilon every input label of f found in
// labels. Epsilon in labels is ignored.
func DeleteISymbols(f *fst.Fst, labels []fst.Label) error {
	if err := fst.Check(f); err != nil {
		return fmt.Errorf("DeleteISymbols: %w", err)
	}
	del := labelSet(labels)
	relabel(f, func(a *fst.Arc) {
		if _, ok := del[a.ILabel]; ok {
			a.ILabel = fst.Epsilon
		}
	})
	return nil
}

// DeleteOSymbols is DeleteISymbols for output labels.
func DeleteOSymbols(f *fst.Fst, labels []fst.Label) error {
	if err := fst.Check(f); err != nil {
		return fmt.Errorf("DeleteOSymbols: %w", err)
	}
	del := labelSet(labels)
	relabel(f, func(a *fst.Arc) {
		if _, ok := del[a.OLabel]; ok {
			a.OLabel = fst.Epsilon
		}
	})
	return nil
}

// MapInputLabels replaces input labels found in m; others are kept.
func MapInputLabels(f *fst.Fst, m map[fst.Label]fst.Label) error {
	if err := fst.Check(f); err != nil {
		return fmt.Errorf("MapInputLabels: %w", err)
	}
	relabel(f, func(a *fst.Arc) {
		if to, ok := m[a.ILabel]; ok {
			a.ILabel = to
		}
	})
	return nil
}

// HighestInputLabel returns the largest input label of f, 0 if none.
func HighestInputLabel(f *fst.Fst) fst.Label {
	return highest(f, func(a fst.Arc) fst.Label { return a.ILabel })
}

// HighestOutputLabel returns the largest output label of f, 0 if none.
func HighestOutputLabel(f *fst.Fst) fst.Label {
	return highest(f, func(a fst.Arc) fst.Label { return a.OLabel })
}

// InputLabels returns the sorted distinct non-epsilon input labels of f.
func InputLabels(f *fst.Fst) []fst.Label {
	return collect(f, func(a fst.Arc) fst.Label { return a.ILabel })
}

// OutputLabels returns the sorted distinct non-epsilon output labels of f.
func OutputLabels(f *fst.Fst) []fst.Label {
	return collect(f, func(a fst.Arc) fst.Label { return a.OLabel })
}

func labelSet(labels []fst.Label) map[fst.Label]struct{} {
	set := make(map[fst.Label]struct{}, len(labels))
	for _, l := range labels {
		if l != fst.Epsilon {
			set[l] = struct{}{}
		}
	}
	return set
}

func relabel(f *fst.Fst, fn func(a *fst.Arc)) {
	for s := 0; s < f.NumStates(); s++ {
		_ = f.MutateArcs(fst.StateID(s), func(_ int, a *fst.Arc) { fn(a) })
	}
}

func highest(f *fst.Fst, key func(fst.Arc) fst.Label) fst.Label {
	var hi fst.Label
	for s := 0; s < f.NumStates(); s++ {
		for _, a := range f.ArcsView(fst.StateID(s)) {
			hi = max(hi, key(a))
		}
	}
	return hi
}

func collect(f *fst.Fst, key func(fst.Arc) fst.Label) []fst.Label {
	seen := make(map[fst.Label]struct{})
	for s := 0; s < f.NumStates(); s++ {
		for _, a := range f.ArcsView(fst.StateID(s)) {
			if l := key(a); l != fst.Epsilon {
				seen[l] = struct{}{}
			}
		}
	}
	out := make([]fst.Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}
