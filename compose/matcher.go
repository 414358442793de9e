// SPDX-License-Identifier: MIT
// Package: compose
//
// matcher.go - output-label matchers over the left automaton.

package compose

import (
	"fmt"
	"sort"

	"github.com/mengqhui/kaldi/fst"
)

// Matcher finds the arcs of one state by output label.
type Matcher interface {
	// SetState selects the state whose arcs Find searches.
	SetState(s fst.StateID)
	// Find returns the arcs of the current state with OLabel == label,
	// in arc order. The slice must not be modified.
	Find(label fst.Label) []fst.Arc
}

// SortedMatcher binary-searches arcs sorted by output label.
type SortedMatcher struct {
	f    *fst.Fst
	arcs []fst.Arc
}

// NewSortedMatcher returns a matcher over f, which must be sorted by
// output label.
func NewSortedMatcher(f *fst.Fst) (*SortedMatcher, error) {
	if !f.IsSorted(fst.ByOutput) {
		return nil, fmt.Errorf("%w: matcher needs arcs sorted by output label", fst.ErrMalformed)
	}
	return &SortedMatcher{f: f}, nil
}

// SetState implements Matcher.
func (m *SortedMatcher) SetState(s fst.StateID) { m.arcs = m.f.ArcsView(s) }

// Find implements Matcher.
func (m *SortedMatcher) Find(label fst.Label) []fst.Arc {
	return findSorted(m.arcs, label)
}

func findSorted(arcs []fst.Arc, label fst.Label) []fst.Arc {
	lo := sort.Search(len(arcs), func(i int) bool { return arcs[i].OLabel >= label })
	hi := lo
	for hi < len(arcs) && arcs[hi].OLabel == label {
		hi++
	}
	return arcs[lo:hi]
}

// labelTable maps an output label to the arc range [lo, hi) carrying it.
type labelTable struct {
	lo, hi []int32
}

// TableMatcher indexes the arcs of high out-degree states by output label.
// Tables are built on first visit and kept for the matcher's lifetime.
type TableMatcher struct {
	f       *fst.Fst
	ratio   float64
	minSize int
	tables  []*labelTable
	visited []bool
	arcs    []fst.Arc
	table   *labelTable
	stats   TableStats
}

// NewTableMatcher returns a table matcher over f, which must be sorted by
// output label. A state gets a table when it has at least minSize arcs and
// they fill at least ratio of the label range [0, maxLabel].
func NewTableMatcher(f *fst.Fst, ratio float64, minSize int) (*TableMatcher, error) {
	if !f.IsSorted(fst.ByOutput) {
		return nil, fmt.Errorf("%w: matcher needs arcs sorted by output label", fst.ErrMalformed)
	}
	return &TableMatcher{
		f:       f,
		ratio:   ratio,
		minSize: minSize,
		tables:  make([]*labelTable, f.NumStates()),
		visited: make([]bool, f.NumStates()),
	}, nil
}

// SetState implements Matcher, building the state's table on first visit.
func (m *TableMatcher) SetState(s fst.StateID) {
	m.arcs = m.f.ArcsView(s)
	if !m.visited[s] {
		m.visited[s] = true
		m.tables[s] = m.build(m.arcs)
		if m.tables[s] != nil {
			m.stats.Tables++
		} else {
			m.stats.Fallbacks++
		}
	}
	m.table = m.tables[s]
}

// Find implements Matcher.
func (m *TableMatcher) Find(label fst.Label) []fst.Arc {
	if m.table == nil {
		return findSorted(m.arcs, label)
	}
	if label < 0 || int(label) >= len(m.table.lo) {
		return nil
	}
	return m.arcs[m.table.lo[label]:m.table.hi[label]]
}

// Stats returns the table decisions made so far.
func (m *TableMatcher) Stats() TableStats { return m.stats }

// build returns nil when a table is not worthwhile for arcs.
func (m *TableMatcher) build(arcs []fst.Arc) *labelTable {
	n := len(arcs)
	if n == 0 || n < m.minSize || arcs[0].OLabel < 0 {
		return nil
	}
	maxLabel := int(arcs[n-1].OLabel)
	if float64(maxLabel+1)*m.ratio > float64(n) {
		return nil
	}
	t := &labelTable{lo: make([]int32, maxLabel+1), hi: make([]int32, maxLabel+1)}
	for i := 0; i < n; {
		j := i
		for j < n && arcs[j].OLabel == arcs[i].OLabel {
			j++
		}
		t.lo[arcs[i].OLabel], t.hi[arcs[i].OLabel] = int32(i), int32(j)
		i = j
	}
	return t
}
