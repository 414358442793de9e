// SPDX-License-Identifier: MIT
// Package: shortest
//
// distance.go - Distance and ShortestPathWeight.

package shortest

import (
	"container/heap"
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// Distance returns, for every state, the ⊕-sum of the weights of all paths
// from the start state to it. Unreachable states get Zero.
func Distance(f *fst.Fst, opts ...Option) ([]semiring.Weight, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Delta <= 0 {
		return nil, ErrBadDelta
	}
	if err := fst.Check(f); err != nil {
		return nil, err
	}
	sr, err := resolve(f, cfg.Semiring)
	if err != nil {
		return nil, err
	}

	dist := make([]semiring.Weight, f.NumStates())
	for i := range dist {
		dist[i] = sr.Zero()
	}
	if f.Start() == fst.NoState {
		return dist, nil
	}
	if semiring.Same(sr, semiring.Tropical) && nonNegative(f) {
		r := &runner{f: f, dist: dist, visited: make([]bool, len(dist))}
		r.run()
		return dist, nil
	}
	return relax(f, sr, dist, cfg)
}

// ShortestPathWeight returns ⊕ over final states of distance ⊗ final weight:
// the total weight of the automaton in its (or the configured) semiring.
func ShortestPathWeight(f *fst.Fst, opts ...Option) (semiring.Weight, error) {
	dist, err := Distance(f, opts...)
	if err != nil {
		return 0, err
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	sr, _ := resolve(f, cfg.Semiring)
	total := sr.Zero()
	for s, d := range dist {
		total = sr.Plus(total, sr.Times(d, f.Final(fst.StateID(s))))
	}
	return total, nil
}

func resolve(f *fst.Fst, override semiring.Semiring) (semiring.Semiring, error) {
	if override == nil {
		return f.Semiring(), nil
	}
	if _, err := semiring.Cast(f.Semiring().One(), f.Semiring(), override); err != nil {
		return nil, fmt.Errorf("shortest: %w", err)
	}
	return override, nil
}

func nonNegative(f *fst.Fst) bool {
	for s := 0; s < f.NumStates(); s++ {
		for _, a := range f.ArcsView(fst.StateID(s)) {
			if a.Weight < 0 {
				return false
			}
		}
	}
	return true
}

// runner holds the mutable state of one Dijkstra execution.
type runner struct {
	f       *fst.Fst
	dist    []semiring.Weight
	visited []bool
	pq      nodePQ
}

// run seeds the heap with the start state and settles states in order of
// increasing cost, pushing a fresh heap entry on every improvement (lazy
// decrease-key) and skipping stale entries on pop.
func (r *runner) run() {
	start := r.f.Start()
	r.dist[start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: start, dist: 0})
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		for _, a := range r.f.ArcsView(item.id) {
			nd := semiring.Tropical.Times(r.dist[item.id], a.Weight)
			if nd < r.dist[a.NextState] {
				r.dist[a.NextState] = nd
				heap.Push(&r.pq, &nodeItem{id: a.NextState, dist: nd})
			}
		}
	}
}

// nodeItem is a heap entry: a state and its tentative distance.
type nodeItem struct {
	id   fst.StateID
	dist semiring.Weight
}

// nodePQ is a min-heap of *nodeItem ordered by dist.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
