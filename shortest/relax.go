// SPDX-License-Identifier: MIT
// Package: shortest
//
// relax.go - generic queue relaxation for non-idempotent semirings.

package shortest

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// relax runs the residual-weight relaxation: r[s] holds the weight that
// reached s since it was last expanded, and only that residual is pushed
// along the arcs of s when it is popped.
func relax(f *fst.Fst, sr semiring.Semiring, dist []semiring.Weight, cfg Options) ([]semiring.Weight, error) {
	n := len(dist)
	residual := make([]semiring.Weight, n)
	for i := range residual {
		residual[i] = sr.Zero()
	}
	queued := make([]bool, n)

	start := f.Start()
	dist[start] = sr.One()
	residual[start] = sr.One()
	queue := []fst.StateID{start}
	queued[start] = true

	limit := cfg.MaxIterations * n
	pops := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		queued[s] = false
		pops++
		if limit > 0 && pops > limit {
			return nil, fmt.Errorf("%w: %d pops over %d states", ErrNoConvergence, pops, n)
		}

		r := residual[s]
		residual[s] = sr.Zero()
		for _, a := range f.ArcsView(s) {
			add := sr.Times(r, a.Weight)
			next := sr.Plus(dist[a.NextState], add)
			if semiring.ApproxEqual(dist[a.NextState], next, cfg.Delta) {
				continue
			}
			dist[a.NextState] = next
			residual[a.NextState] = sr.Plus(residual[a.NextState], add)
			if !queued[a.NextState] {
				queued[a.NextState] = true
				queue = append(queue, a.NextState)
			}
		}
	}
	return dist, nil
}
