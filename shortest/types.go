// SPDX-License-Identifier: MIT
//
// Package shortest computes single-source shortest distances over a weighted
// automaton in an arbitrary semiring, and the total weight an automaton
// assigns to a given input/output string pair.
//
// Two strategies are used:
//
//   - Tropical automata with non-negative weights run Dijkstra over a lazy
//     min-heap: each state is finalized once.
//   - Any other semiring runs queue-based generic relaxation: a state is
//     re-queued whenever its distance moves by more than Delta, carrying only
//     the not-yet-propagated residual weight. This converges for the log
//     semiring on automata without cycles of probability mass ≥ 1.
//
// Complexity:
//
//   - Dijkstra: O((V + E) log V) time, O(V + E) space.
//   - Generic:  O(I·d) time where I is the number of queue pops (bounded by
//     MaxIterations), O(V) space.
//
// Errors:
//
//   - fst.ErrMalformed   the automaton failed validation.
//   - ErrNoConvergence   generic relaxation exceeded MaxIterations.
//   - ErrBadDelta        Delta ≤ 0.
package shortest

import (
	"errors"

	"github.com/mengqhui/kaldi/semiring"
)

// Sentinel errors returned by shortest-distance computations.
var (
	// ErrNoConvergence indicates relaxation did not settle within the
	// configured number of queue pops.
	ErrNoConvergence = errors.New("shortest: relaxation did not converge")

	// ErrBadDelta indicates a non-positive convergence threshold.
	ErrBadDelta = errors.New("shortest: Delta must be positive")
)

// DefaultMaxIterations bounds generic relaxation per state in the arena.
const DefaultMaxIterations = 1 << 16

// Options configures distance computations.
//
// Delta         – convergence threshold for generic relaxation.
// MaxIterations – queue pops allowed per arena state; 0 means unbounded.
// Semiring      – evaluate in this semiring instead of the automaton's own.
type Options struct {
	Delta         float64
	MaxIterations int
	Semiring      semiring.Semiring
}

// Option represents a functional option for distance computations.
type Option func(*Options)

// WithDelta sets the convergence threshold.
func WithDelta(delta float64) Option {
	return func(o *Options) { o.Delta = delta }
}

// WithMaxIterations bounds the queue pops per arena state.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithSemiring evaluates weights in sr. The semiring must share the cost
// representation of the automaton's own (tropical ↔ log).
func WithSemiring(sr semiring.Semiring) Option {
	return func(o *Options) { o.Semiring = sr }
}

// DefaultOptions returns Delta = semiring.DefaultDelta, the default
// iteration bound and the automaton's own semiring.
func DefaultOptions() Options {
	return Options{
		Delta:         semiring.DefaultDelta,
		MaxIterations: DefaultMaxIterations,
	}
}
