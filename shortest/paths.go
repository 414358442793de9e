// SPDX-License-Identifier: MIT
// Package: shortest
//
// paths.go - the weight an automaton assigns to one string pair.

package shortest

import (
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// config is one state of the product of f with the string pair: the state
// of f and how much of each string has been consumed.
type config struct {
	s    fst.StateID
	i, o int
}

// PathWeight returns the ⊕-sum, over every successful path of f whose
// non-epsilon input labels spell input and whose non-epsilon output labels
// spell output, of the path weight. It returns Zero when no path matches.
//
// The sum is computed as the shortest distance of the product automaton
// (state, consumed input, consumed output), which may contain epsilon
// cycles; generic relaxation handles them.
func PathWeight(f *fst.Fst, input, output []fst.Label, opts ...Option) (semiring.Weight, error) {
	if err := fst.Check(f); err != nil {
		return 0, err
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	sr, err := resolve(f, cfg.Semiring)
	if err != nil {
		return 0, err
	}
	if f.Start() == fst.NoState {
		return sr.Zero(), nil
	}

	prod := fst.New(f.Semiring())
	ids := make(map[config]fst.StateID)
	var queue []config
	lookup := func(c config) fst.StateID {
		if id, ok := ids[c]; ok {
			return id
		}
		id := prod.AddState()
		ids[c] = id
		queue = append(queue, c)
		if c.i == len(input) && c.o == len(output) {
			_ = prod.SetFinal(id, f.Final(c.s))
		}
		return id
	}
	_ = prod.SetStart(lookup(config{s: f.Start()}))

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		from := ids[c]
		for _, a := range f.ArcsView(c.s) {
			next := config{s: a.NextState, i: c.i, o: c.o}
			if a.ILabel != fst.Epsilon {
				if c.i >= len(input) || input[c.i] != a.ILabel {
					continue
				}
				next.i++
			}
			if a.OLabel != fst.Epsilon {
				if c.o >= len(output) || output[c.o] != a.OLabel {
					continue
				}
				next.o++
			}
			to := lookup(next)
			_ = prod.AddArc(from, fst.Arc{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight, NextState: to})
		}
	}
	return ShortestPathWeight(prod, opts...)
}
