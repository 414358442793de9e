// SPDX-License-Identifier: MIT
// Package: compose
//
// compose.go - the product construction shared by both matchers.

package compose

import (
	"fmt"
	"log/slog"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// filterState is the epsilon sequencing state; see the package comment.
type filterState uint8

// tuple is one product state.
type tuple struct {
	s1, s2 fst.StateID
	fs     filterState
}

type composer struct {
	a, b  *fst.Fst
	sr    semiring.Semiring
	m     Matcher
	out   *fst.Fst
	ids   map[tuple]fst.StateID
	queue []tuple
	opts  Options
}

// Compose returns the composition of a and b using a SortedMatcher.
// Neither input is modified: a is sorted by output label on a copy when
// needed.
// Complexity: O(Q·(d_b·log d_a + e_a)) for Q product states.
func Compose(a, b *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o, sorted, err := prepare(a, b, opts)
	if err != nil {
		return nil, fmt.Errorf("Compose: %w", err)
	}
	m, err := NewSortedMatcher(sorted)
	if err != nil {
		return nil, fmt.Errorf("Compose: %w", err)
	}
	return run(sorted, b, m, o)
}

// TableCompose returns the composition of a and b using a TableMatcher on
// a, for automata whose states have high out-degree. The result is
// identical to Compose.
func TableCompose(a, b *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o, sorted, err := prepare(a, b, opts)
	if err != nil {
		return nil, fmt.Errorf("TableCompose: %w", err)
	}
	m, err := NewTableMatcher(sorted, o.TableRatio, o.MinTableSize)
	if err != nil {
		return nil, fmt.Errorf("TableCompose: %w", err)
	}
	out, err := run(sorted, b, m, o)
	if o.OnStats != nil {
		o.OnStats(m.Stats())
	}
	return out, err
}

// prepare validates both inputs and the options and returns a copy of a
// sorted by output label, or a itself when it already is.
func prepare(a, b *fst.Fst, opts []Option) (Options, *fst.Fst, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, nil, o.err
	}
	if err := fst.Check(a); err != nil {
		return o, nil, err
	}
	if err := fst.Check(b); err != nil {
		return o, nil, err
	}
	if !semiring.Same(a.Semiring(), b.Semiring()) {
		return o, nil, fmt.Errorf("%w: %s ∘ %s", semiring.ErrMismatch, a.Semiring().Name(), b.Semiring().Name())
	}
	if a.IsSorted(fst.ByOutput) {
		return o, a, nil
	}
	c := a.Clone()
	c.ArcSort(fst.ByOutput)
	return o, c, nil
}

func run(a, b *fst.Fst, m Matcher, o Options) (*fst.Fst, error) {
	c := &composer{
		a: a, b: b, sr: a.Semiring(), m: m, opts: o,
		out: fst.New(a.Semiring()),
		ids: make(map[tuple]fst.StateID),
	}
	c.out.InputSymbols = a.InputSymbols
	c.out.OutputSymbols = b.OutputSymbols
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if a.Start() == fst.NoState || b.Start() == fst.NoState {
		return c.out, nil
	}

	_ = c.out.SetStart(c.lookup(tuple{s1: a.Start(), s2: b.Start()}))
	for len(c.queue) > 0 {
		select {
		case <-o.Ctx.Done():
			return c.out, o.Ctx.Err()
		default:
		}
		t := c.queue[0]
		c.queue = c.queue[1:]
		c.expand(t)
	}
	states, arcs := c.out.NumStates(), c.out.TotalArcs()
	if o.Connect {
		c.out.Connect()
	}
	logger.Debug("compose: done",
		slog.Int("product_states", states),
		slog.Int("product_arcs", arcs),
		slog.Int("states", c.out.NumStates()),
		slog.Int("arcs", c.out.TotalArcs()))
	return c.out, nil
}

// lookup returns the output state of t, creating and enqueueing it once.
func (c *composer) lookup(t tuple) fst.StateID {
	if id, ok := c.ids[t]; ok {
		return id
	}
	id := c.out.AddState()
	c.ids[t] = id
	c.queue = append(c.queue, t)
	return id
}

func (c *composer) expand(t tuple) {
	from := c.ids[t]
	f1, f2 := c.a.Final(t.s1), c.b.Final(t.s2)
	if !f1.IsZero() && !f2.IsZero() {
		_ = c.out.SetFinal(from, c.sr.Times(f1, f2))
	}

	c.m.SetState(t.s1)
	eps1 := c.m.Find(fst.Epsilon)
	allEps1 := len(eps1) == c.a.NumArcs(t.s1) && f1.IsZero()
	noEps1 := len(eps1) == 0

	// A moves alone on an output epsilon.
	if t.fs == 0 {
		for _, a := range eps1 {
			c.emit(from, a.ILabel, fst.Epsilon, a.Weight, tuple{s1: a.NextState, s2: t.s2})
		}
	}

	for _, b := range c.b.ArcsView(t.s2) {
		if b.ILabel == fst.Epsilon {
			// B moves alone on an input epsilon.
			if allEps1 {
				continue
			}
			next := tuple{s1: t.s1, s2: b.NextState, fs: 1}
			if noEps1 {
				next.fs = 0
			}
			c.emit(from, fst.Epsilon, b.OLabel, b.Weight, next)
			continue
		}
		for _, a := range c.m.Find(b.ILabel) {
			c.emit(from, a.ILabel, b.OLabel, c.sr.Times(a.Weight, b.Weight), tuple{s1: a.NextState, s2: b.NextState})
		}
	}
}

func (c *composer) emit(from fst.StateID, il, ol fst.Label, w semiring.Weight, next tuple) {
	if w.IsZero() {
		return
	}
	to := c.lookup(next)
	_ = c.out.AddArc(from, fst.Arc{ILabel: il, OLabel: ol, Weight: w, NextState: to})
}
