// SPDX-License-Identifier: MIT
// Package: rmeps
//
// rmeps.go - the fixpoint loop and both merge shapes.

package rmeps

import (
	"fmt"
	"log/slog"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ref locates one arc: the idx-th arc of src.
type ref struct {
	src fst.StateID
	idx int
}

// rewrite is the proposed new arc list and final weight of one source state.
type rewrite struct {
	src   fst.StateID
	arcs  []fst.Arc
	final semiring.Weight
}

// acceptFunc vetoes a merge given the rewrites it would apply.
type acceptFunc func(rws []rewrite) bool

type remover struct {
	f      *fst.Fst
	sr     semiring.Semiring
	opts   Options
	accept acceptFunc
	res    Result

	in      [][]ref
	touched []bool
}

// RemoveEpsLocal merges combinable arc pairs in place until no merge that
// lowers the arc count remains, then connects f. It never increases the
// number of arcs and preserves the weighted relation exactly.
// Complexity: O(P·(V+E)) for P passes; P is bounded by the number of merges.
func RemoveEpsLocal(f *fst.Fst, opts ...Option) error {
	_, err := run(f, false, opts)
	return err
}

// RemoveEpsLocalSpecial is RemoveEpsLocal with an extra veto: a merge is
// kept only if every rewritten source state keeps its log-semiring
// outgoing sum, final weight included, within Delta.
func RemoveEpsLocalSpecial(f *fst.Fst, opts ...Option) error {
	_, err := run(f, true, opts)
	return err
}

// RemoveEpsLocalStats runs either variant and returns its statistics.
func RemoveEpsLocalStats(f *fst.Fst, special bool, opts ...Option) (Result, error) {
	return run(f, special, opts)
}

func run(f *fst.Fst, special bool, opts []Option) (Result, error) {
	if err := fst.Check(f); err != nil {
		return Result{}, fmt.Errorf("rmeps: %w", err)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &remover{f: f, sr: f.Semiring(), opts: o}
	r.accept = func([]rewrite) bool { return true }
	if special {
		if _, err := semiring.Cast(r.sr.One(), r.sr, semiring.Log); err != nil {
			return Result{}, fmt.Errorf("RemoveEpsLocalSpecial: %w", err)
		}
		r.accept = r.logSumPreserved
	}

	r.res.ArcsBefore = f.TotalArcs()
	if f.Start() != fst.NoState {
		for r.pass() {
		}
		f.Connect()
	}
	r.res.ArcsAfter = f.TotalArcs()

	logger.Debug("rmeps: done",
		slog.Bool("special", special),
		slog.Int("merges", r.res.Merges),
		slog.Int("rejected", r.res.Rejected),
		slog.Int("passes", r.res.Passes),
		slog.Int("arcs_before", r.res.ArcsBefore),
		slog.Int("arcs_after", r.res.ArcsAfter))
	return r.res, nil
}

// pass tries every state once and reports whether anything merged. States
// involved in a merge are skipped for the rest of the pass because their
// incoming-arc index is stale.
func (r *remover) pass() bool {
	r.res.Passes++
	n := r.f.NumStates()
	r.in = make([][]ref, n)
	for s := 0; s < n; s++ {
		for i, a := range r.f.ArcsView(fst.StateID(s)) {
			r.in[a.NextState] = append(r.in[a.NextState], ref{src: fst.StateID(s), idx: i})
		}
	}
	r.touched = make([]bool, n)

	merged := false
	for s := 0; s < n; s++ {
		q := fst.StateID(s)
		if q == r.f.Start() || r.touched[q] {
			continue
		}
		if r.singleInput(q) || r.singleOutput(q) {
			merged = true
		}
	}
	return merged
}

// singleInput bypasses q when it has exactly one incoming arc.
func (r *remover) singleInput(q fst.StateID) bool {
	if len(r.in[q]) != 1 {
		return false
	}
	in := r.in[q][0]
	if in.src == q || r.touched[in.src] {
		return false
	}
	a := r.f.ArcsView(in.src)[in.idx]
	fin := r.f.Final(q)
	if !fin.IsZero() && (a.ILabel != fst.Epsilon || a.OLabel != fst.Epsilon) {
		return false
	}
	outs := r.f.ArcsView(q)
	for _, b := range outs {
		if !combinable(a, b) {
			return false
		}
	}

	old := r.f.ArcsView(in.src)
	arcs := make([]fst.Arc, 0, len(old)-1+len(outs))
	arcs = append(arcs, old[:in.idx]...)
	for _, b := range outs {
		arcs = append(arcs, r.combine(a, b))
	}
	arcs = append(arcs, old[in.idx+1:]...)
	final := r.f.Final(in.src)
	if !fin.IsZero() {
		final = r.sr.Plus(final, r.sr.Times(a.Weight, fin))
	}

	rws := []rewrite{{src: in.src, arcs: arcs, final: final}}
	if !r.commit(rws) {
		return false
	}
	_ = r.f.DeleteArcs(q)
	r.touched[q] = true
	for _, b := range outs {
		r.touched[b.NextState] = true
	}
	r.report(Merge{State: q, Kind: SingleInput, Sources: []fst.StateID{in.src}})
	return true
}

// singleOutput bypasses a non-final q whose only arc leaves it.
func (r *remover) singleOutput(q fst.StateID) bool {
	if r.f.IsFinal(q) || r.f.NumArcs(q) != 1 || len(r.in[q]) == 0 {
		return false
	}
	b := r.f.ArcsView(q)[0]
	if b.NextState == q {
		return false
	}
	for _, in := range r.in[q] {
		if in.src == q || r.touched[in.src] {
			return false
		}
		if !combinable(r.f.ArcsView(in.src)[in.idx], b) {
			return false
		}
	}

	var rws []rewrite
	pos := make(map[fst.StateID]int)
	for _, in := range r.in[q] {
		i, ok := pos[in.src]
		if !ok {
			i = len(rws)
			pos[in.src] = i
			rws = append(rws, rewrite{
				src:   in.src,
				arcs:  append([]fst.Arc(nil), r.f.ArcsView(in.src)...),
				final: r.f.Final(in.src),
			})
		}
		rws[i].arcs[in.idx] = r.combine(rws[i].arcs[in.idx], b)
	}
	if !r.commit(rws) {
		return false
	}
	_ = r.f.DeleteArcs(q)
	r.touched[q] = true
	r.touched[b.NextState] = true
	sources := make([]fst.StateID, len(rws))
	for i, rw := range rws {
		sources[i] = rw.src
	}
	r.report(Merge{State: q, Kind: SingleOutput, Sources: sources})
	return true
}

// commit applies rws unless the acceptance test vetoes them.
func (r *remover) commit(rws []rewrite) bool {
	if !r.accept(rws) {
		r.res.Rejected++
		return false
	}
	for _, rw := range rws {
		_ = r.f.SetArcs(rw.src, rw.arcs)
		_ = r.f.SetFinal(rw.src, rw.final)
		r.touched[rw.src] = true
	}
	r.res.Merges++
	return true
}

func (r *remover) report(m Merge) {
	if r.opts.OnMerge != nil {
		r.opts.OnMerge(m)
	}
}

// logSumPreserved compares each source's log out-sum before and after.
func (r *remover) logSumPreserved(rws []rewrite) bool {
	for _, rw := range rws {
		before := logSum(r.f.ArcsView(rw.src), r.f.Final(rw.src))
		after := logSum(rw.arcs, rw.final)
		if !semiring.ApproxEqual(before, after, r.opts.Delta) {
			return false
		}
	}
	return true
}

func logSum(arcs []fst.Arc, final semiring.Weight) semiring.Weight {
	sum := final
	for _, a := range arcs {
		sum = semiring.Log.Plus(sum, a.Weight)
	}
	return sum
}

// combinable reports whether a followed by b fits on one arc.
func combinable(a, b fst.Arc) bool {
	return !(a.ILabel != fst.Epsilon && b.ILabel != fst.Epsilon) &&
		!(a.OLabel != fst.Epsilon && b.OLabel != fst.Epsilon)
}

// combine returns the single arc equivalent to a followed by b.
func (r *remover) combine(a, b fst.Arc) fst.Arc {
	out := fst.Arc{ILabel: a.ILabel, OLabel: a.OLabel, Weight: r.sr.Times(a.Weight, b.Weight), NextState: b.NextState}
	if out.ILabel == fst.Epsilon {
		out.ILabel = b.ILabel
	}
	if out.OLabel == fst.Epsilon {
		out.OLabel = b.OLabel
	}
	return out
}
