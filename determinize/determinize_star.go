// SPDX-License-Identifier: MIT
// Package: determinize
//
// determinize_star.go - the subset-construction work loop.

package determinize

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// task is a determinized state waiting to be expanded.
type task struct {
	id     fst.StateID
	subset []element
}

// determinizer holds the mutable state of one DeterminizeStar run.
type determinizer struct {
	in      *fst.Fst
	sr      semiring.Semiring
	opts    Options
	logger  *slog.Logger
	strings *stringRepo
	table   *subsetTable
	out     *fst.Fst
	queue   []task
	stats   Stats
}

func newDeterminizer(f *fst.Fst, opts []Option) (*determinizer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &determinizer{
		in:      f,
		sr:      f.Semiring(),
		opts:    o,
		logger:  logger,
		strings: newStringRepo(),
		table:   newSubsetTable(),
	}, nil
}

// DeterminizeStar determinizes f, removing input epsilons on the way.
//
// The result is a fresh automaton over the semiring of f: at most one arc per
// (state, input label), epsilon included, and at most one input-epsilon arc
// per state (see the package documentation on output chains). Its weighted
// relation equals that of f, up to Delta on path weights.
//
// Malformed input fails before any subset work. On ErrNonTermination,
// ErrInterrupted or context cancellation the partial output built so far is
// returned alongside the error; it is well-formed but incomplete.
//
// Complexity: O(S·(A + C)) where S is the number of subsets, A the arcs
// leaving their members and C the closure cost; S may be exponential in the
// number of input states.
func DeterminizeStar(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	if err := fst.Check(f); err != nil {
		return nil, fmt.Errorf("DeterminizeStar: %w", err)
	}
	d, err := newDeterminizer(f, opts)
	if err != nil {
		return nil, err
	}
	out, err := d.run()
	if d.out != nil {
		d.stats.OutputStates = d.out.NumStates()
		d.stats.OutputArcs = d.out.TotalArcs()
	}
	if d.opts.OnStats != nil {
		d.opts.OnStats(d.stats)
	}
	if err == nil {
		d.logger.Debug("determinize: done",
			slog.Int("subsets", d.stats.Subsets),
			slog.Int("states", d.stats.OutputStates),
			slog.Int("arcs", d.stats.OutputArcs),
			slog.Int("chain_states", d.stats.ChainStates))
	}
	return out, err
}

// DeterminizeInLog casts f to the log semiring, determinizes it there and
// casts the result back to the semiring of f. Subset weights are then
// normalized by log-sums instead of minima, which keeps a stochastic input
// stochastic.
//
// Errors: semiring.ErrMismatch when f's semiring has no log image, plus
// everything DeterminizeStar returns.
func DeterminizeInLog(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	if err := fst.Check(f); err != nil {
		return nil, fmt.Errorf("DeterminizeInLog: %w", err)
	}
	lf, err := fst.Cast(f, semiring.Log)
	if err != nil {
		return nil, fmt.Errorf("DeterminizeInLog: %w", err)
	}
	det, err := DeterminizeStar(lf, opts...)
	if det == nil {
		return nil, err
	}
	back, cerr := fst.Cast(det, f.Semiring())
	if cerr != nil {
		return nil, fmt.Errorf("DeterminizeInLog: %w", cerr)
	}
	return back, err
}

// run drives the work queue.
func (d *determinizer) run() (*fst.Fst, error) {
	d.out = fst.New(d.sr)
	d.out.InputSymbols = d.in.InputSymbols
	d.out.OutputSymbols = d.in.OutputSymbols
	if d.in.Start() == fst.NoState {
		return d.out, nil
	}

	start, err := d.closure([]element{{state: d.in.Start(), str: emptyString, weight: d.sr.One()}})
	if err != nil {
		return nil, err
	}
	id, err := d.lookup(start)
	if err != nil {
		return d.out, err
	}
	_ = d.out.SetStart(id)

	for len(d.queue) > 0 {
		// cancellation check (once per iteration)
		select {
		case <-d.opts.Ctx.Done():
			return d.out, d.opts.Ctx.Err()
		default:
		}
		if in := d.opts.Inspector; in != nil && in.poll() {
			if err := d.dump(in); err != nil {
				return d.out, err
			}
		}

		t := d.queue[0]
		d.queue = d.queue[1:]
		if err := d.expand(t); err != nil {
			if errors.Is(err, ErrNonFunctional) {
				return nil, err
			}
			d.logger.Warn("determinize: stopped",
				slog.String("error", err.Error()),
				slog.Int("queue", len(d.queue)),
				slog.Int("subsets", d.table.size),
				slog.Int("states", d.out.NumStates()))
			return d.out, err
		}
	}
	return d.out, nil
}

// lookup returns the output state of a normalized subset, creating and
// enqueueing it when the subset is new.
func (d *determinizer) lookup(elems []element) (fst.StateID, error) {
	key := subsetKey(elems)
	if id, ok := d.table.find(key, elems, d.opts.Delta); ok {
		return id, nil
	}
	id, err := d.newState()
	if err != nil {
		return fst.NoState, err
	}
	d.table.insert(key, elems, id)
	d.stats.Subsets++
	d.queue = append(d.queue, task{id: id, subset: elems})
	return id, nil
}

// newState adds an output state unless MaxStates is reached. Subset and
// chain states count alike.
func (d *determinizer) newState() (fst.StateID, error) {
	if d.opts.MaxStates > 0 && d.out.NumStates() >= d.opts.MaxStates {
		return fst.NoState, fmt.Errorf("%w: output reached %d states", ErrNonTermination, d.out.NumStates())
	}
	return d.out.AddState(), nil
}

// expand emits the final weight and the outgoing arcs of one subset.
func (d *determinizer) expand(t task) error {
	if err := d.processFinal(t); err != nil {
		return err
	}

	groups := make(map[fst.Label][]element)
	var labels []fst.Label
	for _, e := range t.subset {
		for _, a := range d.in.ArcsView(e.state) {
			if a.ILabel == fst.Epsilon {
				continue
			}
			w := d.sr.Times(e.weight, a.Weight)
			if w.IsZero() {
				continue
			}
			str := e.str
			if a.OLabel != fst.Epsilon {
				str = d.strings.extend(str, a.OLabel)
				if d.strings.length(str) > d.opts.MaxDelay {
					return fmt.Errorf("%w: residual output longer than %d labels", ErrNonTermination, d.opts.MaxDelay)
				}
			}
			if _, seen := groups[a.ILabel]; !seen {
				labels = append(labels, a.ILabel)
			}
			groups[a.ILabel] = append(groups[a.ILabel], element{state: a.NextState, str: str, weight: w})
		}
	}
	slices.Sort(labels)

	for _, l := range labels {
		closed, err := d.closure(groups[l])
		if err != nil {
			return err
		}
		if len(closed) == 0 {
			continue
		}
		total, prefix, normalized, err := d.normalize(closed)
		if err != nil {
			return err
		}
		dest, err := d.lookup(normalized)
		if err != nil {
			return err
		}
		if err := d.emit(t.id, l, prefix, total, dest); err != nil {
			return err
		}
	}
	return nil
}

// processFinal sets the final weight of a subset state: the ⊕ of
// residual ⊗ final over its final members. A non-empty residual string is
// flushed through an epsilon-input chain into a fresh final state.
func (d *determinizer) processFinal(t task) error {
	fw := d.sr.Zero()
	fstr := stringID(-1)
	for _, e := range t.subset {
		fin := d.in.Final(e.state)
		if fin.IsZero() {
			continue
		}
		if fstr < 0 {
			fstr = e.str
		} else if fstr != e.str {
			return fmt.Errorf("%w: final outputs %v and %v in one subset",
				ErrNonFunctional, d.strings.get(fstr), d.strings.get(e.str))
		}
		fw = d.sr.Plus(fw, d.sr.Times(e.weight, fin))
	}
	if fstr < 0 || fw.IsZero() {
		return nil
	}
	if fstr == emptyString {
		_ = d.out.SetFinal(t.id, fw)
		return nil
	}
	end, err := d.newState()
	if err != nil {
		return err
	}
	d.stats.ChainStates++
	_ = d.out.SetFinal(end, d.sr.One())
	return d.emit(t.id, fst.Epsilon, d.strings.get(fstr), fw, end)
}

// normalize factors the ⊕ of the member weights and the longest common
// output prefix out of a closed subset.
func (d *determinizer) normalize(elems []element) (semiring.Weight, []fst.Label, []element, error) {
	total := d.sr.Zero()
	for _, e := range elems {
		total = d.sr.Plus(total, e.weight)
	}

	prefix := d.strings.get(elems[0].str)
	for _, e := range elems[1:] {
		s := d.strings.get(e.str)
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}
		prefix = prefix[:n]
	}
	prefix = append([]fst.Label(nil), prefix...)

	out := make([]element, len(elems))
	for i, e := range elems {
		w, err := d.sr.Divide(e.weight, total)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("determinize: normalize: %w", err)
		}
		out[i] = element{state: e.state, str: d.strings.suffix(e.str, len(prefix)), weight: w}
	}
	return total, prefix, out, nil
}

// emit adds the arc from→dest labelled ilabel with the given outputs. More
// than one output label becomes a chain: the first link carries ilabel and
// w, each later link an epsilon input, one output label and One.
func (d *determinizer) emit(from fst.StateID, ilabel fst.Label, olabels []fst.Label, w semiring.Weight, dest fst.StateID) error {
	if len(olabels) <= 1 {
		ol := fst.Epsilon
		if len(olabels) == 1 {
			ol = olabels[0]
		}
		_ = d.out.AddArc(from, fst.Arc{ILabel: ilabel, OLabel: ol, Weight: w, NextState: dest})
		return nil
	}
	cur := from
	for i, ol := range olabels {
		next := dest
		if i < len(olabels)-1 {
			var err error
			if next, err = d.newState(); err != nil {
				return err
			}
			d.stats.ChainStates++
		}
		_ = d.out.AddArc(cur, fst.Arc{ILabel: ilabel, OLabel: ol, Weight: w, NextState: next})
		cur, ilabel, w = next, fst.Epsilon, d.sr.One()
	}
	return nil
}

// dump takes a snapshot for an Inspector and reports whether to halt.
func (d *determinizer) dump(in *Inspector) error {
	snap := Snapshot{
		QueueLen:        len(d.queue),
		SubsetTableSize: d.table.size,
		OutputStates:    d.out.NumStates(),
		OutputArcs:      d.out.TotalArcs(),
	}
	for i := 0; i < len(d.queue) && i < in.sampleSize(); i++ {
		snap.Pending = append(snap.Pending, d.render(d.queue[i].subset))
	}
	d.logger.Info("determinize: snapshot",
		slog.Int("queue", snap.QueueLen),
		slog.Int("subsets", snap.SubsetTableSize),
		slog.Int("states", snap.OutputStates),
		slog.Int("arcs", snap.OutputArcs),
		slog.Any("pending", snap.Pending),
		slog.Bool("halt", in.Halt))
	if in.OnDump != nil {
		in.OnDump(snap)
	}
	if in.Halt {
		return fmt.Errorf("%w: %d subsets pending", ErrInterrupted, snap.QueueLen)
	}
	return nil
}
