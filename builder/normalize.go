// SPDX-License-Identifier: MIT
// Package: builder
//
// normalize.go - the stochastic post-pass.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// Normalize divides every arc and final weight of a state by the log-sum of
// that state's outgoing weights, making the automaton stochastic in the log
// semiring. States with no outgoing mass are left alone. The representation
// is shared with the tropical semiring, so tropical automata are accepted.
func Normalize(f *fst.Fst) error {
	if err := fst.Check(f); err != nil {
		return err
	}
	if _, err := semiring.Cast(f.Semiring().One(), f.Semiring(), semiring.Log); err != nil {
		return fmt.Errorf("Normalize: %w", err)
	}
	lg := semiring.Log
	for s := 0; s < f.NumStates(); s++ {
		id := fst.StateID(s)
		total := f.Final(id)
		for _, a := range f.ArcsView(id) {
			total = lg.Plus(total, a.Weight)
		}
		if total.IsZero() {
			continue
		}
		if fin := f.Final(id); !fin.IsZero() {
			w, _ := lg.Divide(fin, total)
			_ = f.SetFinal(id, w)
		}
		_ = f.MutateArcs(id, func(_ int, a *fst.Arc) {
			a.Weight, _ = lg.Divide(a.Weight, total)
		})
	}
	return nil
}
