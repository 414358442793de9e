// SPDX-License-Identifier: MIT
// Package: fst
//
// cast.go - reinterpreting an automaton in another semiring.

package fst

import (
	"fmt"

	"github.com/mengqhui/kaldi/semiring"
)

// Cast returns a copy of f whose weights belong to sr. Every arc and final
// weight goes through semiring.Cast, so the call fails with
// semiring.ErrMismatch when the two semirings do not share a representation
// or a weight has no image in sr. f is not modified.
func Cast(f *Fst, sr semiring.Semiring) (*Fst, error) {
	if err := Check(f); err != nil {
		return nil, err
	}
	out := f.Clone()
	out.sr = sr
	for s := range out.states {
		st := &out.states[s]
		w, err := semiring.Cast(st.final, f.sr, sr)
		if err != nil {
			return nil, fmt.Errorf("Cast: final of state %d: %w", s, err)
		}
		st.final = w
		for i := range st.arcs {
			w, err := semiring.Cast(st.arcs[i].Weight, f.sr, sr)
			if err != nil {
				return nil, fmt.Errorf("Cast: state %d arc %d: %w", s, i, err)
			}
			st.arcs[i].Weight = w
		}
	}
	return out, nil
}
