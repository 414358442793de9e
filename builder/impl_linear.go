// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_linear.go - Linear(ilabels, olabels) constructor.
//
// Contract:
//   - olabels nil ⇒ acceptor (olabels = ilabels).
//   - len(olabels) must equal len(ilabels) otherwise (ErrLengthMismatch).
//   - The path starts at the start state; its last state gets cfg.finalWeight.
//   - Arc weights come from cfg.weightFn in path order.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
)

const methodLinear = "Linear"

// Linear returns a Constructor that appends a single path spelling ilabels
// on the input side and olabels on the output side.
func Linear(ilabels, olabels []fst.Label) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if olabels == nil {
			olabels = ilabels
		}
		if len(olabels) != len(ilabels) {
			return fmt.Errorf("%s: %d input vs %d output labels: %w",
				methodLinear, len(ilabels), len(olabels), ErrLengthMismatch)
		}
		cur := f.Start()
		for i := range ilabels {
			next := f.AddState()
			arc := fst.Arc{ILabel: ilabels[i], OLabel: olabels[i], Weight: cfg.weight(), NextState: next}
			if err := f.AddArc(cur, arc); err != nil {
				return fmt.Errorf("%s: AddArc(%d→%d): %w", methodLinear, cur, next, err)
			}
			cur = next
		}
		return f.SetFinal(cur, cfg.finalWeight)
	}
}
