// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_star.go - Star(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewStates).
//   - Adds one leaf state, final with cfg.finalWeight.
//   - Emits n arcs start → leaf with labels i:i for i = 1..n in ascending
//     order, then a leaf → start epsilon arc so the hub is re-entered.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
)

const (
	methodStar   = "Star"
	minStarLeafs = 1
)

// Star returns a Constructor for a hub with n distinct labelled arcs.
func Star(n int) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if n < minStarLeafs {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarLeafs, ErrTooFewStates)
		}
		hub := f.Start()
		leaf := f.AddState()
		for i := 1; i <= n; i++ {
			l := fst.Label(i)
			if err := f.AddArc(hub, fst.Arc{ILabel: l, OLabel: l, Weight: cfg.weight(), NextState: leaf}); err != nil {
				return fmt.Errorf("%s: AddArc(%d): %w", methodStar, i, err)
			}
		}
		if err := f.AddArc(leaf, fst.Arc{Weight: cfg.weight(), NextState: hub}); err != nil {
			return fmt.Errorf("%s: AddArc(leaf→hub): %w", methodStar, err)
		}
		return f.SetFinal(leaf, cfg.finalWeight)
	}
}
