// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_cycle.go - Cycle(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewStates); the start state is ring member 0.
//   - Arc i → (i+1) mod n carries label i+1 on both sides.
//   - Every ring state is final with cfg.finalWeight.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 1
)

// Cycle returns a Constructor for an n-state labelled ring.
func Cycle(n int) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewStates)
		}
		ring := make([]fst.StateID, n)
		ring[0] = f.Start()
		for i := 1; i < n; i++ {
			ring[i] = f.AddState()
		}
		for i := 0; i < n; i++ {
			l := fst.Label(i + 1)
			arc := fst.Arc{ILabel: l, OLabel: l, Weight: cfg.weight(), NextState: ring[(i+1)%n]}
			if err := f.AddArc(ring[i], arc); err != nil {
				return fmt.Errorf("%s: AddArc(%d): %w", methodCycle, i, err)
			}
			if err := f.SetFinal(ring[i], cfg.finalWeight); err != nil {
				return fmt.Errorf("%s: SetFinal(%d): %w", methodCycle, i, err)
			}
		}
		return nil
	}
}
