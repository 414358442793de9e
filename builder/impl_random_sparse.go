// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_random_sparse.go - RandomSparse(n, p, maxLabel) constructor.
//
// Model:
//   - n states in total, the start state being state 0 of the fixture.
//   - Forward arcs only: for every ordered pair i<j an arc i→j is included
//     with probability p, so the result is acyclic.
//   - Every state without a successor becomes final, plus the last state.
//   - Labels are drawn from 1..maxLabel (acceptor: ilabel = olabel); with
//     probability cfg.epsilonProb the arc is an epsilon arc instead.
//
// Contract:
//   - n ≥ 2, maxLabel ≥ 1 (ErrTooFewStates); 0 ≤ p ≤ 1 (ErrInvalidProbability).
//   - cfg.rng must be set unless p ∈ {0,1} and cfg.epsilonProb ∈ {0,1}.
//   - Trial order: i asc, j asc; deterministic for a fixed seed.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
)

const (
	methodRandomSparse = "RandomSparse"
	minRandomStates    = 2
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse returns a Constructor sampling a random acyclic acceptor.
func RandomSparse(n int, p float64, maxLabel int) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if n < minRandomStates {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomStates, ErrTooFewStates)
		}
		if maxLabel < 1 {
			return fmt.Errorf("%s: maxLabel=%d < 1: %w", methodRandomSparse, maxLabel, ErrTooFewStates)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		stochastic := (p > 0 && p < 1) || maxLabel > 1 || (cfg.epsilonProb > 0 && cfg.epsilonProb < 1)
		if cfg.rng == nil && stochastic {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}
		rng := cfg.rng

		ids := make([]fst.StateID, n)
		ids[0] = f.Start()
		for i := 1; i < n; i++ {
			ids[i] = f.AddState()
		}
		draw := func(prob float64) bool {
			if rng == nil {
				return prob >= 1
			}
			return rng.Float64() < prob
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !draw(p) {
					continue
				}
				l := fst.Label(1)
				if rng != nil {
					l = fst.Label(1 + rng.Intn(maxLabel))
				}
				if draw(cfg.epsilonProb) {
					l = fst.Epsilon
				}
				arc := fst.Arc{ILabel: l, OLabel: l, Weight: cfg.weight(), NextState: ids[j]}
				if err := f.AddArc(ids[i], arc); err != nil {
					return fmt.Errorf("%s: AddArc(%d→%d): %w", methodRandomSparse, i, j, err)
				}
			}
		}
		for i := 0; i < n; i++ {
			if i == n-1 || f.NumArcs(ids[i]) == 0 {
				if err := f.SetFinal(ids[i], cfg.finalWeight); err != nil {
					return fmt.Errorf("%s: SetFinal(%d): %w", methodRandomSparse, i, err)
				}
			}
		}
		return nil
	}
}
