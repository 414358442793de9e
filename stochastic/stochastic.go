// SPDX-License-Identifier: MIT
// Package: stochastic
//
// stochastic.go - per-state sums and the drift check.

package stochastic

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// IsStochasticFst sums, for every state, its final weight and the weights
// of its arcs, and reports whether every sum is within Tolerance of One.
// f is never modified.
//
// An automaton without states is stochastic with MinSum = MaxSum = One.
// Errors: fst.ErrMalformed, semiring.ErrMismatch when the log cast is not
// possible, ErrOptionViolation.
// Complexity: O(V+E).
func IsStochasticFst(f *fst.Fst, opts ...Option) (Result, error) {
	if err := fst.Check(f); err != nil {
		return Result{}, fmt.Errorf("IsStochasticFst: %w", err)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}

	sr := f.Semiring()
	if o.TestInLog {
		sr = semiring.Log
	} else if o.Semiring != nil {
		sr = o.Semiring
	}
	if !semiring.Same(sr, f.Semiring()) {
		if _, err := semiring.Cast(f.Semiring().One(), f.Semiring(), sr); err != nil {
			return Result{}, fmt.Errorf("IsStochasticFst: %w", err)
		}
	}

	res := Result{Stochastic: true, MinSum: sr.One(), MaxSum: sr.One()}
	for s := 0; s < f.NumStates(); s++ {
		id := fst.StateID(s)
		sum := f.Final(id)
		for _, a := range f.ArcsView(id) {
			sum = sr.Plus(sum, a.Weight)
		}
		if s == 0 {
			res.MinSum, res.MaxSum = sum, sum
		} else {
			if sr.Less(sum, res.MinSum) {
				res.MinSum = sum
			}
			if sr.Less(res.MaxSum, sum) {
				res.MaxSum = sum
			}
		}
		if !semiring.IsOne(sr, sum, o.Tolerance) {
			res.Stochastic = false
			res.Violations = append(res.Violations, id)
		}
	}
	return res, nil
}

// IsStochastic is IsStochasticFst evaluated in sr (no log cast) with the
// given tolerance, returning the verdict and the sum range.
func IsStochastic(f *fst.Fst, sr semiring.Semiring, tolerance float64) (bool, semiring.Weight, semiring.Weight, error) {
	res, err := IsStochasticFst(f, WithTestInLog(false), WithSemiring(sr), WithTolerance(tolerance))
	if err != nil {
		return false, 0, 0, err
	}
	return res.Stochastic, res.MinSum, res.MaxSum, nil
}

// Drifted reports whether after's sum range extends more than tol beyond
// before's on either side. A non-stochastic input that stays equally
// non-stochastic has not drifted.
func Drifted(before, after Result, tol float64) bool {
	return float64(after.MinSum) < float64(before.MinSum)-tol ||
		float64(after.MaxSum) > float64(before.MaxSum)+tol
}
