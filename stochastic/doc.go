// SPDX-License-Identifier: MIT
//
// Package stochastic checks whether an automaton is stochastic: every
// state's outgoing weights, final weight included, sum to One.
//
// IsStochasticFst is a read-only diagnostic. A non-stochastic automaton is
// not an error; the result carries the verdict, the smallest and largest
// per-state sums (ordered on the cost value, so MinSum is the heaviest
// state in probability terms) and the offending states. By default the
// check runs in the log semiring, where a stochastic automaton is a proper
// probability distribution over paths; WithTestInLog(false) evaluates in
// the automaton's own semiring or the one given by WithSemiring.
//
// Drifted compares two results and reports whether an algorithm pushed a
// previously tight sum range outside its tolerance: a regression, as
// opposed to an input that was never stochastic.
package stochastic
