// SPDX-License-Identifier: MIT
//
// Package pipeline runs one graph-building step: compose two automata,
// determinize the result and shrink it, checking stochasticity on the way
// in and on the way out.
//
// A Stage executes a Job in a fixed order:
//
//  1. check both inputs with stochastic.IsStochasticFst and cast them to
//     the configured semiring
//  2. add disambiguation self loops to (a copy of) the right automaton
//  3. compose, with the table matcher when configured
//  4. determinize, optionally in the log semiring
//  5. strip disambiguation symbols from the input side
//  6. remove epsilons locally, optionally preserving log sums
//  7. check the output and report whether a stochastic input produced a
//     non-stochastic result
//
// RunAll executes independent jobs concurrently. Each job owns its
// automata; nothing is shared between jobs except the Stage's read-only
// configuration, logger, metrics and inspector.
//
// Configuration comes from Config, loadable from YAML:
//
//	semiring: tropical
//	delta: 0.0009765625
//	tolerance: 0.01
//	test_in_log: true
//	max_states: 0
//	determinize_in_log: true
//	special_eps_removal: true
//	table_compose: true
//	table_ratio: 0.25
//	min_table_size: 4
//	concurrency: 4
package pipeline
