// SPDX-License-Identifier: MIT
//
// Package compose implements weighted transducer composition with two
// interchangeable label matchers.
//
// Composition pairs every path of A with every path of B whose input
// spells A's output. Labels are matched through a Matcher over A's output
// side:
//
//   - SortedMatcher: binary search over arcs sorted by output label.
//   - TableMatcher:  builds, lazily and per visited state, a table indexed
//     by output label. Only states with enough arcs and a dense enough
//     label range get a table (MinTableSize, TableRatio); the rest fall
//     back to binary search.
//
// Both matchers return the same arcs in the same order, so Compose and
// TableCompose produce identical automata; the table only changes speed.
//
// Epsilons:
//
// An output epsilon on A or an input epsilon on B lets one side move
// alone. Without care a path with epsilons on both sides would be produced
// once per interleaving, which double-counts weight in the log semiring.
// A two-valued filter state admits exactly one interleaving: A moves alone
// only from filter state 0, a lone B move switches to 1 (when A could still
// move alone), and a real label match resets to 0. A lone B move is refused
// outright when A's state is non-final and has only output-epsilon arcs.
//
// Errors:
//
//   - fst.ErrMalformed       either input failed validation
//   - semiring.ErrMismatch   the inputs use different semirings
//   - ErrOptionViolation     invalid option values
//   - context errors         cancellation via WithContext (partial output returned)
package compose
