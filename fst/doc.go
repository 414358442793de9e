// SPDX-License-Identifier: MIT
//
// Package fst provides the weighted finite-state transducer model shared by
// every algorithm in this module.
//
// An Fst is an arena of states addressed by stable StateID indices. Each
// state owns a final weight (Zero when the state is not final) and an
// ordered slice of outgoing arcs. An arc carries an input label, an output
// label, a weight and the destination StateID; destinations are plain
// indices, so cyclic automata need no pointer bookkeeping.
//
//	    a:x/0.5        b:ε/0
//	(0) ────────▶ (1) ───────▶ ((2))
//
// Arena rules:
//
//   - AddState returns a fresh index; indices are never reused or shifted
//     while the automaton is alive.
//   - There is no single-state removal. Connect rebuilds the automaton,
//     dropping states that are not both accessible and coaccessible, and
//     is the only operation that renumbers states.
//   - MutateArcs hands out the live arc slice of one state so callers can
//     rewrite arcs in place (epsilon removal, self-loop insertion).
//
// Label 0 is Epsilon. The model does not interpret it; algorithms decide.
//
// The model carries the semiring its weights belong to. Algorithms read it
// through Semiring() and reject operands whose semirings differ with
// semiring.ErrMismatch.
//
// Concurrency: an Fst is not safe for concurrent mutation. Independent
// pipelines own disjoint automata.
//
// Errors:
//
//	ErrMalformed        – umbrella for all structural violations (Validate)
//	ErrNoStart          – start state unset or outside the arena
//	ErrDanglingArc      – arc destination outside the arena
//	ErrStateOutOfRange  – operation addressed a state that does not exist
//	ErrNilFst           – nil *Fst passed to an algorithm
package fst
