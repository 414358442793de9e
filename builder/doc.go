// SPDX-License-Identifier: MIT
// Package: builder
//
// Package builder assembles deterministic fixture automata for tests,
// examples and benchmarks.
//
// One orchestrator, Build(sr, opts, constructors...), creates an automaton
// with a start state, resolves the option set into an immutable config and
// runs each Constructor in order. Constructors add states and arcs relative
// to the start state:
//
//   - Linear(ilabels, olabels)  a single path spelling the given labels
//     (MakeLinearAcceptor when olabels is nil).
//   - Star(n)                   one hub with n labelled arcs to one leaf:
//     the high-out-degree shape the table matcher targets.
//   - Cycle(n)                  n states in a ring, every state final.
//   - RandomSparse(n, p, maxLabel)
//     forward-only random arcs (acyclic), optional epsilons.
//
// Post-passes:
//
//   - Normalize(f) reweights every state so that its arcs and final weight
//     sum to One in the log semiring (a stochastic automaton).
//
// Determinism: same constructors, options and seed ⇒ identical automata.
// Options that take values validate them and panic on programmer error;
// constructors never panic and return sentinel errors.
package builder
