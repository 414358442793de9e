// SPDX-License-Identifier: MIT
//
// Package rmeps removes epsilon arcs locally, never growing the automaton.
//
// An arc a entering an intermediate state q and an arc b leaving it are
// combinable when their non-epsilon labels do not collide on either side:
//
//	!(a.ILabel≠ε ∧ b.ILabel≠ε) ∧ !(a.OLabel≠ε ∧ b.OLabel≠ε)
//
// The merged arc keeps the non-epsilon label of each side, the weight
// a.Weight ⊗ b.Weight and b's destination. Two merge shapes are tried per
// state q (never the start state):
//
//   - single input:  q has exactly one incoming arc a, from another state.
//     a is replaced by its merge with every arc leaving q. When q is final
//     a must be ε:ε and q's final weight moves onto a's source.
//   - single output: q is non-final and has exactly one outgoing arc b,
//     not a self loop. Every arc entering q is replaced by its merge with b.
//
// Both shapes remove one arc, so the arc count strictly decreases and the
// pass reaches a fixpoint. Connect then drops the bypassed states. The
// weighted relation is unchanged; epsilons that cannot be removed at zero
// structural cost are left in place.
//
// RemoveEpsLocalSpecial evaluates every candidate merge twice: once in the
// automaton's own semiring (always exact) and once in the log semiring,
// where the merge is rejected unless every affected source state keeps its
// outgoing log-sum (final weight included) within Delta. Use it on
// automata that must stay probability-normalized.
//
// Errors:
//
//   - fst.ErrMalformed        input failed validation
//   - semiring.ErrMismatch    RemoveEpsLocalSpecial on a semiring with no log image
//   - ErrOptionViolation      invalid option values
package rmeps
