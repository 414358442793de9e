// SPDX-License-Identifier: MIT
//
// Package semiring provides the weight algebra shared by every automaton
// algorithm in this module.
//
// What:
//
//   - Weight is a float64 in cost representation (−log probability).
//     Zero (the additive identity) is +Inf, One (the multiplicative
//     identity) is 0.
//   - Semiring is an explicit strategy object. Algorithms never assume a
//     particular semiring; they receive one and call Plus/Times/Divide.
//   - Tropical is (min, +): the shortest-path interpretation.
//   - Log is (−log(e^−a + e^−b), +): the probability-sum interpretation.
//
// Both semirings share the same representation, so a tropical weight and
// a log weight with the same value describe the same path cost. Cast moves
// a weight between them without changing its value; it is pure, reversible
// and order-preserving, and it refuses values that are not members of the
// target semiring (NaN, −Inf) with ErrMismatch.
//
// Errors:
//
//   - ErrMismatch     operands from different semirings, or an uncastable weight.
//   - ErrDivideByZero Divide by Zero.
package semiring
