// SPDX-License-Identifier: MIT
//
// Package determinize implements DeterminizeStar: subset-construction
// determinization of a weighted transducer that removes input epsilons as
// part of the construction.
//
// What:
//
//   - EpsilonClosure: from a weighted set of states, follow every
//     input-epsilon arc, accumulating weight (⊗ along a path, ⊕ across paths)
//     and the output labels emitted on the way.
//   - DeterminizeStar: a work queue of determinized states, each standing for
//     a closed subset of (state, residual output string, residual weight)
//     triples. For every input label leaving the subset the successor subset
//     is closed, normalized (the ⊕ of its weights and the longest common
//     prefix of its strings move onto the new arc) and looked up in the
//     subset table.
//   - DeterminizeInLog: casts a tropical automaton to the log semiring,
//     determinizes there and casts the result back.
//
// Output symbol chains:
//
// Removing epsilons can make one determinized arc need several output
// labels. Instead of folding them into the weight, the arc becomes a chain of
// fresh states:
//
//	(p) ──a:x/w──▶ (c1) ──ε:y/1──▶ (c2) ──ε:z/1──▶ (q)
//
// The first link carries the input label and the weight, every later link an
// epsilon input, one output label and One. A chain state has exactly one
// outgoing arc. A subset state has only labelled arcs, plus at most one
// epsilon arc when its final weight owes output labels (the final chain).
// The result is deterministic with epsilon counted as an ordinary label.
//
// Termination:
//
// A transducer whose residual strings grow without bound never runs out of
// new subsets. The construction stops with ErrNonTermination when a residual
// string exceeds MaxDelay labels, the output (chain states included) would
// exceed MaxStates states, or an epsilon closure keeps changing for more
// than MaxClosureIterations pops.
//
// Inspection:
//
// An Inspector can be triggered from any goroutine (for example a signal
// handler). The work loop polls it once per iteration and reports a Snapshot:
// queue depth, subset-table size and a sample of pending subsets. With
// Halt set the call returns the partial output and ErrInterrupted.
//
// Errors:
//
//   - fst.ErrMalformed       input failed validation (before any subset work)
//   - semiring.ErrMismatch   DeterminizeInLog on a semiring with no log image
//   - ErrNonFunctional       one state reached with two different residual strings
//   - ErrNonTermination      a growth limit was exceeded (partial output returned)
//   - ErrInterrupted         the Inspector halted the run (partial output returned)
//   - ErrOptionViolation     invalid option values
//   - context errors         cancellation via WithContext (partial output returned)
package determinize
