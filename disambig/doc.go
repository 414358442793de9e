// SPDX-License-Identifier: MIT
//
// Package disambig manages disambiguation symbols: auxiliary labels that
// keep an automaton determinizable without changing its real language.
//
// Around a composition A ∘ B the left automaton carries disambiguation
// symbols on its output side. AddSelfLoops gives B a self loop per symbol
// pair so those labels pass through, and after determinization
// DeleteISymbols turns them back into epsilons.
//
// AddSelfLoops puts loops on every state that is final or has at least one
// arc with a non-epsilon output label. A final state whose arcs all have
// epsilon outputs gets loops; a non-final one does not.
//
// Numbering is never global: Symbols is a caller-owned range of labels
// ("#0", "#1", ...), usually placed right after the highest real label of
// one automaton (After), and Relabel maps one automaton's numbering onto
// another's.
package disambig
