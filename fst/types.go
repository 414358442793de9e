// SPDX-License-Identifier: MIT
// Package: fst
//
// types.go - labels, arcs, states, the Fst arena and sentinel errors.

package fst

import (
	"errors"

	"github.com/mengqhui/kaldi/semiring"
)

// Sentinel errors for the automaton model.
var (
	// ErrMalformed indicates an automaton that violates a structural
	// invariant. Every more specific structural error wraps it.
	ErrMalformed = errors.New("fst: malformed automaton")

	// ErrNoStart indicates the start state is unset or not in the arena.
	ErrNoStart = errors.New("fst: invalid start state")

	// ErrDanglingArc indicates an arc whose destination is not in the arena.
	ErrDanglingArc = errors.New("fst: dangling arc")

	// ErrStateOutOfRange indicates a StateID outside the arena.
	ErrStateOutOfRange = errors.New("fst: state out of range")

	// ErrNilFst indicates a nil automaton.
	ErrNilFst = errors.New("fst: automaton is nil")
)

// Label is an arc symbol. Epsilon (0) is reserved.
type Label int32

// Epsilon is the reserved "no symbol" label.
const Epsilon Label = 0

// StateID indexes a state in the arena.
type StateID int

// NoState marks an absent state (an unset start, for instance).
const NoState StateID = -1

// Arc is a transition owned by its source state.
type Arc struct {
	ILabel    Label
	OLabel    Label
	Weight    semiring.Weight
	NextState StateID
}

// state is one arena slot.
type state struct {
	final semiring.Weight
	arcs  []Arc
}

// Fst is a weighted transducer over a single semiring.
//
// The zero value is not usable; construct with New or NewWithStart.
type Fst struct {
	sr     semiring.Semiring
	start  StateID
	states []state

	// InputSymbols and OutputSymbols are optional metadata; no algorithm
	// depends on them.
	InputSymbols  *SymbolTable
	OutputSymbols *SymbolTable
}

// Stats is a cheap structural summary.
type Stats struct {
	States         int
	Arcs           int
	FinalStates    int
	InputEpsilons  int
	OutputEpsilons int
}

// SortType selects the arc key used by ArcSort.
type SortType int

const (
	// ByInput orders arcs by (ILabel, OLabel).
	ByInput SortType = iota
	// ByOutput orders arcs by (OLabel, ILabel).
	ByOutput
)
