// SPDX-License-Identifier: MIT
// Package: disambig
//
// symbols.go - caller-owned disambiguation symbol ranges.

package disambig

import (
	"errors"
	"fmt"
	"math"

	"github.com/mengqhui/kaldi/fst"
)

var (
	// ErrLengthMismatch indicates label lists of different lengths.
	ErrLengthMismatch = errors.New("disambig: label lists differ in length")

	// ErrBadRange indicates a symbol range that starts at epsilon, is
	// negative or overflows the label type.
	ErrBadRange = errors.New("disambig: invalid symbol range")
)

// Symbols is a contiguous range of n disambiguation labels starting at
// First; symbol #k has label First+k.
type Symbols struct {
	First fst.Label
	N     int
}

// NewSymbols returns the range [first, first+n).
func NewSymbols(first fst.Label, n int) (Symbols, error) {
	if first <= fst.Epsilon || n < 0 || int64(first)+int64(n) > math.MaxInt32 {
		return Symbols{}, fmt.Errorf("%w: first=%d n=%d", ErrBadRange, first, n)
	}
	return Symbols{First: first, N: n}, nil
}

// After returns n symbols numbered from highest+1, the usual
// "#0 = highest real label + 1" placement.
func After(highest fst.Label, n int) (Symbols, error) {
	if highest < fst.Epsilon {
		return Symbols{}, fmt.Errorf("%w: highest=%d", ErrBadRange, highest)
	}
	return NewSymbols(highest+1, n)
}

// Label returns the label of symbol #k.
func (s Symbols) Label(k int) fst.Label { return s.First + fst.Label(k) }

// Labels returns every label of the range in order.
func (s Symbols) Labels() []fst.Label {
	out := make([]fst.Label, s.N)
	for k := range out {
		out[k] = s.Label(k)
	}
	return out
}

// Contains reports whether l belongs to the range.
func (s Symbols) Contains(l fst.Label) bool {
	return l >= s.First && int64(l) < int64(s.First)+int64(s.N)
}

// Register binds "#0".."#n-1" to the range in t.
func (s Symbols) Register(t *fst.SymbolTable) error {
	for k := 0; k < s.N; k++ {
		if err := t.AddSymbolAt(fmt.Sprintf("#%d", k), s.Label(k)); err != nil {
			return fmt.Errorf("disambig: register #%d: %w", k, err)
		}
	}
	return nil
}

// Relabel maps every label of from onto the label with the same index in
// to. The ranges must have the same size.
func Relabel(from, to Symbols) (map[fst.Label]fst.Label, error) {
	if from.N != to.N {
		return nil, fmt.Errorf("%w: %d vs %d symbols", ErrLengthMismatch, from.N, to.N)
	}
	m := make(map[fst.Label]fst.Label, from.N)
	for k := 0; k < from.N; k++ {
		m[from.Label(k)] = to.Label(k)
	}
	return m, nil
}
