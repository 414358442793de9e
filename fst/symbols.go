// SPDX-License-Identifier: MIT
// Package: fst
//
// symbols.go - optional symbol tables mapping labels to strings.

package fst

import "fmt"

// SymbolTable is a bidirectional label ↔ symbol mapping. Label 0 is bound
// to "<eps>" on construction.
type SymbolTable struct {
	Name     string
	bySymbol map[string]Label
	byLabel  map[Label]string
	next     Label
}

// NewSymbolTable returns a table holding only the epsilon entry.
func NewSymbolTable(name string) *SymbolTable {
	t := &SymbolTable{
		Name:     name,
		bySymbol: map[string]Label{"<eps>": Epsilon},
		byLabel:  map[Label]string{Epsilon: "<eps>"},
		next:     1,
	}
	return t
}

// AddSymbol returns the label of sym, assigning the next free one when sym
// is new.
func (t *SymbolTable) AddSymbol(sym string) Label {
	if l, ok := t.bySymbol[sym]; ok {
		return l
	}
	l := t.next
	t.bind(sym, l)
	return l
}

// AddSymbolAt binds sym to an explicit label.
func (t *SymbolTable) AddSymbolAt(sym string, l Label) error {
	if old, ok := t.byLabel[l]; ok && old != sym {
		return fmt.Errorf("fst: label %d already bound to %q", l, old)
	}
	t.bind(sym, l)
	return nil
}

func (t *SymbolTable) bind(sym string, l Label) {
	t.bySymbol[sym] = l
	t.byLabel[l] = sym
	if l >= t.next {
		t.next = l + 1
	}
}

// Find returns the label of sym.
func (t *SymbolTable) Find(sym string) (Label, bool) {
	l, ok := t.bySymbol[sym]
	return l, ok
}

// FindSymbol returns the symbol bound to l.
func (t *SymbolTable) FindSymbol(l Label) (string, bool) {
	s, ok := t.byLabel[l]
	return s, ok
}

// Len returns the number of entries including epsilon.
func (t *SymbolTable) Len() int { return len(t.byLabel) }

// HighestLabel returns the largest bound label.
func (t *SymbolTable) HighestLabel() Label { return t.next - 1 }
