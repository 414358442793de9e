// SPDX-License-Identifier: MIT
// Package: builder
//
// api.go - the Build orchestrator and the Constructor contract.

package builder

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// Constructor applies a deterministic mutation to f using the resolved
// config. Constructors validate their parameters first, return sentinel
// errors and never panic.
type Constructor func(f *fst.Fst, cfg builderConfig) error

// Build creates an automaton over sr with one start state, resolves opts
// and applies every constructor in order. Constructor errors are wrapped
// with "Build: %w" and returned immediately.
func Build(sr semiring.Semiring, opts []Option, cons ...Constructor) (*fst.Fst, error) {
	f := fst.NewWithStart(sr)
	cfg := newBuilderConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(f, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	return f, nil
}

// MustBuild is Build for fixtures known to be valid; it panics on error.
func MustBuild(sr semiring.Semiring, opts []Option, cons ...Constructor) *fst.Fst {
	f, err := Build(sr, opts, cons...)
	if err != nil {
		panic(err)
	}
	return f
}
