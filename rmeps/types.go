// SPDX-License-Identifier: MIT
// Package: rmeps
//
// types.go - options, merge records and sentinel errors.

package rmeps

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ErrOptionViolation indicates an invalid option value.
var ErrOptionViolation = errors.New("rmeps: invalid option")

// Kind names the merge shape.
type Kind int

const (
	// SingleInput merges the only arc entering a state with its out-arcs.
	SingleInput Kind = iota
	// SingleOutput merges every arc entering a state with its only out-arc.
	SingleOutput
)

func (k Kind) String() string {
	if k == SingleInput {
		return "single-input"
	}
	return "single-output"
}

// Merge describes one accepted merge, reported through OnMerge.
type Merge struct {
	State   fst.StateID // the bypassed state
	Kind    Kind
	Sources []fst.StateID // states whose arcs were rewritten
}

// Result summarizes one run.
type Result struct {
	Merges     int
	Rejected   int // merges vetoed by the log-sum check
	Passes     int
	ArcsBefore int
	ArcsAfter  int
}

// Options configures RemoveEpsLocal and RemoveEpsLocalSpecial.
type Options struct {
	// Delta is the log-sum slack of RemoveEpsLocalSpecial.
	Delta float64

	// Logger receives a summary at Debug level; nil means slog.Default().
	Logger *slog.Logger

	// OnMerge, if non-nil, is called after every accepted merge.
	OnMerge func(Merge)

	err error
}

// Option configures the remover.
type Option func(*Options)

// DefaultOptions returns semiring.DefaultDelta and no hooks.
func DefaultOptions() Options {
	return Options{Delta: semiring.DefaultDelta}
}

// WithDelta sets the log-sum slack; it must be positive.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta <= 0 {
			o.err = fmt.Errorf("%w: delta %g must be positive", ErrOptionViolation, delta)
			return
		}
		o.Delta = delta
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnMerge installs a merge hook.
func WithOnMerge(fn func(Merge)) Option {
	return func(o *Options) { o.OnMerge = fn }
}
