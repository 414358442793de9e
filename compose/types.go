// SPDX-License-Identifier: MIT
// Package: compose
//
// types.go - options, statistics and sentinel errors.

package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrOptionViolation indicates an invalid option value.
var ErrOptionViolation = errors.New("compose: invalid option")

// Table matcher defaults: a table is built for states with at least
// DefaultMinTableSize arcs that fill at least DefaultTableRatio of the
// label range [0, maxLabel].
const (
	DefaultTableRatio   = 0.25
	DefaultMinTableSize = 4
)

// TableStats counts table matcher decisions, once per visited state.
type TableStats struct {
	Tables    int // states that got a label table
	Fallbacks int // states served by binary search
}

// Options configures Compose and TableCompose.
type Options struct {
	// Ctx allows cancellation; polled once per product state.
	Ctx context.Context

	// TableRatio is the minimum fill of a label table.
	TableRatio float64

	// MinTableSize is the minimum out-degree that gets a table.
	MinTableSize int

	// Connect trims the result to accessible and coaccessible states.
	Connect bool

	// Logger receives a summary at Debug level; nil means slog.Default().
	Logger *slog.Logger

	// OnStats, if non-nil, receives the TableCompose matcher statistics.
	OnStats func(TableStats)

	err error
}

// Option configures composition.
type Option func(*Options)

// DefaultOptions returns the table defaults, Connect=true and a
// Background context.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		TableRatio:   DefaultTableRatio,
		MinTableSize: DefaultMinTableSize,
		Connect:      true,
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTableRatio sets the minimum table fill; it must be in (0, 1].
func WithTableRatio(r float64) Option {
	return func(o *Options) {
		if r <= 0 || r > 1 {
			o.err = fmt.Errorf("%w: table ratio %g not in (0,1]", ErrOptionViolation, r)
			return
		}
		o.TableRatio = r
	}
}

// WithMinTableSize sets the minimum out-degree for a table; it must be ≥ 1.
func WithMinTableSize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: min table size %d < 1", ErrOptionViolation, n)
			return
		}
		o.MinTableSize = n
	}
}

// WithConnect toggles trimming of the result.
func WithConnect(on bool) Option {
	return func(o *Options) { o.Connect = on }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnStats installs the TableCompose statistics hook.
func WithOnStats(fn func(TableStats)) Option {
	return func(o *Options) { o.OnStats = fn }
}
