// SPDX-License-Identifier: MIT
// Package: determinize
//
// types.go - options, hooks, diagnostics and sentinel errors.

package determinize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/mengqhui/kaldi/semiring"
)

var (
	// ErrNonFunctional indicates that one input state was reached with two
	// different residual output strings inside one subset.
	ErrNonFunctional = errors.New("determinize: transducer is not functional")

	// ErrNonTermination indicates the subset construction exceeded a growth
	// limit and would likely not terminate.
	ErrNonTermination = errors.New("determinize: non-termination risk")

	// ErrInterrupted indicates an Inspector halted the construction.
	ErrInterrupted = errors.New("determinize: interrupted")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("determinize: invalid option")
)

// Defaults for the growth limits.
const (
	DefaultMaxDelay             = 4096
	DefaultMaxClosureIterations = 1 << 20
	DefaultSampleSize           = 5
)

// Options configures DeterminizeStar.
type Options struct {
	// Ctx allows cancellation; polled once per work-queue iteration.
	Ctx context.Context

	// Delta is the slack for subset weight equality and closure convergence.
	Delta float64

	// MaxStates caps the number of output states, chain states included;
	// 0 means unbounded.
	MaxStates int

	// MaxDelay bounds the length of a residual output string.
	MaxDelay int

	// MaxClosureIterations bounds queue pops inside one epsilon closure.
	MaxClosureIterations int

	// Inspector, if non-nil, is polled once per work-queue iteration.
	Inspector *Inspector

	// Logger receives snapshots and limit warnings; nil means slog.Default().
	Logger *slog.Logger

	// OnStats, if non-nil, receives the final statistics of a run,
	// including runs that stopped with an error after subset work began.
	OnStats func(Stats)

	err error
}

// Option configures DeterminizeStar.
type Option func(*Options)

// DefaultOptions returns Background context, semiring.DefaultDelta,
// unbounded states, DefaultMaxDelay and DefaultMaxClosureIterations.
func DefaultOptions() Options {
	return Options{
		Ctx:                  context.Background(),
		Delta:                semiring.DefaultDelta,
		MaxDelay:             DefaultMaxDelay,
		MaxClosureIterations: DefaultMaxClosureIterations,
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

// WithDelta sets the weight comparison slack; it must be positive.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta <= 0 {
			o.err = fmt.Errorf("%w: delta %g must be positive", ErrOptionViolation, delta)
			return
		}
		o.Delta = delta
	}
}

// WithMaxStates bounds the output automaton size; 0 disables the bound.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max states %d is negative", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithMaxDelay bounds residual output strings.
func WithMaxDelay(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max delay %d must be positive", ErrOptionViolation, n)
			return
		}
		o.MaxDelay = n
	}
}

// WithMaxClosureIterations bounds each epsilon closure.
func WithMaxClosureIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max closure iterations %d must be positive", ErrOptionViolation, n)
			return
		}
		o.MaxClosureIterations = n
	}
}

// WithInspector installs a debug inspector.
func WithInspector(in *Inspector) Option {
	return func(o *Options) { o.Inspector = in }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnStats installs a statistics hook.
func WithOnStats(fn func(Stats)) Option {
	return func(o *Options) { o.OnStats = fn }
}

// Stats summarizes one DeterminizeStar run.
type Stats struct {
	Subsets           int // distinct subsets discovered
	OutputStates      int // states in the output, chain states included
	OutputArcs        int
	ChainStates       int // states created for multi-symbol outputs
	ClosureIterations int // queue pops across all epsilon closures
}

// Snapshot is the diagnostic dump taken when an Inspector fires.
type Snapshot struct {
	QueueLen        int
	SubsetTableSize int
	OutputStates    int
	OutputArcs      int
	// Pending holds a bounded sample of queued subsets, rendered as
	// "{state:string/weight ...}".
	Pending []string
}

// Inspector is an out-of-band interrupt token. Trigger may be called from
// any goroutine; the work loop consumes the trigger at its next poll.
type Inspector struct {
	fired atomic.Bool

	// Halt stops the run with ErrInterrupted after the dump. When false the
	// run continues.
	Halt bool

	// SampleSize bounds Snapshot.Pending; 0 means DefaultSampleSize.
	SampleSize int

	// OnDump, if non-nil, receives every snapshot. Snapshots are also
	// logged at Info level.
	OnDump func(Snapshot)
}

// Trigger requests a snapshot at the next poll.
func (in *Inspector) Trigger() { in.fired.Store(true) }

// poll consumes a pending trigger.
func (in *Inspector) poll() bool { return in.fired.CompareAndSwap(true, false) }

func (in *Inspector) sampleSize() int {
	if in.SampleSize <= 0 {
		return DefaultSampleSize
	}
	return in.SampleSize
}
