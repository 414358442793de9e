// SPDX-License-Identifier: MIT
// Package: pipeline
//
// stage.go - one compose → determinize → shrink run and its report.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mengqhui/kaldi/compose"
	"github.com/mengqhui/kaldi/determinize"
	"github.com/mengqhui/kaldi/disambig"
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/rmeps"
	"github.com/mengqhui/kaldi/semiring"
	"github.com/mengqhui/kaldi/stochastic"
	"golang.org/x/sync/errgroup"
)

// ErrNilInput indicates a job without a left or right automaton.
var ErrNilInput = errors.New("pipeline: job needs both automata")

// Step names, used in errors, logs and metric labels.
const (
	stepCheck       = "check"
	stepCompose     = "compose"
	stepDeterminize = "determinize"
	stepRmeps       = "rmeps"
	stepRecheck     = "recheck"
)

// Job is one composition step. Left and Right are not modified.
type Job struct {
	Name  string
	Left  *fst.Fst
	Right *fst.Fst

	// DisambigIn and DisambigOut pair the left automaton's disambiguation
	// output labels with the right automaton's; each pair becomes a self
	// loop on the right before composing.
	DisambigIn  []fst.Label
	DisambigOut []fst.Label

	// StripInput lists input labels turned into epsilons after
	// determinization.
	StripInput []fst.Label

	// Inspector, if set, replaces the Stage's inspector for this job only.
	Inspector *determinize.Inspector
}

// Report describes one finished run.
type Report struct {
	Name   string
	Output *fst.Fst

	Left, Right stochastic.Result
	After       stochastic.Result

	// InputStochastic is true when both inputs passed the check.
	InputStochastic bool
	// Regressed is true when stochastic inputs gave a non-stochastic output.
	Regressed bool
	// Drifted is true when the output sum range is wider than the inputs'
	// by more than the tolerance, whether or not the inputs were stochastic.
	Drifted bool

	Table       compose.TableStats
	Determinize determinize.Stats
	EpsRemoval  rmeps.Result
	Duration    time.Duration
}

// Stage runs jobs under one configuration.
type Stage struct {
	cfg       Config
	sr        semiring.Semiring
	logger    *slog.Logger
	metrics   *Metrics
	inspector *determinize.Inspector
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithLogger sets the structured logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) StageOption {
	return func(s *Stage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) StageOption {
	return func(s *Stage) { s.metrics = m }
}

// WithInspector lets determinization be inspected or halted from outside.
// The inspector is shared by every job: under RunAll one Trigger is
// consumed by whichever job polls first, and OnDump may be called from
// several goroutines. Set Job.Inspector to address a single job.
func WithInspector(in *determinize.Inspector) StageOption {
	return func(s *Stage) { s.inspector = in }
}

// NewStage validates cfg and returns a Stage.
func NewStage(cfg Config, opts ...StageOption) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sr, _ := semiring.Lookup(cfg.Semiring)
	s := &Stage{cfg: cfg, sr: sr, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run executes job. Errors name the failing step and wrap the algorithm's
// sentinel; a stochasticity regression is reported, not returned.
func (s *Stage) Run(ctx context.Context, job Job) (*Report, error) {
	start := time.Now()
	rep := &Report{Name: job.Name}
	logger := s.logger.With(slog.String("job", job.Name))

	if job.Left == nil || job.Right == nil {
		return nil, s.fail(job, stepCheck, ErrNilInput)
	}
	check := []stochastic.Option{
		stochastic.WithTestInLog(s.cfg.TestInLog),
		stochastic.WithTolerance(s.cfg.Tolerance),
	}

	var err error
	s.timed(stepCheck, func() {
		if rep.Left, err = stochastic.IsStochasticFst(job.Left, check...); err != nil {
			return
		}
		rep.Right, err = stochastic.IsStochasticFst(job.Right, check...)
	})
	if err != nil {
		return nil, s.fail(job, stepCheck, err)
	}
	rep.InputStochastic = rep.Left.Stochastic && rep.Right.Stochastic

	left, err := fst.Cast(job.Left, s.sr)
	if err != nil {
		return nil, s.fail(job, stepCheck, err)
	}
	right, err := fst.Cast(job.Right, s.sr)
	if err != nil {
		return nil, s.fail(job, stepCheck, err)
	}
	if err := disambig.AddSelfLoops(right, job.DisambigIn, job.DisambigOut); err != nil {
		return nil, s.fail(job, stepCompose, err)
	}

	var composed *fst.Fst
	s.timed(stepCompose, func() {
		opts := []compose.Option{
			compose.WithContext(ctx),
			compose.WithLogger(logger),
			compose.WithTableRatio(s.cfg.TableRatio),
			compose.WithMinTableSize(s.cfg.MinTableSize),
			compose.WithOnStats(func(ts compose.TableStats) { rep.Table = ts }),
		}
		if s.cfg.TableCompose {
			composed, err = compose.TableCompose(left, right, opts...)
		} else {
			composed, err = compose.Compose(left, right, opts...)
		}
	})
	if err != nil {
		return nil, s.fail(job, stepCompose, err)
	}

	var det *fst.Fst
	s.timed(stepDeterminize, func() {
		opts := []determinize.Option{
			determinize.WithContext(ctx),
			determinize.WithDelta(s.cfg.Delta),
			determinize.WithMaxStates(s.cfg.MaxStates),
			determinize.WithLogger(logger),
			determinize.WithOnStats(func(st determinize.Stats) { rep.Determinize = st }),
		}
		if in := s.inspectorFor(job); in != nil {
			opts = append(opts, determinize.WithInspector(in))
		}
		if s.cfg.DeterminizeInLog {
			det, err = determinize.DeterminizeInLog(composed, opts...)
		} else {
			det, err = determinize.DeterminizeStar(composed, opts...)
		}
	})
	if err != nil {
		return nil, s.fail(job, stepDeterminize, err)
	}

	s.timed(stepRmeps, func() {
		if err = disambig.DeleteISymbols(det, job.StripInput); err != nil {
			return
		}
		rep.EpsRemoval, err = rmeps.RemoveEpsLocalStats(det, s.cfg.SpecialEpsRemoval,
			rmeps.WithDelta(s.cfg.Delta), rmeps.WithLogger(logger))
	})
	if err != nil {
		return nil, s.fail(job, stepRmeps, err)
	}

	s.timed(stepRecheck, func() {
		rep.After, err = stochastic.IsStochasticFst(det, check...)
	})
	if err != nil {
		return nil, s.fail(job, stepRecheck, err)
	}

	rep.Output = det
	rep.Regressed = rep.InputStochastic && !rep.After.Stochastic
	rep.Drifted = stochastic.Drifted(inputRange(rep.Left, rep.Right), rep.After, s.cfg.Tolerance)
	rep.Duration = time.Since(start)
	s.record(job, rep)

	attrs := []any{
		slog.Int("states", det.NumStates()),
		slog.Int("arcs", det.TotalArcs()),
		slog.Int("subsets", rep.Determinize.Subsets),
		slog.Int("eps_merges", rep.EpsRemoval.Merges),
		slog.Bool("stochastic_in", rep.InputStochastic),
		slog.Bool("stochastic_out", rep.After.Stochastic),
		slog.Float64("min_sum", float64(rep.After.MinSum)),
		slog.Float64("max_sum", float64(rep.After.MaxSum)),
		slog.Duration("duration", rep.Duration),
	}
	if rep.Regressed {
		logger.Warn("pipeline: stochasticity regression", attrs...)
	} else {
		logger.Info("pipeline: done", attrs...)
	}
	return rep, nil
}

// RunAll runs jobs concurrently, at most cfg.Concurrency at a time, and
// returns their reports in job order. The first error cancels the rest.
func (s *Stage) RunAll(ctx context.Context, jobs []Job) ([]*Report, error) {
	reports := make([]*Report, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}
	for i, job := range jobs {
		g.Go(func() error {
			rep, err := s.Run(gctx, job)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

func (s *Stage) inspectorFor(job Job) *determinize.Inspector {
	if job.Inspector != nil {
		return job.Inspector
	}
	return s.inspector
}

// inputRange merges the sum ranges of both inputs.
func inputRange(a, b stochastic.Result) stochastic.Result {
	r := a
	if b.MinSum < r.MinSum {
		r.MinSum = b.MinSum
	}
	if b.MaxSum > r.MaxSum {
		r.MaxSum = b.MaxSum
	}
	r.Stochastic = a.Stochastic && b.Stochastic
	return r
}

func (s *Stage) timed(step string, fn func()) {
	start := time.Now()
	fn()
	if s.metrics != nil {
		s.metrics.StepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	}
}

func (s *Stage) fail(job Job, step string, err error) error {
	if s.metrics != nil {
		s.metrics.Failures.WithLabelValues(step).Inc()
	}
	s.logger.Error("pipeline: failed",
		slog.String("job", job.Name),
		slog.String("step", step),
		slog.String("error", err.Error()))
	return fmt.Errorf("pipeline: job %q: %s: %w", job.Name, step, err)
}

func (s *Stage) record(job Job, rep *Report) {
	if s.metrics == nil {
		return
	}
	s.metrics.OutputStates.WithLabelValues(job.Name).Set(float64(rep.Output.NumStates()))
	s.metrics.OutputArcs.WithLabelValues(job.Name).Set(float64(rep.Output.TotalArcs()))
	if rep.Regressed {
		s.metrics.Regressions.Inc()
	}
}
