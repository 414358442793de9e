// SPDX-License-Identifier: MIT
// Package: pipeline
//
// metrics.go - Prometheus instrumentation of stage runs.

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered against the Registerer given to NewMetrics.
type Metrics struct {
	// StepDuration measures each step of a run.
	// Labels: step (check, compose, determinize, rmeps, recheck)
	StepDuration *prometheus.HistogramVec

	// OutputStates and OutputArcs record the final size per job.
	// Labels: job
	OutputStates *prometheus.GaugeVec
	OutputArcs   *prometheus.GaugeVec

	// Regressions counts jobs whose stochastic inputs produced a
	// non-stochastic output.
	Regressions prometheus.Counter

	// Failures counts failed runs.
	// Labels: step
	Failures *prometheus.CounterVec
}

// NewMetrics creates and registers the stage metrics. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kaldi",
			Subsystem: "pipeline",
			Name:      "step_duration_seconds",
			Help:      "Duration of each graph-building step in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"step"}),
		OutputStates: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kaldi",
			Subsystem: "pipeline",
			Name:      "output_states",
			Help:      "States in the last output of a job",
		}, []string{"job"}),
		OutputArcs: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kaldi",
			Subsystem: "pipeline",
			Name:      "output_arcs",
			Help:      "Arcs in the last output of a job",
		}, []string{"job"}),
		Regressions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "kaldi",
			Subsystem: "pipeline",
			Name:      "stochasticity_regressions_total",
			Help:      "Jobs whose stochastic inputs produced a non-stochastic output",
		}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaldi",
			Subsystem: "pipeline",
			Name:      "failures_total",
			Help:      "Failed runs by step",
		}, []string{"step"}),
	}
}
