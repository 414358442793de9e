// Package kaldi is an in-memory toolkit of weighted finite-state
// transducer algorithms used to build speech-recognition decoding graphs.
//
// What is in the module?
//
//	A pure-Go library whose packages cover one concern each:
//		• semiring/    – tropical and log weights, approximate equality, casts
//		• fst/         – the mutable automaton, symbol tables, sorting, trimming
//		• shortest/    – shortest distance and path weights in either semiring
//		• determinize/ – epsilon closure and DeterminizeStar (plus a log variant)
//		• rmeps/       – local epsilon removal, with a log-sum preserving mode
//		• stochastic/  – per-state sum checks and drift detection
//		• compose/     – composition with a sorted or a table matcher
//		• disambig/    – disambiguation symbol ranges, self loops, relabeling
//		• builder/     – deterministic and seeded fixture automata
//		• pipeline/    – compose → determinize → shrink stage with YAML config,
//		                 slog logging, Prometheus metrics and concurrent jobs
//
// Weights are costs (negated log probabilities): Zero is +Inf, One is 0.
// Automata are not safe for concurrent mutation; pipeline jobs each own
// their automata.
//
// Quick example:
//
//	   0 --1:10/0.69--> 1 (final)
//	   0 --2:10/0.69--> 1
//
//	composed with
//
//	   0 --10:20/0--> 1 (final)
//
//	rep, err := stage.Run(ctx, pipeline.Job{Name: "coin", Left: left, Right: right})
//	// rep.Output is deterministic with two arcs and rep.After.Stochastic is true.
//
// See examples/ for runnable scenarios.
package kaldi
