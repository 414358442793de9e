// SPDX-License-Identifier: MIT
// Package: builder
//
// options.go - functional options. Option constructors panic on meaningless
// values; constructors themselves never panic.

package builder

import (
	"math/rand"

	"github.com/mengqhui/kaldi/semiring"
)

// Option customizes the builder configuration.
type Option func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG for reproducible fixtures.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn overrides the arc weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}

// WithEpsilonProb makes random constructors emit epsilon labels with
// probability p. Panics outside [0,1].
func WithEpsilonProb(p float64) Option {
	if p < 0 || p > 1 {
		panic("builder: WithEpsilonProb(p∉[0,1])")
	}
	return func(c *builderConfig) { c.epsilonProb = p }
}

// WithFinalWeight sets the final weight constructors give their final states.
func WithFinalWeight(w semiring.Weight) Option {
	return func(c *builderConfig) { c.finalWeight = w }
}
