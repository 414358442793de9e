// SPDX-License-Identifier: MIT
// Package: builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng         = nil (pure unless seeded)
//   - weightFn    = constant One
//   - epsilonProb = 0 (no epsilon labels from random constructors)
//   - finalWeight = One

package builder

import (
	"math/rand"

	"github.com/mengqhui/kaldi/semiring"
)

// builderConfig aggregates all knobs used by constructors. It is passed by
// value to constructors.
type builderConfig struct {
	rng         *rand.Rand
	weightFn    WeightFn
	epsilonProb float64
	finalWeight semiring.Weight
}

// newBuilderConfig applies opts over the defaults, last option wins.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		weightFn:    ConstantWeightFn(0),
		finalWeight: 0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// weight draws one arc weight.
func (c builderConfig) weight() semiring.Weight { return c.weightFn(c.rng) }
