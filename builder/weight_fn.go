// SPDX-License-Identifier: MIT
// Package: builder
//
// weight_fn.go - arc weight generators.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/mengqhui/kaldi/semiring"
)

// WeightFn produces an arc weight from an optional RNG. It must be
// deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) semiring.Weight

// ConstantWeightFn always yields w.
func ConstantWeightFn(w semiring.Weight) WeightFn {
	return func(*rand.Rand) semiring.Weight { return w }
}

// UniformWeightFn samples costs uniformly in [min, max). Without an RNG it
// yields min. Panics if max < min.
func UniformWeightFn(min, max float64) WeightFn {
	if max < min {
		panic(fmt.Sprintf("UniformWeightFn: require min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) semiring.Weight {
		if rng == nil || max == min {
			return semiring.Weight(min)
		}
		return semiring.Weight(min + rng.Float64()*(max-min))
	}
}
