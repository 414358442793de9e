package determinize_test

import (
	"testing"

	"github.com/mengqhui/kaldi/builder"
	"github.com/mengqhui/kaldi/determinize"
	"github.com/mengqhui/kaldi/semiring"
)

// BenchmarkDeterminizeStar_RandomSparse measures a 64-state random acceptor.
func BenchmarkDeterminizeStar_RandomSparse(b *testing.B) {
	f := builder.MustBuild(semiring.Tropical, []builder.Option{
		builder.WithSeed(42),
		builder.WithEpsilonProb(0.1),
		builder.WithWeightFn(builder.UniformWeightFn(0, 1)),
	}, builder.RandomSparse(64, 0.05, 8))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := determinize.DeterminizeStar(f); err != nil {
			b.Fatal(err)
		}
	}
}
