package stochastic_test

import (
	"fmt"
	"math"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
	"github.com/mengqhui/kaldi/stochastic"
)

// ExampleIsStochasticFst checks a coin flip in the log semiring.
func ExampleIsStochasticFst() {
	f := fst.NewWithStart(semiring.Log)
	end := f.AddState()
	_ = f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 1, Weight: semiring.Weight(math.Ln2), NextState: end})
	_ = f.AddArc(0, fst.Arc{ILabel: 2, OLabel: 2, Weight: semiring.Weight(math.Ln2), NextState: end})
	_ = f.SetFinal(end, 0)

	res, err := stochastic.IsStochasticFst(f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("stochastic=%v violations=%d\n", res.Stochastic, len(res.Violations))
	// Output:
	// stochastic=true violations=0
}
