package rmeps_test

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/rmeps"
	"github.com/mengqhui/kaldi/semiring"
)

// ExampleRemoveEpsLocal folds a:ε ε:b into a:b.
func ExampleRemoveEpsLocal() {
	f := fst.NewWithStart(semiring.Tropical)
	f.AddStates(2)
	_ = f.AddArc(0, fst.Arc{ILabel: 1, OLabel: fst.Epsilon, Weight: 1, NextState: 1})
	_ = f.AddArc(1, fst.Arc{ILabel: fst.Epsilon, OLabel: 2, Weight: 2, NextState: 2})
	_ = f.SetFinal(2, 0)

	if err := rmeps.RemoveEpsLocal(f); err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, a := range f.ArcsView(f.Start()) {
		fmt.Printf("%d:%d/%g -> %d\n", a.ILabel, a.OLabel, float64(a.Weight), a.NextState)
	}
	fmt.Println(f.NumStates(), "states")
	// Output:
	// 1:2/3 -> 1
	// 2 states
}
