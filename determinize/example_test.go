package determinize_test

import (
	"fmt"

	"github.com/mengqhui/kaldi/determinize"
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ExampleDeterminizeStar determinizes a transducer whose epsilon arcs owe
// output labels; the owed labels come out as a chain.
func ExampleDeterminizeStar() {
	f := fst.NewWithStart(semiring.Tropical)
	f.AddStates(4)
	_ = f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 5, Weight: 1, NextState: 1})
	_ = f.AddArc(1, fst.Arc{ILabel: 0, OLabel: 6, NextState: 2})
	_ = f.AddArc(2, fst.Arc{ILabel: 0, OLabel: 7, NextState: 3})
	_ = f.AddArc(3, fst.Arc{ILabel: 2, OLabel: 8, NextState: 4})
	_ = f.SetFinal(4, 0)

	out, err := determinize.DeterminizeStar(f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for s := 0; s < out.NumStates(); s++ {
		for _, a := range out.ArcsView(fst.StateID(s)) {
			fmt.Printf("%d -%d:%d/%g-> %d\n", s, a.ILabel, a.OLabel, float64(a.Weight), a.NextState)
		}
	}
	// Output:
	// 0 -1:5/1-> 1
	// 1 -2:6/0-> 3
	// 3 -0:7/0-> 4
	// 4 -0:8/0-> 2
}
