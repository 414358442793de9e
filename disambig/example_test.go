package disambig_test

import (
	"fmt"

	"github.com/mengqhui/kaldi/disambig"
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ExampleAddSelfLoops places #0 after the highest word label and loops it
// through a one-word grammar.
func ExampleAddSelfLoops() {
	g := fst.NewWithStart(semiring.Tropical)
	end := g.AddState()
	_ = g.AddArc(0, fst.Arc{ILabel: 7, OLabel: 7, NextState: end})
	_ = g.SetFinal(end, 0)

	syms, _ := disambig.After(disambig.HighestOutputLabel(g), 1)
	_ = disambig.AddSelfLoops(g, syms.Labels(), syms.Labels())
	fmt.Println(syms.Labels(), g.TotalArcs())
	// Output:
	// [8] 3
}
