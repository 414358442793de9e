package fst_test

import (
	"fmt"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ExampleFst builds the two-arc transducer a:x b:ε and prints its shape.
func ExampleFst() {
	f := fst.NewWithStart(semiring.Tropical)
	s1 := f.AddState()
	s2 := f.AddState()
	_ = f.AddArc(f.Start(), fst.Arc{ILabel: 1, OLabel: 24, Weight: 0.5, NextState: s1})
	_ = f.AddArc(s1, fst.Arc{ILabel: 2, OLabel: fst.Epsilon, Weight: 0, NextState: s2})
	_ = f.SetFinal(s2, 0)

	st := f.Stats()
	fmt.Printf("states=%d arcs=%d finals=%d oeps=%d\n", st.States, st.Arcs, st.FinalStates, st.OutputEpsilons)
	fmt.Println(f.Validate() == nil)
	// Output:
	// states=3 arcs=2 finals=1 oeps=1
	// true
}
