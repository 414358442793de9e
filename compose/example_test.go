package compose_test

import (
	"fmt"

	"github.com/mengqhui/kaldi/builder"
	"github.com/mengqhui/kaldi/compose"
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// ExampleTableCompose maps a:b through b:c.
func ExampleTableCompose() {
	a := builder.MustBuild(semiring.Tropical, nil, builder.Linear([]fst.Label{1}, []fst.Label{2}))
	b := builder.MustBuild(semiring.Tropical, nil, builder.Linear([]fst.Label{2}, []fst.Label{3}))

	c, err := compose.TableCompose(a, b)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, arc := range c.ArcsView(c.Start()) {
		fmt.Printf("%d:%d\n", arc.ILabel, arc.OLabel)
	}
	// Output:
	// 1:3
}
