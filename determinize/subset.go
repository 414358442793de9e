// SPDX-License-Identifier: MIT
// Package: determinize
//
// subset.go - the table mapping normalized subsets to output states.

package determinize

import (
	"fmt"
	"strings"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
)

// subsetEntry is one stored subset. Members with the same (state, string)
// key share a bucket; weights are compared within delta.
type subsetEntry struct {
	weights []semiring.Weight
	id      fst.StateID
}

// subsetTable hashes subsets on their (state, string) pairs only, so
// subsets whose weights differ by rounding noise land in the same bucket.
type subsetTable struct {
	buckets map[string][]subsetEntry
	size    int
}

func newSubsetTable() *subsetTable {
	return &subsetTable{buckets: make(map[string][]subsetEntry)}
}

// subsetKey encodes the sorted (state, string) pairs of a subset.
func subsetKey(elems []element) string {
	b := make([]byte, 0, 8*len(elems))
	for _, e := range elems {
		s, str := uint32(e.state), uint32(e.str)
		b = append(b,
			byte(s), byte(s>>8), byte(s>>16), byte(s>>24),
			byte(str), byte(str>>8), byte(str>>16), byte(str>>24))
	}
	return string(b)
}

// find returns the output state of a stored subset equal to elems.
func (t *subsetTable) find(key string, elems []element, delta float64) (fst.StateID, bool) {
	for _, cand := range t.buckets[key] {
		if sameWeights(cand.weights, elems, delta) {
			return cand.id, true
		}
	}
	return fst.NoState, false
}

func (t *subsetTable) insert(key string, elems []element, id fst.StateID) {
	ws := make([]semiring.Weight, len(elems))
	for i, e := range elems {
		ws[i] = e.weight
	}
	t.buckets[key] = append(t.buckets[key], subsetEntry{weights: ws, id: id})
	t.size++
}

func sameWeights(ws []semiring.Weight, elems []element, delta float64) bool {
	for i, e := range elems {
		if !semiring.ApproxEqual(ws[i], e.weight, delta) {
			return false
		}
	}
	return true
}

// render formats a subset for diagnostics.
func (d *determinizer) render(elems []element) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%v/%.4g", e.state, d.strings.get(e.str), float64(e.weight))
	}
	b.WriteByte('}')
	return b.String()
}
