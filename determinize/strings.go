// SPDX-License-Identifier: MIT
// Package: determinize
//
// strings.go - interned residual output strings.

package determinize

import "github.com/mengqhui/kaldi/fst"

// stringID names an interned label sequence; 0 is the empty string.
type stringID int32

const emptyString stringID = 0

// stringRepo interns label sequences so subsets compare strings by id.
type stringRepo struct {
	seqs [][]fst.Label
	ids  map[string]stringID
}

func newStringRepo() *stringRepo {
	r := &stringRepo{ids: make(map[string]stringID)}
	r.intern(nil)
	return r
}

// intern returns the id of seq, storing a private copy when it is new.
func (r *stringRepo) intern(seq []fst.Label) stringID {
	key := labelsKey(seq)
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := stringID(len(r.seqs))
	r.seqs = append(r.seqs, append([]fst.Label(nil), seq...))
	r.ids[key] = id
	return id
}

func (r *stringRepo) get(id stringID) []fst.Label { return r.seqs[id] }

func (r *stringRepo) length(id stringID) int { return len(r.seqs[id]) }

// extend returns the id of seq(id) followed by l.
func (r *stringRepo) extend(id stringID, l fst.Label) stringID {
	base := r.seqs[id]
	seq := make([]fst.Label, len(base)+1)
	copy(seq, base)
	seq[len(base)] = l
	return r.intern(seq)
}

// suffix returns the id of seq(id) without its first n labels.
func (r *stringRepo) suffix(id stringID, n int) stringID {
	if n == 0 {
		return id
	}
	return r.intern(r.seqs[id][n:])
}

// labelsKey packs labels into a byte string, four bytes per label.
func labelsKey(seq []fst.Label) string {
	b := make([]byte, 0, 4*len(seq))
	for _, l := range seq {
		b = append(b, byte(l), byte(l>>8), byte(l>>16), byte(l>>24))
	}
	return string(b)
}
