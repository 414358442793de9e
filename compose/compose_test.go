package compose_test

import (
	"context"
	"testing"

	"github.com/mengqhui/kaldi/builder"
	"github.com/mengqhui/kaldi/compose"
	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
	"github.com/mengqhui/kaldi/shortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type arc struct {
	from, to int
	i, o     fst.Label
	w        semiring.Weight
}

func build(t *testing.T, sr semiring.Semiring, n int, arcs []arc, finals map[int]semiring.Weight) *fst.Fst {
	t.Helper()
	f := fst.New(sr)
	f.AddStates(n)
	require.NoError(t, f.SetStart(0))
	for _, a := range arcs {
		require.NoError(t, f.AddArc(fst.StateID(a.from), fst.Arc{ILabel: a.i, OLabel: a.o, Weight: a.w, NextState: fst.StateID(a.to)}))
	}
	for s, w := range finals {
		require.NoError(t, f.SetFinal(fst.StateID(s), w))
	}
	return f
}

// requireIdentical compares two automata state by state.
func requireIdentical(t *testing.T, want, got *fst.Fst) {
	t.Helper()
	require.Equal(t, want.NumStates(), got.NumStates())
	require.Equal(t, want.Start(), got.Start())
	for s := 0; s < want.NumStates(); s++ {
		id := fst.StateID(s)
		assert.Equal(t, want.Arcs(id), got.Arcs(id), "state %d", s)
		assert.Equal(t, want.Final(id), got.Final(id), "state %d", s)
	}
}

// TestCompose_Simple chains 1:2 with 2:3.
func TestCompose_Simple(t *testing.T) {
	a := build(t, semiring.Tropical, 2, []arc{{from: 0, to: 1, i: 1, o: 2, w: 1}}, map[int]semiring.Weight{1: 0.5})
	b := build(t, semiring.Tropical, 2, []arc{{from: 0, to: 1, i: 2, o: 3, w: 2}}, map[int]semiring.Weight{1: 0.25})

	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, c.NumStates())
	assert.Equal(t, []fst.Arc{{ILabel: 1, OLabel: 3, Weight: 3, NextState: 1}}, c.Arcs(c.Start()))
	assert.Equal(t, semiring.Weight(0.75), c.Final(1))
}

// TestCompose_NoMatch yields the empty automaton after trimming.
func TestCompose_NoMatch(t *testing.T) {
	a := build(t, semiring.Tropical, 2, []arc{{from: 0, to: 1, i: 1, o: 2}}, map[int]semiring.Weight{1: 0})
	b := build(t, semiring.Tropical, 2, []arc{{from: 0, to: 1, i: 4, o: 3}}, map[int]semiring.Weight{1: 0})

	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumStates())

	c, err = compose.Compose(a, b, compose.WithConnect(false))
	require.NoError(t, err)
	assert.Equal(t, 1, c.NumStates())
}

// TestCompose_EpsilonSequencing produces one path, not one per
// interleaving, when both sides have epsilons; the log weight shows it.
func TestCompose_EpsilonSequencing(t *testing.T) {
	a := build(t, semiring.Log, 2, []arc{{from: 0, to: 1, i: 1, w: 1}}, map[int]semiring.Weight{1: 0})
	b := build(t, semiring.Log, 2, []arc{{from: 0, to: 1, o: 9, w: 2}}, map[int]semiring.Weight{1: 0})

	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.TotalArcs())
	w, err := shortest.PathWeight(c, []fst.Label{1}, []fst.Label{9})
	require.NoError(t, err)
	assert.InDelta(t, 3, float64(w), 1e-9)
}

// TestCompose_EpsilonBothSides sums a path through an A output epsilon
// and a B input epsilon at the same point.
func TestCompose_EpsilonBothSides(t *testing.T) {
	a := build(t, semiring.Log, 3, []arc{
		{from: 0, to: 1, i: 1, o: 5, w: 1},
		{from: 1, to: 2, i: 2, w: 1},
	}, map[int]semiring.Weight{2: 0})
	b := build(t, semiring.Log, 3, []arc{
		{from: 0, to: 1, i: 5, o: 6, w: 1},
		{from: 1, to: 2, o: 7, w: 1},
	}, map[int]semiring.Weight{2: 0})

	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	w, err := shortest.PathWeight(c, []fst.Label{1, 2}, []fst.Label{6, 7})
	require.NoError(t, err)
	assert.InDelta(t, 4, float64(w), 1e-9)
}

// TestTableCompose_HighDegree builds a table for the star hub and matches
// Compose exactly.
func TestTableCompose_HighDegree(t *testing.T) {
	a := builder.MustBuild(semiring.Tropical, []builder.Option{builder.WithWeightFn(builder.ConstantWeightFn(0.5))}, builder.Star(32))
	b := builder.MustBuild(semiring.Tropical, []builder.Option{builder.WithWeightFn(builder.ConstantWeightFn(0.25))}, builder.Star(32))

	want, err := compose.Compose(a, b)
	require.NoError(t, err)

	var stats compose.TableStats
	got, err := compose.TableCompose(a, b, compose.WithOnStats(func(s compose.TableStats) { stats = s }))
	require.NoError(t, err)
	requireIdentical(t, want, got)
	assert.Equal(t, 1, stats.Tables)
	assert.Equal(t, 1, stats.Fallbacks)
	assert.Equal(t, 32, got.NumArcs(got.Start()))
}

// TestTableCompose_LowDegree falls back everywhere and still matches.
func TestTableCompose_LowDegree(t *testing.T) {
	a := builder.MustBuild(semiring.Tropical, nil, builder.Linear([]fst.Label{1, 2, 3}, []fst.Label{4, 5, 6}))
	b := builder.MustBuild(semiring.Tropical, nil, builder.Linear([]fst.Label{4, 5, 6}, []fst.Label{7, 8, 9}))

	want, err := compose.Compose(a, b)
	require.NoError(t, err)
	var stats compose.TableStats
	got, err := compose.TableCompose(a, b, compose.WithOnStats(func(s compose.TableStats) { stats = s }))
	require.NoError(t, err)
	requireIdentical(t, want, got)
	assert.Equal(t, 0, stats.Tables)
	assert.Equal(t, 4, stats.Fallbacks)
	assert.Equal(t, 3, got.TotalArcs())
}

// TestTableCompose_Random compares both matchers on random acceptors,
// with tables forced onto every state.
func TestTableCompose_Random(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		opts := []builder.Option{
			builder.WithSeed(seed),
			builder.WithEpsilonProb(0.2),
			builder.WithWeightFn(builder.UniformWeightFn(0, 1)),
		}
		a := builder.MustBuild(semiring.Tropical, opts, builder.RandomSparse(10, 0.4, 4))
		b := builder.MustBuild(semiring.Tropical, opts, builder.RandomSparse(10, 0.5, 4))

		want, err := compose.Compose(a, b)
		require.NoError(t, err)
		got, err := compose.TableCompose(a, b, compose.WithMinTableSize(1), compose.WithTableRatio(0.01))
		require.NoError(t, err)
		requireIdentical(t, want, got)
	}
}

// TestCompose_UnsortedInput sorts a copy and leaves the input alone.
func TestCompose_UnsortedInput(t *testing.T) {
	a := build(t, semiring.Tropical, 2, []arc{
		{from: 0, to: 1, i: 1, o: 3, w: 1},
		{from: 0, to: 1, i: 2, o: 2, w: 2},
	}, map[int]semiring.Weight{1: 0})
	b := build(t, semiring.Tropical, 2, []arc{
		{from: 0, to: 1, i: 2, o: 2},
		{from: 0, to: 1, i: 3, o: 3},
	}, map[int]semiring.Weight{1: 0})
	before := a.Arcs(0)

	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, before, a.Arcs(0))
	assert.Equal(t, 2, c.NumArcs(c.Start()))
}

// TestCompose_Errors covers semiring mismatch, options and malformed input.
func TestCompose_Errors(t *testing.T) {
	a := fst.NewWithStart(semiring.Tropical)
	b := fst.NewWithStart(semiring.Log)
	_, err := compose.Compose(a, b)
	assert.ErrorIs(t, err, semiring.ErrMismatch)

	_, err = compose.TableCompose(a, a, compose.WithTableRatio(0))
	assert.ErrorIs(t, err, compose.ErrOptionViolation)
	_, err = compose.TableCompose(a, a, compose.WithMinTableSize(0))
	assert.ErrorIs(t, err, compose.ErrOptionViolation)

	_, err = compose.Compose(nil, a)
	assert.ErrorIs(t, err, fst.ErrMalformed)
}

// TestCompose_Canceled returns the partial product with ctx.Err().
func TestCompose_Canceled(t *testing.T) {
	a := builder.MustBuild(semiring.Tropical, nil, builder.Star(4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, err := compose.Compose(a, a, compose.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.NumStates())
}

// TestMatchers_Find checks both matchers on one state directly.
func TestMatchers_Find(t *testing.T) {
	f := builder.MustBuild(semiring.Tropical, nil, builder.Star(8))
	sm, err := compose.NewSortedMatcher(f)
	require.NoError(t, err)
	tm, err := compose.NewTableMatcher(f, compose.DefaultTableRatio, compose.DefaultMinTableSize)
	require.NoError(t, err)

	for _, m := range []compose.Matcher{sm, tm} {
		m.SetState(0)
		got := m.Find(5)
		require.Len(t, got, 1)
		assert.Equal(t, fst.Label(5), got[0].OLabel)
		assert.Empty(t, m.Find(0))
		assert.Empty(t, m.Find(99))
	}
	assert.Equal(t, compose.TableStats{Tables: 1}, tm.Stats())

	unsorted := fst.NewWithStart(semiring.Tropical)
	_ = unsorted.AddArc(0, fst.Arc{OLabel: 2, NextState: 0})
	_ = unsorted.AddArc(0, fst.Arc{OLabel: 1, NextState: 0})
	_, err = compose.NewSortedMatcher(unsorted)
	assert.ErrorIs(t, err, fst.ErrMalformed)
}
