package fst_test

import (
	"math"
	"testing"

	"github.com/mengqhui/kaldi/fst"
	"github.com/mengqhui/kaldi/semiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Empty verifies an empty automaton has no states and no start.
func TestNew_Empty(t *testing.T) {
	f := fst.New(nil)
	assert.Equal(t, 0, f.NumStates())
	assert.Equal(t, fst.NoState, f.Start())
	assert.True(t, semiring.Same(f.Semiring(), semiring.Tropical), "nil semiring defaults to tropical")
	assert.NoError(t, f.Validate(), "empty automaton is valid")
}

// TestNewWithStart verifies the single start state is non-final.
func TestNewWithStart(t *testing.T) {
	f := fst.NewWithStart(semiring.Log)
	require.Equal(t, 1, f.NumStates())
	assert.Equal(t, fst.StateID(0), f.Start())
	assert.False(t, f.IsFinal(0))
	assert.True(t, f.Final(0).IsZero())
}

// TestAddState_StableIndices checks that indices are dense and never move.
func TestAddState_StableIndices(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	a := f.AddState()
	b := f.AddState()
	first := f.AddStates(3)
	assert.Equal(t, fst.StateID(1), a)
	assert.Equal(t, fst.StateID(2), b)
	assert.Equal(t, fst.StateID(3), first)
	assert.Equal(t, 6, f.NumStates())
}

// TestAddArc_Errors covers both endpoint checks.
func TestAddArc_Errors(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	err := f.AddArc(5, fst.Arc{NextState: 0})
	assert.ErrorIs(t, err, fst.ErrStateOutOfRange)
	err = f.AddArc(0, fst.Arc{NextState: 9})
	assert.ErrorIs(t, err, fst.ErrStateOutOfRange)
	assert.ErrorIs(t, f.SetFinal(3, 0), fst.ErrStateOutOfRange)
	assert.ErrorIs(t, f.SetStart(3), fst.ErrStateOutOfRange)
	assert.ErrorIs(t, f.DeleteArcs(3), fst.ErrStateOutOfRange)
}

// TestArcs_StableOrderAndCopy checks order and that Arcs returns a copy.
func TestArcs_StableOrderAndCopy(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	s1 := f.AddState()
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 3, OLabel: 3, Weight: 1, NextState: s1}))
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 2, Weight: 2, NextState: s1}))

	arcs := f.Arcs(0)
	require.Len(t, arcs, 2)
	assert.Equal(t, fst.Label(3), arcs[0].ILabel)
	assert.Equal(t, fst.Label(1), arcs[1].ILabel)

	arcs[0].ILabel = 99
	assert.Equal(t, fst.Label(3), f.Arcs(0)[0].ILabel, "Arcs must return a copy")
	assert.Equal(t, 2, f.NumArcs(0))
	assert.Equal(t, 2, f.TotalArcs())
}

// TestMutateArcs rewrites arcs in place.
func TestMutateArcs(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	s1 := f.AddState()
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 4, OLabel: 5, NextState: s1}))
	require.NoError(t, f.MutateArcs(0, func(_ int, a *fst.Arc) { a.ILabel = fst.Epsilon }))
	assert.Equal(t, fst.Epsilon, f.Arcs(0)[0].ILabel)
	assert.Equal(t, 1, f.NumInputEpsilons(0))
	assert.Equal(t, 0, f.NumOutputEpsilons(0))
}

// TestSetArcs rejects dangling destinations.
func TestSetArcs(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	err := f.SetArcs(0, []fst.Arc{{NextState: 4}})
	assert.ErrorIs(t, err, fst.ErrStateOutOfRange)
	require.NoError(t, f.SetArcs(0, []fst.Arc{{ILabel: 1, NextState: 0}}))
	assert.Equal(t, 1, f.NumArcs(0))
}

// TestClone_Independent verifies deep copying of arcs and finals.
func TestClone_Independent(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 1, NextState: 0}))
	c := f.Clone()
	require.NoError(t, c.SetFinal(0, 0))
	require.NoError(t, c.AddArc(0, fst.Arc{ILabel: 2, OLabel: 2, NextState: 0}))

	assert.False(t, f.IsFinal(0))
	assert.Equal(t, 1, f.NumArcs(0))
	assert.Equal(t, 2, c.NumArcs(0))
}

// TestValidate covers every malformed shape.
func TestValidate(t *testing.T) {
	var nilFst *fst.Fst
	assert.ErrorIs(t, fst.Check(nilFst), fst.ErrNilFst)
	assert.ErrorIs(t, fst.Check(nilFst), fst.ErrMalformed)

	noStart := fst.New(semiring.Tropical)
	noStart.AddState()
	err := noStart.Validate()
	assert.ErrorIs(t, err, fst.ErrMalformed)
	assert.ErrorIs(t, err, fst.ErrNoStart)

	dangling := fst.NewWithStart(semiring.Tropical)
	s1 := dangling.AddState()
	require.NoError(t, dangling.AddArc(0, fst.Arc{NextState: s1}))
	require.NoError(t, dangling.MutateArcs(0, func(_ int, a *fst.Arc) { a.NextState = 7 }))
	err = dangling.Validate()
	assert.ErrorIs(t, err, fst.ErrMalformed)
	assert.ErrorIs(t, err, fst.ErrDanglingArc)
}

// TestStats counts finals and epsilons.
func TestStats(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	s1 := f.AddState()
	require.NoError(t, f.SetFinal(s1, 0))
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 0, OLabel: 2, NextState: s1}))
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 0, NextState: s1}))

	st := f.Stats()
	assert.Equal(t, fst.Stats{States: 2, Arcs: 2, FinalStates: 1, InputEpsilons: 1, OutputEpsilons: 1}, st)
	assert.Equal(t, []int{0, 2}, f.InDegrees())
}

// TestIsDeterministic treats epsilon as an ordinary label.
func TestIsDeterministic(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	s1 := f.AddState()
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 0, NextState: s1}))
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 1, NextState: s1}))
	assert.True(t, f.IsDeterministic())

	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 0, OLabel: 3, NextState: 0}))
	assert.False(t, f.IsDeterministic(), "two epsilon arcs from one state")
}

// TestArcSort orders by the requested key.
func TestArcSort(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	for _, l := range []fst.Label{5, 2, 9, 2} {
		require.NoError(t, f.AddArc(0, fst.Arc{ILabel: l, OLabel: 10 - l, NextState: 0}))
	}
	assert.False(t, f.IsSorted(fst.ByInput))

	f.ArcSort(fst.ByInput)
	assert.True(t, f.IsSorted(fst.ByInput))
	assert.False(t, f.IsSorted(fst.ByOutput))

	f.ArcSort(fst.ByOutput)
	assert.True(t, f.IsSorted(fst.ByOutput))
	assert.Equal(t, fst.Label(1), f.Arcs(0)[0].OLabel)
}

// TestCast reinterprets weights and refuses non-members.
func TestCast(t *testing.T) {
	f := fst.NewWithStart(semiring.Tropical)
	require.NoError(t, f.AddArc(0, fst.Arc{ILabel: 1, OLabel: 1, Weight: 0.25, NextState: 0}))
	require.NoError(t, f.SetFinal(0, 1))

	l, err := fst.Cast(f, semiring.Log)
	require.NoError(t, err)
	assert.True(t, semiring.Same(l.Semiring(), semiring.Log))
	assert.Equal(t, semiring.Weight(0.25), l.Arcs(0)[0].Weight)
	assert.Equal(t, semiring.Weight(1), l.Final(0))
	assert.True(t, semiring.Same(f.Semiring(), semiring.Tropical), "input untouched")

	require.NoError(t, f.MutateArcs(0, func(_ int, a *fst.Arc) { a.Weight = semiring.Weight(math.NaN()) }))
	_, err = fst.Cast(f, semiring.Log)
	assert.ErrorIs(t, err, semiring.ErrMismatch)
}
