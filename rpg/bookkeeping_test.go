package rpg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/rpg"
	"github.com/katalvlaran/fsplanner/state"
)

func buildToyIndex(t *testing.T) *problem.Index {
	t.Helper()
	symbols := []problem.Symbol{{Name: "p", Predicate: true}, {Name: "q", Predicate: true}}
	variables := []problem.Variable{
		{Symbol: 0, Domain: []problem.Value{0, 1}},
		{Symbol: 1, Domain: []problem.Value{0, 1}},
	}
	idx, err := problem.NewIndex(nil, nil, variables, symbols)
	require.NoError(t, err)
	return idx
}

func TestBookkeeping_SeedIsReachedAtLayerZero(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{1, 0}))
	b := rpg.New(seed)

	pTrue, _ := idx.AtomTuple(0, 1)
	require.True(t, b.Reached(pTrue))
	rec, ok := b.SupportOf(pTrue)
	require.True(t, ok)
	require.Equal(t, 0, rec.FirstLayer)
	require.Empty(t, rec.Support.Tuples)
}

func TestBookkeeping_AddDiscardsAlreadyReached(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{1, 0}))
	b := rpg.New(seed)

	pTrue, _ := idx.AtomTuple(0, 1)
	require.False(t, b.Add(pTrue, csp.Support{}))
	require.Equal(t, 0, b.NumNovel())
}

func TestBookkeeping_AddAndAdvanceLayer(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{0, 0}))
	b := rpg.New(seed)

	qTrue, _ := idx.AtomTuple(1, 1)
	require.True(t, b.Add(qTrue, csp.Support{HandlerID: "h"}))
	require.Equal(t, 1, b.NumNovel())
	require.False(t, b.Reached(qTrue), "novel tuples are not reached until AdvanceLayer")

	b.AdvanceLayer()
	require.Equal(t, 1, b.CurrentLayer())
	require.True(t, b.Reached(qTrue))
	require.Equal(t, 0, b.NumNovel())

	rec, ok := b.SupportOf(qTrue)
	require.True(t, ok)
	require.Equal(t, 1, rec.FirstLayer)
}

func TestBookkeeping_AddPanicsOnUnreachedSupport(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{0, 0}))
	b := rpg.New(seed)

	pTrue, _ := idx.AtomTuple(0, 1)
	qTrue, _ := idx.AtomTuple(1, 1)
	require.Panics(t, func() {
		b.Add(qTrue, csp.Support{Tuples: []problem.TupleIdx{pTrue}})
	})
}

func TestBookkeeping_NovelSetDeduplicates(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{0, 0}))
	b := rpg.New(seed)

	qTrue, _ := idx.AtomTuple(1, 1)
	b.Add(qTrue, csp.Support{})
	b.Add(qTrue, csp.Support{}) // already novel, discarded
	require.Equal(t, 1, b.NumNovel())
}
