package relaxedplan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/relaxedplan"
	"github.com/katalvlaran/fsplanner/rpg"
	"github.com/katalvlaran/fsplanner/state"
)

func buildToyIndex(t *testing.T) *problem.Index {
	t.Helper()
	symbols := []problem.Symbol{{Name: "p", Predicate: true}, {Name: "q", Predicate: true}, {Name: "r", Predicate: true}}
	variables := []problem.Variable{
		{Symbol: 0, Domain: []problem.Value{0, 1}},
		{Symbol: 1, Domain: []problem.Value{0, 1}},
		{Symbol: 2, Domain: []problem.Value{0, 1}},
	}
	idx, err := problem.NewIndex(nil, nil, variables, symbols)
	require.NoError(t, err)
	return idx
}

// TestExtractor_SingleActionChain builds a two-layer RPG by hand: p is
// seeded true; q is achieved at layer 1 by "act-q" supported by p; r is
// achieved at layer 2 by "act-r" supported by q. cost_ff should count 2
// distinct actions, cost_hmax should be 2 (the deepest layer touched).
func TestExtractor_SingleActionChain(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{1, 0, 0}))
	bk := rpg.New(seed)

	pTrue, _ := idx.AtomTuple(0, 1)
	qTrue, _ := idx.AtomTuple(1, 1)
	rTrue, _ := idx.AtomTuple(2, 1)

	bk.Add(qTrue, csp.Support{HandlerID: "act-q", Tuples: []problem.TupleIdx{pTrue}})
	bk.AdvanceLayer()
	bk.Add(rTrue, csp.Support{HandlerID: "act-r", Tuples: []problem.TupleIdx{qTrue}})
	bk.AdvanceLayer()

	ex := relaxedplan.New(bk)
	ff, hmax, err := ex.Extract([]problem.TupleIdx{rTrue})
	require.NoError(t, err)
	require.Equal(t, 2, ff)
	require.Equal(t, 2, hmax)
}

// TestExtractor_SeedOnlyGoalCostsZero mirrors cost_ff()==0 when the goal
// cause is already a seed-layer tuple.
func TestExtractor_SeedOnlyGoalCostsZero(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{1, 0, 0}))
	bk := rpg.New(seed)
	pTrue, _ := idx.AtomTuple(0, 1)

	ex := relaxedplan.New(bk)
	ff, hmax, err := ex.Extract([]problem.TupleIdx{pTrue})
	require.NoError(t, err)
	require.Equal(t, 0, ff)
	require.Equal(t, 0, hmax)
}

// TestExtractor_SharedSupportCountedOnce exercises the never-revisit
// property: two goal causes achieved by the same action instance must
// only count that action once.
func TestExtractor_SharedSupportCountedOnce(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{0, 0, 0}))
	bk := rpg.New(seed)

	qTrue, _ := idx.AtomTuple(1, 1)
	rTrue, _ := idx.AtomTuple(2, 1)
	binding := fstrips.NewBinding(map[int]problem.Value{0: 7})
	bk.Add(qTrue, csp.Support{HandlerID: "act-both", Binding: binding})
	bk.Add(rTrue, csp.Support{HandlerID: "act-both", Binding: binding})
	bk.AdvanceLayer()

	ex := relaxedplan.New(bk)
	ff, hmax, err := ex.Extract([]problem.TupleIdx{qTrue, rTrue})
	require.NoError(t, err)
	require.Equal(t, 1, ff)
	require.Equal(t, 1, hmax)
}

func TestExtractor_UnsupportedTupleIsAnError(t *testing.T) {
	idx := buildToyIndex(t)
	seed := state.FromSeed(idx, state.New([]problem.Value{0, 0, 0}))
	bk := rpg.New(seed)
	qTrue, _ := idx.AtomTuple(1, 1)

	ex := relaxedplan.New(bk)
	_, _, err := ex.Extract([]problem.TupleIdx{qTrue})
	require.ErrorIs(t, err, relaxedplan.ErrUnsupportedTuple)
}
