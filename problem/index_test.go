package problem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/problem"
)

// buildBlocksWorld3 constructs the 3-block planning task from §8's
// end-to-end scenario: on(b1) ∈ {b2,b3,T}, on(b2) ∈ {b1,b3,T},
// on(b3) ∈ {b1,b2,T}, clear(bi) ∈ {false,true}.
func buildBlocksWorld3(t *testing.T) *problem.Index {
	t.Helper()

	const (
		typBlock problem.TypeIdx = iota
	)
	b1, b2, b3 := problem.ObjectIdx(0), problem.ObjectIdx(1), problem.ObjectIdx(2)
	table := problem.ObjectIdx(3)

	types := []problem.Type{
		{Name: "block", Objects: []problem.ObjectIdx{b1, b2, b3, table}},
	}
	objects := []problem.Object{
		{Name: "b1", Type: typBlock},
		{Name: "b2", Type: typBlock},
		{Name: "b3", Type: typBlock},
		{Name: "table", Type: typBlock},
	}
	symbols := []problem.Symbol{
		{Name: "on", ArgTypes: []problem.TypeIdx{typBlock}, Predicate: false, CodomainType: typBlock},
		{Name: "clear", ArgTypes: []problem.TypeIdx{typBlock}, Predicate: true},
	}
	const (
		symOn    problem.SymbolIdx = 0
		symClear problem.SymbolIdx = 1
	)

	variables := []problem.Variable{
		{Symbol: symOn, Args: []problem.ObjectIdx{b1}, Domain: []problem.Value{problem.Value(b2), problem.Value(b3), problem.Value(table)}},
		{Symbol: symOn, Args: []problem.ObjectIdx{b2}, Domain: []problem.Value{problem.Value(b1), problem.Value(b3), problem.Value(table)}},
		{Symbol: symOn, Args: []problem.ObjectIdx{b3}, Domain: []problem.Value{problem.Value(b1), problem.Value(b2), problem.Value(table)}},
		{Symbol: symClear, Args: []problem.ObjectIdx{b1}, Domain: []problem.Value{0, 1}},
		{Symbol: symClear, Args: []problem.ObjectIdx{b2}, Domain: []problem.Value{0, 1}},
		{Symbol: symClear, Args: []problem.ObjectIdx{b3}, Domain: []problem.Value{0, 1}},
	}

	idx, err := problem.NewIndex(types, objects, variables, symbols)
	require.NoError(t, err)
	return idx
}

func TestNewIndex_ArityMismatchRejected(t *testing.T) {
	symbols := []problem.Symbol{{Name: "on", ArgTypes: []problem.TypeIdx{0, 0}, Predicate: false}}
	variables := []problem.Variable{{Symbol: 0, Args: []problem.ObjectIdx{0}, Domain: []problem.Value{0}}}
	_, err := problem.NewIndex(nil, nil, variables, symbols)
	require.Error(t, err)
}

func TestTupleIndex_RoundTrip(t *testing.T) {
	idx := buildBlocksWorld3(t)

	// on(b2) = b3: a functional atom, tuple = <on, b2, b3>.
	tIdx := idx.ToIndex(0, []problem.Value{1, 2})
	sym, vals, err := idx.FromIndex(tIdx)
	require.NoError(t, err)
	require.EqualValues(t, 0, sym)
	require.Equal(t, []problem.Value{1, 2}, vals)

	// Re-interning the same tuple must return the same index (injective, stable).
	again := idx.ToIndex(0, []problem.Value{1, 2})
	require.Equal(t, tIdx, again)
}

func TestTupleIndex_FromIndexUnknown(t *testing.T) {
	idx := buildBlocksWorld3(t)
	_, _, err := idx.FromIndex(problem.TupleIdx(idx.NumTuples() + 100))
	require.ErrorIs(t, err, problem.ErrUnknownTuple)
}

func TestAtomTuple_BooleanFalseHasNoTuple(t *testing.T) {
	idx := buildBlocksWorld3(t)

	clearB1 := problem.VariableIdx(3)
	_, ok := idx.AtomTuple(clearB1, 0)
	require.False(t, ok, "clear(b1)=false must not register a reachable tuple")

	tIdx, ok := idx.AtomTuple(clearB1, 1)
	require.True(t, ok)
	sym, vals, err := idx.FromIndex(tIdx)
	require.NoError(t, err)
	require.EqualValues(t, 1, sym) // symClear
	// Predicate tuples key on their args only: the value is b1's object index.
	require.Equal(t, []problem.Value{0}, vals)
}

func TestIsPredicate(t *testing.T) {
	idx := buildBlocksWorld3(t)
	require.False(t, idx.IsPredicate(0)) // on/1 is functional
	require.True(t, idx.IsPredicate(1))  // clear/1 is a predicate
}

func TestVariableObjects(t *testing.T) {
	idx := buildBlocksWorld3(t)
	dom := idx.VariableObjects(0) // on(b1)
	require.Len(t, dom, 3)
}
