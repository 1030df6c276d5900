package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

func TestState_HashIsPureFunctionOfValues(t *testing.T) {
	a := state.New([]problem.Value{1, 2, 3})
	b := state.New([]problem.Value{1, 2, 3})
	c := state.New([]problem.Value{1, 2, 4})

	require.Equal(t, a.Hash(), b.Hash())
	require.True(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), c.Hash())
	require.False(t, a.Equal(c))
}

func TestState_WithDoesNotMutateReceiver(t *testing.T) {
	a := state.New([]problem.Value{1, 2, 3})
	b := a.With(1, 99)

	require.EqualValues(t, 2, a.Get(1))
	require.EqualValues(t, 99, b.Get(1))
}

func TestState_KeyIsStableAcrossEqualStates(t *testing.T) {
	a := state.New([]problem.Value{5, 6})
	b := state.New([]problem.Value{5, 6})
	require.Equal(t, a.Key(), b.Key())
}

