package fstrips_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// buildBlocksWorld3 mirrors problem_test's fixture of the same name: three
// blocks plus a table, on/1 functional and clear/1 predicate. It adds a
// second type (TypeIdx 1) holding the three blocks without the table, for
// quantifiers over clear/1, which has no variable for the table.
func buildBlocksWorld3(t *testing.T) (*problem.Index, problem.ObjectIdx, problem.ObjectIdx, problem.ObjectIdx, problem.ObjectIdx) {
	t.Helper()

	const typBlock problem.TypeIdx = 0
	b1, b2, b3 := problem.ObjectIdx(0), problem.ObjectIdx(1), problem.ObjectIdx(2)
	table := problem.ObjectIdx(3)

	types := []problem.Type{
		{Name: "block", Objects: []problem.ObjectIdx{b1, b2, b3, table}},
		{Name: "movable", Objects: []problem.ObjectIdx{b1, b2, b3}},
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
	return idx, b1, b2, b3, table
}

func TestBoundVariable_PanicsWhenUnbound(t *testing.T) {
	v := fstrips.BoundVariable{Slot: 7}
	require.Panics(t, func() {
		v.Eval(fstrips.NewBinding(nil), state.New(nil), nil)
	})
}

func TestNestedTerm_EvalReadsStateVariable(t *testing.T) {
	idx, b1, b2, b3, table := buildBlocksWorld3(t)
	_ = b3
	_ = table
	// state: on(b1) = b2
	s := state.New([]problem.Value{problem.Value(b2), problem.Value(table), problem.Value(table), 1, 0, 0})

	nt := fstrips.NestedTerm{Symbol: 0, Args: []fstrips.Term{fstrips.ObjectConstant{Obj: b1}}}
	got := nt.Eval(fstrips.NewBinding(nil), s, idx)
	require.EqualValues(t, b2, got)
}

func TestAtomicFormula_NegationAndEval(t *testing.T) {
	idx, b1, _, _, _ := buildBlocksWorld3(t)
	s := state.New([]problem.Value{0, 0, 0, 1, 0, 0}) // clear(b1) = true

	f := fstrips.AtomicFormula{Symbol: 1, Args: []fstrips.Term{fstrips.ObjectConstant{Obj: b1}}}
	require.True(t, f.Eval(fstrips.NewBinding(nil), s, idx))

	neg := fstrips.AtomicFormula{Symbol: 1, Args: []fstrips.Term{fstrips.ObjectConstant{Obj: b1}}, Negated: true}
	require.False(t, neg.Eval(fstrips.NewBinding(nil), s, idx))
}

func TestConjunction_EmptyIsVacuouslyTrue(t *testing.T) {
	c := fstrips.Conjunction{}
	require.True(t, c.Eval(fstrips.NewBinding(nil), state.New(nil), nil))
}

func TestDisjunction_EmptyIsVacuouslyFalse(t *testing.T) {
	d := fstrips.Disjunction{}
	require.False(t, d.Eval(fstrips.NewBinding(nil), state.New(nil), nil))
}

func TestExistential_FindsSatisfyingAssignment(t *testing.T) {
	idx, b1, b2, _, _ := buildBlocksWorld3(t)
	_ = b2
	s := state.New([]problem.Value{0, 0, 0, 1, 0, 0}) // clear(b1) = true only

	ex := fstrips.Existential{
		Slots: []int{0},
		Vars:  []problem.TypeIdx{1},
		Body: fstrips.AtomicFormula{
			Symbol: 1,
			Args:   []fstrips.Term{fstrips.BoundVariable{Slot: 0, Type: 1}},
		},
	}
	require.True(t, ex.Eval(fstrips.NewBinding(nil), s, idx))

	sNone := state.New([]problem.Value{0, 0, 0, 0, 0, 0})
	require.False(t, ex.Eval(fstrips.NewBinding(nil), sNone, idx))
	_ = b1
}

func TestAction_GroundingEnumeratesAllParamAssignments(t *testing.T) {
	idx, _, _, _, _ := buildBlocksWorld3(t)
	a := fstrips.Action{Name: "clear-all", ParamSlots: []int{0}, ParamTypes: []problem.TypeIdx{0}}
	groundings := a.Grounding(idx)
	require.Len(t, groundings, 4) // b1, b2, b3, table
}

func TestActionInstance_ApplyWritesEffectsWithoutMutatingPreState(t *testing.T) {
	idx, b1, b2, _, table := buildBlocksWorld3(t)
	s := state.New([]problem.Value{problem.Value(table), problem.Value(table), problem.Value(table), 1, 1, 1})

	// move(b1, b2): precondition clear(b1) & clear(b2); effect on(b1) := b2,
	// clear(b2) := false.
	action := &fstrips.Action{
		Name:       "move",
		ParamSlots: []int{0, 1},
		ParamTypes: []problem.TypeIdx{0, 0},
		Precondition: fstrips.Conjunction{Conjuncts: []fstrips.Formula{
			fstrips.AtomicFormula{Symbol: 1, Args: []fstrips.Term{fstrips.BoundVariable{Slot: 0}}},
			fstrips.AtomicFormula{Symbol: 1, Args: []fstrips.Term{fstrips.BoundVariable{Slot: 1}}},
		}},
		Effects: []fstrips.Effect{
			{LHS: fstrips.NestedTerm{Symbol: 0, Args: []fstrips.Term{fstrips.BoundVariable{Slot: 0}}}, RHS: fstrips.BoundVariable{Slot: 1}},
			{LHS: fstrips.NestedTerm{Symbol: 1, Args: []fstrips.Term{fstrips.BoundVariable{Slot: 1}}}, RHS: fstrips.Constant{Val: 0}, Delete: true},
		},
	}
	ai := fstrips.ActionInstance{Action: action, Binding: fstrips.NewBinding(map[int]problem.Value{0: problem.Value(b1), 1: problem.Value(b2)})}

	require.True(t, ai.IsApplicable(s, idx))
	next := ai.Apply(s, idx)
	require.EqualValues(t, b2, next.Get(0))  // on(b1) = b2
	require.EqualValues(t, 0, next.Get(4))   // clear(b2) = false
	require.EqualValues(t, 1, s.Get(4), "pre-state must be untouched")
	_ = table
}

func TestIndirectScope_FlagsNestedArgumentsOnly(t *testing.T) {
	idx, b1, _, _, _ := buildBlocksWorld3(t)

	direct := fstrips.AtomicFormula{Symbol: 1, Args: []fstrips.Term{fstrips.ObjectConstant{Obj: b1}}}
	require.Empty(t, fstrips.IndirectScope(direct, idx))

	indirect := fstrips.AtomicFormula{
		Symbol: 1,
		Args:   []fstrips.Term{fstrips.NestedTerm{Symbol: 0, Args: []fstrips.Term{fstrips.ObjectConstant{Obj: b1}}}},
	}
	require.NotEmpty(t, fstrips.IndirectScope(indirect, idx))
}
