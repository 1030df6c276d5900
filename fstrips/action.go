package fstrips

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// Effect is a single conditional or unconditional action effect: when
// Condition holds, LHS is assigned the value of RHS. Predicative effects
// (§3) are the common case, where LHS is a predicate's AtomicFormula-like
// application and RHS is the literal true/false (Add/Delete flags carried
// separately for callers that want the STRIPS add/delete-list view without
// re-deriving it from RHS).
type Effect struct {
	Condition Formula // nil means unconditional
	LHS       NestedTerm
	RHS       Term
	Add       bool // RHS evaluates to true (predicate turned on)
	Delete    bool // RHS evaluates to false (predicate turned off)
}

// Applicable reports whether this effect fires under (b, s).
func (e Effect) Applicable(b Binding, s state.State, idx *problem.Index) bool {
	if e.Condition == nil {
		return true
	}
	return e.Condition.Eval(b, s, idx)
}

// Action is a lifted action schema: a name, typed parameters (each
// assigned a global slot id so nested quantifiers in Precondition never
// collide with them), a precondition formula, and a list of effects.
type Action struct {
	Name         string
	ParamSlots   []int
	ParamTypes   []problem.TypeIdx
	Precondition Formula
	Effects      []Effect
}

// Grounding enumerates every full Binding of this action's parameters
// consistent with the problem's objects (the naive, unfiltered grounding;
// search.GroundedModel filters it by IsApplicable, while each csp.Handler
// enumerates its own parameter domains instead of using it).
func (a Action) Grounding(idx *problem.Index) []Binding {
	return a.groundFrom(0, NewBinding(nil), idx)
}

func (a Action) groundFrom(i int, b Binding, idx *problem.Index) []Binding {
	if i == len(a.ParamSlots) {
		return []Binding{b}
	}
	var out []Binding
	for _, obj := range idx.ObjectsOfType(a.ParamTypes[i]) {
		out = append(out, a.groundFrom(i+1, b.With(a.ParamSlots[i], problem.Value(obj)), idx)...)
	}
	return out
}

// ActionInstance is an Action paired with a (possibly partial) Binding of
// its parameters: the unit of work the search layer applies to a State.
type ActionInstance struct {
	Action  *Action
	Binding Binding
}

// Name returns a human-readable, fully or partially ground action name,
// e.g. "move(a, b)".
func (ai ActionInstance) Name(idx *problem.Index) string {
	args := make([]string, 0, len(ai.Action.ParamSlots))
	for i, slot := range ai.Action.ParamSlots {
		if v, ok := ai.Binding.Get(slot); ok {
			args = append(args, idx.Object(problem.ObjectIdx(v)).Name)
		} else {
			args = append(args, fmt.Sprintf("?%d", i))
		}
	}
	return fmt.Sprintf("%s(%s)", ai.Action.Name, strings.Join(args, ", "))
}

// IsApplicable reports whether this (fully ground) instance's
// precondition holds in s.
func (ai ActionInstance) IsApplicable(s state.State, idx *problem.Index) bool {
	return ai.Action.Precondition.Eval(ai.Binding, s, idx)
}

// Apply returns the successor state obtained by firing every effect whose
// condition holds in s, under ai.Binding. Effects are applied against the
// pre-effect state (STRIPS semantics: no effect observes another effect's
// write within the same action).
func (ai ActionInstance) Apply(s state.State, idx *problem.Index) state.State {
	next := s
	for _, e := range ai.Action.Effects {
		if !e.Applicable(ai.Binding, s, idx) {
			continue
		}
		args := make([]problem.ObjectIdx, len(e.LHS.Args))
		for i, a := range e.LHS.Args {
			args[i] = problem.ObjectIdx(a.Eval(ai.Binding, s, idx))
		}
		v, ok := resolveVariable(idx, e.LHS.Symbol, args)
		if !ok {
			panic(fmt.Sprintf("fstrips: effect targets undeclared state variable for symbol %d", e.LHS.Symbol))
		}
		next = next.With(v, e.RHS.Eval(ai.Binding, s, idx))
	}
	return next
}
