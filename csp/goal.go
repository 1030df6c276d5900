package csp

import (
	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// GoalHandler checks whether the goal formula is satisfied on a given
// RPG layer and, when it is, reports the set of tuples that make it
// true (the "causes" fed to the relaxed-plan extractor, §4.F). Grounded
// on original_source/src/constraints/gecode/handlers/formula_handler.cxx's
// FormulaCSPHandler, which plays the analogous role for an arbitrary
// (not necessarily per-effect) formula.
type GoalHandler struct {
	goal fstrips.Formula
	idx  *problem.Index
}

// NewGoalHandler builds a GoalHandler for goal, assumed fully ground
// (no free action parameters — a planning task's goal formula never
// carries unbound variables other than its own existentials).
func NewGoalHandler(goal fstrips.Formula, idx *problem.Index) *GoalHandler {
	return &GoalHandler{goal: goal, idx: idx}
}

// SatisfiedBySeed reports whether the goal already holds in the seed
// state — the evaluate() short-circuit of §4.G's pseudocode.
func (g *GoalHandler) SatisfiedBySeed(seed state.State) bool {
	return g.goal.Eval(fstrips.NewBinding(nil), seed, g.idx)
}

// Causes reports whether goal is satisfiable against layer and, if so,
// the tuples whose membership in layer make every positive atomic
// subformula of the goal hold. A goal with disjunctions or existentials
// may be satisfiable via more than one combination of atoms; Causes
// returns the first combination found, sufficient for the extractor's
// backward walk (the relaxed-plan heuristic is an estimate, not an
// admissible proof against every combination).
func (g *GoalHandler) Causes(layer *state.Layer) ([]problem.TupleIdx, bool) {
	return g.causes(g.goal, layer)
}

func (g *GoalHandler) causes(f fstrips.Formula, layer *state.Layer) ([]problem.TupleIdx, bool) {
	switch n := f.(type) {
	case fstrips.AtomicFormula:
		if n.Negated {
			return nil, true
		}
		args := make([]problem.Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = a.Eval(fstrips.NewBinding(nil), state.State{}, g.idx)
		}
		t := g.idx.ToIndexIfRegistered(n.Symbol, args)
		if t < 0 || !layer.Contains(t) {
			return nil, false
		}
		return []problem.TupleIdx{t}, true

	case fstrips.Conjunction:
		var out []problem.TupleIdx
		for _, c := range n.Conjuncts {
			cs, ok := g.causes(c, layer)
			if !ok {
				return nil, false
			}
			out = append(out, cs...)
		}
		return out, true

	case fstrips.Disjunction:
		for _, d := range n.Disjuncts {
			if cs, ok := g.causes(d, layer); ok {
				return cs, true
			}
		}
		return nil, false

	case fstrips.Existential:
		return g.existentialCauses(n, layer)

	default:
		// ComparisonFormula and anything else with no atom-level
		// representation: treated as a layer-independent precondition
		// the seed state must already have settled (§9 Open Question:
		// state constraint pruning is goal-time-only, never part of
		// per-layer CSP propagation).
		return nil, true
	}
}

func (g *GoalHandler) existentialCauses(ex fstrips.Existential, layer *state.Layer) ([]problem.TupleIdx, bool) {
	return g.existentialSearch(ex, 0, fstrips.NewBinding(nil), layer)
}

func (g *GoalHandler) existentialSearch(ex fstrips.Existential, i int, b fstrips.Binding, layer *state.Layer) ([]problem.TupleIdx, bool) {
	if i == len(ex.Slots) {
		bound := ex.Body.Bind(b)
		return g.causes(bound, layer)
	}
	for _, obj := range g.idx.ObjectsOfType(ex.Vars[i]) {
		if cs, ok := g.existentialSearch(ex, i+1, b.With(ex.Slots[i], problem.Value(obj)), layer); ok {
			return cs, true
		}
	}
	return nil, false
}
