package problemio

import (
	"fmt"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
)

// paramSlot records an action parameter's assigned global slot and
// declared type, the unit fstrips.BoundVariable needs.
type paramSlot struct {
	slot int
	typ  problem.TypeIdx
}

func (b *builder) resolveAction(a actionDoc) (*fstrips.Action, error) {
	scope := map[string]paramSlot{}
	slots := make([]int, len(a.Params))
	types := make([]problem.TypeIdx, len(a.Params))
	for i, p := range a.Params {
		tIdx, ok := b.typeIdx[p.Type]
		if !ok {
			return nil, fmt.Errorf("problemio: action %q param %q references unknown type %q", a.Name, p.Name, p.Type)
		}
		slot := b.nextSlot
		b.nextSlot++
		if _, dup := scope[p.Name]; dup {
			return nil, fmt.Errorf("problemio: action %q declares parameter %q twice", a.Name, p.Name)
		}
		scope[p.Name] = paramSlot{slot: slot, typ: tIdx}
		slots[i] = slot
		types[i] = tIdx
	}

	precond, err := b.resolveConjunction(a.Precondition, scope)
	if err != nil {
		return nil, fmt.Errorf("problemio: action %q precondition: %w", a.Name, err)
	}

	effects := make([]fstrips.Effect, len(a.Effect))
	for i, e := range a.Effect {
		eff, err := b.resolveEffect(e, scope)
		if err != nil {
			return nil, fmt.Errorf("problemio: action %q effect %d: %w", a.Name, i, err)
		}
		effects[i] = eff
	}

	return &fstrips.Action{
		Name:         a.Name,
		ParamSlots:   slots,
		ParamTypes:   types,
		Precondition: precond,
		Effects:      effects,
	}, nil
}

// resolveConjunction builds a Conjunction (or the vacuously-true empty one)
// out of a list of atomDocs, in a given parameter scope.
func (b *builder) resolveConjunction(atoms []atomDoc, scope map[string]paramSlot) (fstrips.Formula, error) {
	conjuncts := make([]fstrips.Formula, 0, len(atoms))
	for _, a := range atoms {
		f, err := b.resolveAtom(a, scope)
		if err != nil {
			return nil, err
		}
		conjuncts = append(conjuncts, f)
	}
	return fstrips.Conjunction{Conjuncts: conjuncts}, nil
}

// resolveGoalConjunction is resolveConjunction specialized for the goal
// atom list (no enclosing action, so its scope is always empty — every
// arg must name a declared object).
func (b *builder) resolveGoalConjunction(atoms []atomDoc, scope map[string]paramSlot) (fstrips.Formula, error) {
	return b.resolveConjunction(atoms, scope)
}

func (b *builder) resolveAtom(a atomDoc, scope map[string]paramSlot) (fstrips.AtomicFormula, error) {
	s, ok := b.symbolIdx[a.Pred]
	if !ok {
		return fstrips.AtomicFormula{}, fmt.Errorf("unknown predicate %q", a.Pred)
	}
	args := make([]fstrips.Term, len(a.Args))
	for i, name := range a.Args {
		term, err := b.resolveTerm(name, scope)
		if err != nil {
			return fstrips.AtomicFormula{}, fmt.Errorf("predicate %q arg %d: %w", a.Pred, i, err)
		}
		args[i] = term
	}
	return fstrips.AtomicFormula{Symbol: s, Args: args, Negated: a.Not}, nil
}

// resolveTerm resolves a bare identifier to a BoundVariable (if it names a
// parameter in scope) or an ObjectConstant (if it names a declared
// object). Parameters shadow objects of the same name.
func (b *builder) resolveTerm(name string, scope map[string]paramSlot) (fstrips.Term, error) {
	if p, ok := scope[name]; ok {
		return fstrips.BoundVariable{Slot: p.slot, Type: p.typ}, nil
	}
	if o, ok := b.objectIdx[name]; ok {
		return fstrips.ObjectConstant{Obj: o}, nil
	}
	return nil, fmt.Errorf("identifier %q is neither a parameter nor a declared object", name)
}

func (b *builder) resolveEffect(e atomDoc, scope map[string]paramSlot) (fstrips.Effect, error) {
	s, ok := b.symbolIdx[e.Pred]
	if !ok {
		return fstrips.Effect{}, fmt.Errorf("unknown predicate %q", e.Pred)
	}
	args := make([]fstrips.Term, len(e.Args))
	for i, name := range e.Args {
		term, err := b.resolveTerm(name, scope)
		if err != nil {
			return fstrips.Effect{}, fmt.Errorf("predicate %q arg %d: %w", e.Pred, i, err)
		}
		args[i] = term
	}
	add := e.Value == nil || *e.Value
	lhs := fstrips.NestedTerm{Symbol: s, Args: args}
	val := problem.Value(0)
	if add {
		val = 1
	}
	return fstrips.Effect{
		LHS:    lhs,
		RHS:    fstrips.Constant{Val: val},
		Add:    add,
		Delete: !add,
	}, nil
}
