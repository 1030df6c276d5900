package fstrips

import (
	"fmt"

	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// Formula is the typed AST for functional-STRIPS preconditions and goals.
type Formula interface {
	// Eval reports whether the formula holds under binding b in state s.
	Eval(b Binding, s state.State, idx *problem.Index) bool

	// FreeVars collects every bound-variable slot referenced anywhere in
	// the formula into out.
	FreeVars(out map[int]struct{})

	// AllTerms returns every term appearing anywhere in the formula.
	AllTerms() []Term

	// AllAtoms returns every AtomicFormula reachable from this node, used
	// by the CSP builder to enumerate handler targets (§4.D).
	AllAtoms() []AtomicFormula

	// Bind materializes a partially/fully ground clone, identically to
	// Term.Bind. The receiver is never mutated.
	Bind(b Binding) Formula
}

// AtomicFormula is symbol(args...) holding when its state variable's value
// is 1 (true), optionally negated.
type AtomicFormula struct {
	Symbol  problem.SymbolIdx
	Args    []Term
	Negated bool
}

func (f AtomicFormula) Eval(b Binding, s state.State, idx *problem.Index) bool {
	nt := NestedTerm{Symbol: f.Symbol, Args: f.Args}
	val := nt.Eval(b, s, idx) == 1
	if f.Negated {
		return !val
	}
	return val
}

func (f AtomicFormula) FreeVars(out map[int]struct{}) {
	for _, a := range f.Args {
		a.FreeVars(out)
	}
}

func (f AtomicFormula) AllTerms() []Term {
	var out []Term
	for _, a := range f.Args {
		out = append(out, a.AllTerms()...)
	}
	return out
}

func (f AtomicFormula) AllAtoms() []AtomicFormula { return []AtomicFormula{f} }

func (f AtomicFormula) Bind(b Binding) Formula {
	args := make([]Term, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.Bind(b)
	}
	return AtomicFormula{Symbol: f.Symbol, Args: args, Negated: f.Negated}
}

// ComparisonFormula compares two terms with a relational operator (used
// for numeric fluents, kept separate from AtomicFormula since the
// left/right sides need not name a predicate symbol at all).
type ComparisonFormula struct {
	Op          CompareOperator
	Left, Right Term
}

// CompareOperator enumerates the supported relational operators.
type CompareOperator int

const (
	CmpEq CompareOperator = iota
	CmpNeq
	CmpLt
	CmpLeq
	CmpGt
	CmpGeq
)

func (f ComparisonFormula) Eval(b Binding, s state.State, idx *problem.Index) bool {
	l := f.Left.Eval(b, s, idx)
	r := f.Right.Eval(b, s, idx)
	switch f.Op {
	case CmpEq:
		return l == r
	case CmpNeq:
		return l != r
	case CmpLt:
		return l < r
	case CmpLeq:
		return l <= r
	case CmpGt:
		return l > r
	case CmpGeq:
		return l >= r
	default:
		panic(fmt.Sprintf("fstrips: unknown CompareOperator %d", f.Op))
	}
}

func (f ComparisonFormula) FreeVars(out map[int]struct{}) {
	f.Left.FreeVars(out)
	f.Right.FreeVars(out)
}

func (f ComparisonFormula) AllTerms() []Term {
	return append(f.Left.AllTerms(), f.Right.AllTerms()...)
}

func (f ComparisonFormula) AllAtoms() []AtomicFormula { return nil }

func (f ComparisonFormula) Bind(b Binding) Formula {
	return ComparisonFormula{Op: f.Op, Left: f.Left.Bind(b), Right: f.Right.Bind(b)}
}

// Conjunction is the logical AND of its conjuncts. An empty Conjunction is
// vacuously true (the identity element), matching the convention for an
// action with no precondition.
type Conjunction struct {
	Conjuncts []Formula
}

func (f Conjunction) Eval(b Binding, s state.State, idx *problem.Index) bool {
	for _, c := range f.Conjuncts {
		if !c.Eval(b, s, idx) {
			return false
		}
	}
	return true
}

func (f Conjunction) FreeVars(out map[int]struct{}) {
	for _, c := range f.Conjuncts {
		c.FreeVars(out)
	}
}

func (f Conjunction) AllTerms() []Term {
	var out []Term
	for _, c := range f.Conjuncts {
		out = append(out, c.AllTerms()...)
	}
	return out
}

func (f Conjunction) AllAtoms() []AtomicFormula {
	var out []AtomicFormula
	for _, c := range f.Conjuncts {
		out = append(out, c.AllAtoms()...)
	}
	return out
}

func (f Conjunction) Bind(b Binding) Formula {
	out := make([]Formula, len(f.Conjuncts))
	for i, c := range f.Conjuncts {
		out[i] = c.Bind(b)
	}
	return Conjunction{Conjuncts: out}
}

// Disjunction is the logical OR of its disjuncts. An empty Disjunction is
// vacuously false.
type Disjunction struct {
	Disjuncts []Formula
}

func (f Disjunction) Eval(b Binding, s state.State, idx *problem.Index) bool {
	for _, d := range f.Disjuncts {
		if d.Eval(b, s, idx) {
			return true
		}
	}
	return false
}

func (f Disjunction) FreeVars(out map[int]struct{}) {
	for _, d := range f.Disjuncts {
		d.FreeVars(out)
	}
}

func (f Disjunction) AllTerms() []Term {
	var out []Term
	for _, d := range f.Disjuncts {
		out = append(out, d.AllTerms()...)
	}
	return out
}

func (f Disjunction) AllAtoms() []AtomicFormula {
	var out []AtomicFormula
	for _, d := range f.Disjuncts {
		out = append(out, d.AllAtoms()...)
	}
	return out
}

func (f Disjunction) Bind(b Binding) Formula {
	out := make([]Formula, len(f.Disjuncts))
	for i, d := range f.Disjuncts {
		out[i] = d.Bind(b)
	}
	return Disjunction{Disjuncts: out}
}

// Existential introduces fresh bound-variable slots (one per Vars entry,
// listed in Slots, parallel to Vars) ranging over their declared type's
// objects, and is satisfied when Body holds for some assignment.
type Existential struct {
	Slots []int
	Vars  []problem.TypeIdx
	Body  Formula
}

func (f Existential) Eval(b Binding, s state.State, idx *problem.Index) bool {
	return f.search(0, b, s, idx)
}

func (f Existential) search(i int, b Binding, s state.State, idx *problem.Index) bool {
	if i == len(f.Slots) {
		return f.Body.Eval(b, s, idx)
	}
	for _, obj := range idx.ObjectsOfType(f.Vars[i]) {
		if f.search(i+1, b.With(f.Slots[i], problem.Value(obj)), s, idx) {
			return true
		}
	}
	return false
}

func (f Existential) FreeVars(out map[int]struct{}) {
	bound := map[int]struct{}{}
	for _, s := range f.Slots {
		bound[s] = struct{}{}
	}
	inner := map[int]struct{}{}
	f.Body.FreeVars(inner)
	for k := range inner {
		if _, isBound := bound[k]; !isBound {
			out[k] = struct{}{}
		}
	}
}

func (f Existential) AllTerms() []Term       { return f.Body.AllTerms() }
func (f Existential) AllAtoms() []AtomicFormula { return f.Body.AllAtoms() }

func (f Existential) Bind(b Binding) Formula {
	return Existential{Slots: f.Slots, Vars: f.Vars, Body: f.Body.Bind(b)}
}
