// Package fstrips implements the typed AST for functional-STRIPS terms and
// formulas: goal formulas, action preconditions, and effects (§3, §4.C).
//
// Every node exposes FreeVars, AllTerms/AllAtoms, Bind (materializes a
// partially/fully ground clone; never mutates in place, mirroring the
// teacher's Clone()-on-write convention), and an Eval under a
// (Binding, state.State) pair. Evaluating a node against a Binding that
// does not type-check against its signature is a programmer error: it
// panics rather than returning an error, per §4.C's stated failure mode.
package fstrips

import (
	"fmt"

	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// Term is the typed AST for functional-STRIPS terms.
type Term interface {
	// Eval resolves the term to a concrete Value under binding b and
	// state s. Panics if a BoundVariable referenced by the term is
	// unbound in b (an incompatible binding, §4.C).
	Eval(b Binding, s state.State, idx *problem.Index) problem.Value

	// FreeVars collects every bound-variable slot referenced by this
	// term (and its subterms) into out.
	FreeVars(out map[int]struct{})

	// AllTerms returns this node and every subterm, in pre-order.
	AllTerms() []Term

	// Bind returns a new Term with every slot present in b's domain
	// replaced by a Constant; slots absent from b are left as
	// BoundVariable (a partial binding). The receiver is never mutated.
	Bind(b Binding) Term

	// Scope returns the state variables this term structurally touches:
	// a StateVariableRef reports its own variable, and a NestedTerm its own
	// variable (when its arguments are ground constants) plus its
	// arguments' scopes. IndirectScope applies it to the NestedTerm
	// subterms of a formula (§4.C "indirect_scope").
	Scope(idx *problem.Index) []problem.VariableIdx
}

// Constant is a ground literal value (a numeric or symbolic constant not
// drawn from an object's identity, e.g. an arithmetic literal).
type Constant struct {
	Val problem.Value
}

func (c Constant) Eval(Binding, state.State, *problem.Index) problem.Value { return c.Val }
func (c Constant) FreeVars(map[int]struct{})                               {}
func (c Constant) AllTerms() []Term                                        { return []Term{c} }
func (c Constant) Bind(Binding) Term                                       { return c }
func (c Constant) Scope(*problem.Index) []problem.VariableIdx              { return nil }

// ObjectConstant is a ground reference to a named planning-task object.
type ObjectConstant struct {
	Obj problem.ObjectIdx
}

func (o ObjectConstant) Eval(Binding, state.State, *problem.Index) problem.Value {
	return problem.Value(o.Obj)
}
func (o ObjectConstant) FreeVars(map[int]struct{})                  {}
func (o ObjectConstant) AllTerms() []Term                           { return []Term{o} }
func (o ObjectConstant) Bind(Binding) Term                          { return o }
func (o ObjectConstant) Scope(*problem.Index) []problem.VariableIdx { return nil }

// BoundVariable is a parameter or existential-quantifier placeholder,
// identified by a global slot id assigned when its owning Action/Formula
// was constructed.
type BoundVariable struct {
	Slot int
	Type problem.TypeIdx
}

func (v BoundVariable) Eval(b Binding, _ state.State, _ *problem.Index) problem.Value {
	val, ok := b.Get(v.Slot)
	if !ok {
		panic(fmt.Sprintf("fstrips: BoundVariable slot %d unbound at evaluation time", v.Slot))
	}
	return val
}
func (v BoundVariable) FreeVars(out map[int]struct{}) { out[v.Slot] = struct{}{} }
func (v BoundVariable) AllTerms() []Term              { return []Term{v} }
func (v BoundVariable) Bind(b Binding) Term {
	if val, ok := b.Get(v.Slot); ok {
		return Constant{Val: val}
	}
	return v
}
func (v BoundVariable) Scope(*problem.Index) []problem.VariableIdx { return nil }

// StateVariableRef is a direct, already-resolved reference to a specific
// ground state variable (the common case once an action schema has been
// fully grounded).
type StateVariableRef struct {
	Var problem.VariableIdx
}

func (r StateVariableRef) Eval(_ Binding, s state.State, _ *problem.Index) problem.Value {
	return s.Get(r.Var)
}
func (r StateVariableRef) FreeVars(map[int]struct{}) {}
func (r StateVariableRef) AllTerms() []Term          { return []Term{r} }
func (r StateVariableRef) Bind(Binding) Term         { return r }
func (r StateVariableRef) Scope(*problem.Index) []problem.VariableIdx {
	return []problem.VariableIdx{r.Var}
}

// NestedTerm applies a symbol to subterms that may themselves contain
// BoundVariables or further NestedTerms (a lifted or partially ground
// fluent application, e.g. loc(robot) or on(top(stack))).
type NestedTerm struct {
	Symbol problem.SymbolIdx
	Args   []Term
}

// Eval resolves every argument, looks up the resulting ground tuple's
// variable via idx, and reads its value in s. Panics (an invariant
// violation, §7) if the resolved argument tuple does not correspond to a
// declared state variable — this would mean a malformed term reached
// evaluation, a programmer error.
func (n NestedTerm) Eval(b Binding, s state.State, idx *problem.Index) problem.Value {
	args := make([]problem.ObjectIdx, len(n.Args))
	for i, a := range n.Args {
		args[i] = problem.ObjectIdx(a.Eval(b, s, idx))
	}
	v, ok := resolveVariable(idx, n.Symbol, args)
	if !ok {
		panic(fmt.Sprintf("fstrips: NestedTerm over symbol %d has no matching state variable for args %v", n.Symbol, args))
	}
	return s.Get(v)
}

func (n NestedTerm) FreeVars(out map[int]struct{}) {
	for _, a := range n.Args {
		a.FreeVars(out)
	}
}

func (n NestedTerm) AllTerms() []Term {
	out := []Term{n}
	for _, a := range n.Args {
		out = append(out, a.AllTerms()...)
	}
	return out
}

func (n NestedTerm) Bind(b Binding) Term {
	args := make([]Term, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.Bind(b)
	}
	return NestedTerm{Symbol: n.Symbol, Args: args}
}

// Scope reports every state variable this application structurally
// touches: its own variable (if its arguments resolve statically to a
// single ground tuple) plus the recursive scope of its arguments. When a
// NestedTerm shows up as a subterm of another term or formula's
// arguments, this is precisely the set of variables that must be known
// before the enclosing application can be evaluated — the indirect scope
// of §4.C.
func (n NestedTerm) Scope(idx *problem.Index) []problem.VariableIdx {
	var out []problem.VariableIdx
	directArgs := true
	args := make([]problem.ObjectIdx, len(n.Args))
	for i, a := range n.Args {
		out = append(out, a.Scope(idx)...)
		switch t := a.(type) {
		case ObjectConstant:
			args[i] = t.Obj
		case Constant:
			args[i] = problem.ObjectIdx(t.Val)
		default:
			directArgs = false
		}
	}
	if directArgs {
		if v, ok := resolveVariable(idx, n.Symbol, args); ok {
			out = append(out, v)
		}
	} else {
		// The application itself cannot be resolved by a static table
		// lookup; its enclosing CSP handler needs an indirection
		// variable for the whole symbol.
		out = append(out, variablesOfSymbol(idx, n.Symbol)...)
	}
	return out
}

// resolveVariable finds the VariableIdx for (symbol, args), if declared.
func resolveVariable(idx *problem.Index, symbol problem.SymbolIdx, args []problem.ObjectIdx) (problem.VariableIdx, bool) {
	for _, v := range idx.Variables() {
		variable := idx.Variable(v)
		if variable.Symbol != symbol || len(variable.Args) != len(args) {
			continue
		}
		match := true
		for i, a := range variable.Args {
			if a != args[i] {
				match = false
				break
			}
		}
		if match {
			return v, true
		}
	}
	return 0, false
}

func variablesOfSymbol(idx *problem.Index, symbol problem.SymbolIdx) []problem.VariableIdx {
	var out []problem.VariableIdx
	for _, v := range idx.Variables() {
		if idx.Variable(v).Symbol == symbol {
			out = append(out, v)
		}
	}
	return out
}

// ArithOp applies a binary arithmetic operator to two subterms.
type ArithOp struct {
	Op          ArithOperator
	Left, Right Term
}

// ArithOperator enumerates the supported arithmetic operators.
type ArithOperator int

const (
	OpAdd ArithOperator = iota
	OpSub
	OpMul
	OpDiv
)

func (a ArithOp) Eval(b Binding, s state.State, idx *problem.Index) problem.Value {
	l := int(a.Left.Eval(b, s, idx))
	r := int(a.Right.Eval(b, s, idx))
	switch a.Op {
	case OpAdd:
		return problem.Value(l + r)
	case OpSub:
		return problem.Value(l - r)
	case OpMul:
		return problem.Value(l * r)
	case OpDiv:
		if r == 0 {
			panic("fstrips: ArithOp division by zero")
		}
		return problem.Value(l / r)
	default:
		panic(fmt.Sprintf("fstrips: unknown ArithOperator %d", a.Op))
	}
}

func (a ArithOp) FreeVars(out map[int]struct{}) {
	a.Left.FreeVars(out)
	a.Right.FreeVars(out)
}

func (a ArithOp) AllTerms() []Term {
	out := []Term{a}
	out = append(out, a.Left.AllTerms()...)
	out = append(out, a.Right.AllTerms()...)
	return out
}

func (a ArithOp) Bind(b Binding) Term {
	return ArithOp{Op: a.Op, Left: a.Left.Bind(b), Right: a.Right.Bind(b)}
}

func (a ArithOp) Scope(idx *problem.Index) []problem.VariableIdx {
	return append(a.Left.Scope(idx), a.Right.Scope(idx)...)
}
