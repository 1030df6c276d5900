// Package problem defines the immutable Problem Index: the catalogue of
// types, objects, state variables, and symbols a planning task is built
// from, plus the tuple index that maps logical tuples <symbol, args...> to
// dense non-negative integers (TupleIdx).
//
// An Index is constructed once, at planner start, by NewIndex, and is
// read-only thereafter: it holds no mutex because nothing mutates it again
// and the planner core is single-threaded (see the top-level package doc).
package problem

import "fmt"

// Value is a generic domain value: either an ObjectIdx (for object-typed
// state variables) or a small non-negative integer encoding a symbolic or
// numeric constant, depending on the variable's Domain.
type Value int

// ObjectIdx indexes into Index.objects.
type ObjectIdx int

// TypeIdx indexes into Index.types.
type TypeIdx int

// VariableIdx indexes into Index.variables.
type VariableIdx int

// SymbolIdx indexes into Index.symbols.
type SymbolIdx int

// TupleIdx is the dense integer encoding of a logical tuple
// <symbol, arg-values...>. Every atom reachable in any state corresponds
// to exactly one valid TupleIdx (§3 invariant).
type TupleIdx int

// Type is a named object type: an ordered, finite set of objects.
type Type struct {
	Name    string
	Objects []ObjectIdx
}

// Object is a planning-task constant of a given Type.
type Object struct {
	Name string
	Type TypeIdx
}

// Symbol is a predicate or function with a typed signature.
// ArgTypes has one entry per argument; Predicate symbols have an implicit
// boolean codomain; function symbols range over CodomainType.
type Symbol struct {
	Name         string
	ArgTypes     []TypeIdx
	Predicate    bool
	CodomainType TypeIdx // meaningless (ignored) when Predicate is true
}

// Variable is a state variable: a symbol applied to a fixed argument
// tuple, together with its finite domain of admissible values.
type Variable struct {
	Symbol SymbolIdx
	Args   []ObjectIdx
	Domain []Value
}

// Atom is a ground fact: a (variable, value) pair. GoalRelevant is a plain
// field: NewIndex does not set it and nothing in this module derives it
// from the goal formula, so it stays false unless a caller sets it.
type Atom struct {
	Var          VariableIdx
	Val          Value
	GoalRelevant bool
}

func (a Atom) String() string {
	return fmt.Sprintf("atom(var=%d, val=%d)", a.Var, a.Val)
}
