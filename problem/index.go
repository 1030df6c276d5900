package problem

import "fmt"

// Index is the immutable, shared Problem Index (§3, §4.A): the ordered
// catalogue of types, objects, state variables, and symbols, plus the
// tuple ↔ TupleIdx bijection. It is built once by NewIndex and never
// mutated again; every CSP handler, the heuristic driver, and the search
// harness hold the same *Index by reference (§5).
type Index struct {
	types     []Type
	objects   []Object
	variables []Variable
	symbols   []Symbol

	tuples *tupleTable

	// atomTuple[var][domain-position] = TupleIdx, or -1 when the atom
	// (e.g. a boolean "false") has no corresponding reachable tuple.
	atomTuple [][]TupleIdx
}

// NewIndex builds a Problem Index from its four catalogues and exhaustively
// enumerates the tuple bijection over every variable's domain. Construction
// is O(sum of variable domain sizes); thereafter Index is read-only.
func NewIndex(types []Type, objects []Object, variables []Variable, symbols []Symbol) (*Index, error) {
	idx := &Index{
		types:     types,
		objects:   objects,
		variables: variables,
		symbols:   symbols,
		tuples:    newTupleTable(),
	}

	idx.atomTuple = make([][]TupleIdx, len(variables))
	for v, variable := range variables {
		if int(variable.Symbol) < 0 || int(variable.Symbol) >= len(symbols) {
			return nil, fmt.Errorf("problem: variable %d references unknown symbol %d", v, variable.Symbol)
		}
		sym := symbols[variable.Symbol]
		if len(variable.Args) != len(sym.ArgTypes) {
			return nil, fmt.Errorf("problem: variable %d arity mismatch: symbol %q expects %d args, got %d",
				v, sym.Name, len(sym.ArgTypes), len(variable.Args))
		}

		row := make([]TupleIdx, len(variable.Domain))
		for pos, val := range variable.Domain {
			if sym.Predicate {
				// A boolean variable's "true" value (by convention, Value(1))
				// is the only one with a corresponding ground tuple; "false"
				// is never reached in the delete relaxation.
				if val == 1 {
					row[pos] = idx.tuples.intern(variable.Symbol, objArgsToValues(variable.Args))
				} else {
					row[pos] = -1
				}
				continue
			}
			values := append(append([]Value(nil), objArgsToValues(variable.Args)...), val)
			row[pos] = idx.tuples.intern(variable.Symbol, values)
		}
		idx.atomTuple[v] = row
	}

	return idx, nil
}

func objArgsToValues(args []ObjectIdx) []Value {
	out := make([]Value, len(args))
	for i, a := range args {
		out[i] = Value(a)
	}
	return out
}

// ToIndex is tuple_index.to_index: total on syntactically valid tuples,
// injective. Panics (§7 invariant violation) if the tuple was never
// registered during construction.
func (idx *Index) ToIndex(symbol SymbolIdx, values []Value) TupleIdx {
	return idx.tuples.ToIndex(symbol, values)
}

// ToIndexIfRegistered is ToIndex without the panic-on-miss behavior; see
// tupleTable.ToIndexIfRegistered.
func (idx *Index) ToIndexIfRegistered(symbol SymbolIdx, values []Value) TupleIdx {
	return idx.tuples.ToIndexIfRegistered(symbol, values)
}

// FromIndex is tuple_index.from_index, the inverse of ToIndex.
func (idx *Index) FromIndex(t TupleIdx) (SymbolIdx, []Value, error) {
	return idx.tuples.FromIndex(t)
}

// NumTuples returns the size of the tuple universe.
func (idx *Index) NumTuples() int { return idx.tuples.Size() }

// AtomTuple maps an Atom (variable, value) to its TupleIdx. ok is false
// when the atom has no corresponding tuple (a boolean variable's "false"
// value, which the delete relaxation never represents positively).
func (idx *Index) AtomTuple(v VariableIdx, val Value) (t TupleIdx, ok bool) {
	domain := idx.variables[v].Domain
	for pos, dv := range domain {
		if dv == val {
			t = idx.atomTuple[v][pos]
			return t, t >= 0
		}
	}
	return -1, false
}

// VariableObjects is variable_objects(var) → domain: the finite set of
// admissible values for a state variable.
func (idx *Index) VariableObjects(v VariableIdx) []Value {
	return idx.variables[v].Domain
}

// IsPredicate reports whether symbol is a predicate (boolean codomain).
func (idx *Index) IsPredicate(s SymbolIdx) bool {
	return idx.symbols[s].Predicate
}

// Variable returns the Variable record for v.
func (idx *Index) Variable(v VariableIdx) Variable { return idx.variables[v] }

// Symbol returns the Symbol record for s.
func (idx *Index) Symbol(s SymbolIdx) Symbol { return idx.symbols[s] }

// Object returns the Object record for o.
func (idx *Index) Object(o ObjectIdx) Object { return idx.objects[o] }

// Type returns the Type record for t.
func (idx *Index) Type(t TypeIdx) Type { return idx.types[t] }

// NumVariables returns the number of state variables.
func (idx *Index) NumVariables() int { return len(idx.variables) }

// NumObjects returns the total number of objects in the problem, across
// every type.
func (idx *Index) NumObjects() int { return len(idx.objects) }

// Variables returns every state variable index, in declaration order.
func (idx *Index) Variables() []VariableIdx {
	out := make([]VariableIdx, len(idx.variables))
	for i := range idx.variables {
		out[i] = VariableIdx(i)
	}
	return out
}

// ObjectsOfType returns the objects belonging to t.
func (idx *Index) ObjectsOfType(t TypeIdx) []ObjectIdx {
	return idx.types[t].Objects
}
