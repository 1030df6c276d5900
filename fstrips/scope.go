package fstrips

import "github.com/katalvlaran/fsplanner/problem"

// IndirectScope collects the state variables that a formula's evaluation
// reaches indirectly (§4.C, §4.D): the Scope of every NestedTerm that
// appears as a subterm among the formula's terms, whatever that
// NestedTerm's own arguments are. An atom whose arguments are all ground
// constants contributes nothing (clear(b1) yields no variable), while a
// nested application does even over constant arguments (clear(on(b1))
// yields on(b1)'s variable).
//
// No other package calls it: csp.Handler works from the atoms of an
// action's precondition directly.
func IndirectScope(f Formula, idx *problem.Index) []problem.VariableIdx {
	seen := map[problem.VariableIdx]struct{}{}
	var out []problem.VariableIdx
	for _, t := range f.AllTerms() {
		nt, ok := t.(NestedTerm)
		if !ok {
			continue
		}
		for _, v := range nt.Scope(idx) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// DirectVariables collects the state variables referenced by ground
// StateVariableRef terms anywhere in f — the variables already resolved
// and requiring no CSP indirection.
func DirectVariables(f Formula, idx *problem.Index) []problem.VariableIdx {
	seen := map[problem.VariableIdx]struct{}{}
	var out []problem.VariableIdx
	for _, t := range f.AllTerms() {
		ref, ok := t.(StateVariableRef)
		if !ok {
			continue
		}
		if _, dup := seen[ref.Var]; dup {
			continue
		}
		seen[ref.Var] = struct{}{}
		out = append(out, ref.Var)
	}
	return out
}
