package csp

import (
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// ExtensionalTable is a dense reachability table for a binary-arity
// predicate symbol, refreshed once per RPG layer (§4.D item 4: "refresh
// extensional tables with newly-added tuples"). The dense
// object-by-object matrix layout is the teacher's
// matrix.AdjacencyMatrix{Index, Data} idiom, adapted here from an edge
// weight table to a boolean ground-tuple reachability table.
type ExtensionalTable struct {
	symbol problem.SymbolIdx
	n      int
	data   [][]bool
}

// NewExtensionalTable allocates an n×n table (n = the problem's total
// object count) for symbol, initially empty.
func NewExtensionalTable(n int, symbol problem.SymbolIdx) *ExtensionalTable {
	data := make([][]bool, n)
	for i := range data {
		data[i] = make([]bool, n)
	}
	return &ExtensionalTable{symbol: symbol, n: n, data: data}
}

// Refresh marks (a, b) reachable for every pair whose ground tuple
// <symbol, a, b> is present in layer. Re-running Refresh against a grown
// layer only ever adds entries, matching the layer's own monotonicity.
func (t *ExtensionalTable) Refresh(layer *state.Layer, idx *problem.Index) {
	for a := 0; a < t.n; a++ {
		for b := 0; b < t.n; b++ {
			if t.data[a][b] {
				continue
			}
			tup := idx.ToIndexIfRegistered(t.symbol, []problem.Value{problem.Value(a), problem.Value(b)})
			if tup >= 0 && layer.Contains(tup) {
				t.data[a][b] = true
			}
		}
	}
}

// Contains reports whether (a, b) is currently marked reachable.
func (t *ExtensionalTable) Contains(a, b problem.ObjectIdx) bool {
	if int(a) >= t.n || int(b) >= t.n || a < 0 || b < 0 {
		return false
	}
	return t.data[a][b]
}
