package csp

import "github.com/katalvlaran/fsplanner/problem"

// AchieverIndex maps a tuple to the handlers that might achieve it,
// precomputed once so the heuristic driver's per-layer sweep only
// consults the handlers that are actually relevant to a given
// unachieved tuple instead of scanning every handler in the planner.
// Grounded on original_source/src/heuristics/relaxed_plan/
// atom_based_crpg.cxx's build_achievers_index/ConstrainedRPG::AchieverIndex,
// keyed here by TupleIdx (dense, via NumTuples) exactly as the original
// keys by atom index.
type AchieverIndex struct {
	byTuple   map[problem.TupleIdx][]*Handler
	byHandler map[*Handler][]problem.TupleIdx
}

// BuildAchieverIndex inspects every handler's static/active achieved
// tuple where known in advance (the Static case) and, for Active
// handlers, falls back to registering them against every tuple of their
// effect's symbol — a conservative over-approximation cheap enough to
// compute once at startup and exercised by filtering at seek time
// anyway (SeekNovelTuples itself re-checks applicability).
func BuildAchieverIndex(handlers []*Handler, idx *problem.Index) *AchieverIndex {
	ai := &AchieverIndex{
		byTuple:   map[problem.TupleIdx][]*Handler{},
		byHandler: map[*Handler][]problem.TupleIdx{},
	}
	for _, h := range handlers {
		switch h.State() {
		case StateStatic:
			ai.byTuple[h.staticAchievedTuple] = append(ai.byTuple[h.staticAchievedTuple], h)
			ai.byHandler[h] = append(ai.byHandler[h], h.staticAchievedTuple)
		case StateActive:
			for _, t := range tuplesOfSymbol(idx, h.effect.LHS.Symbol) {
				ai.byTuple[t] = append(ai.byTuple[t], h)
				ai.byHandler[h] = append(ai.byHandler[h], t)
			}
		}
	}
	return ai
}

// HandlersFor returns the handlers registered as potential achievers of
// t, possibly empty.
func (ai *AchieverIndex) HandlersFor(t problem.TupleIdx) []*Handler {
	return ai.byTuple[t]
}

// PotentiallyUseful reports whether h might still produce a novel tuple
// this sweep: whether at least one of its registered achiever tuples is
// not yet reported reached by reached. A Failed (or never-indexed)
// handler has no registered tuples and is never useful. This is the
// pruning step atom_based_crpg.cxx's achiever index exists for (§4.G):
// the heuristic driver skips enumerating a handler's parameter bindings
// entirely once every tuple it could possibly produce is already
// reached, instead of relying solely on SeekNovelTuples's own per-binding
// Layer.Contains check.
func (ai *AchieverIndex) PotentiallyUseful(h *Handler, reached func(problem.TupleIdx) bool) bool {
	tuples := ai.byHandler[h]
	if len(tuples) == 0 {
		return false
	}
	for _, t := range tuples {
		if !reached(t) {
			return true
		}
	}
	return false
}

func tuplesOfSymbol(idx *problem.Index, symbol problem.SymbolIdx) []problem.TupleIdx {
	var out []problem.TupleIdx
	for i := 0; i < idx.NumTuples(); i++ {
		sym, _, err := idx.FromIndex(problem.TupleIdx(i))
		if err == nil && sym == symbol {
			out = append(out, problem.TupleIdx(i))
		}
	}
	return out
}
