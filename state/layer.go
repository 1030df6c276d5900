package state

import (
	"sort"

	"github.com/katalvlaran/fsplanner/problem"
)

// Layer is the Relaxed Layer (§3, §4.B): the monotonically growing set of
// TupleIdx reached so far in a delete-relaxed forward search. Once a tuple
// is in, it stays in for the duration of one RPG construction.
type Layer struct {
	reached  map[problem.TupleIdx]struct{}
	frontier map[problem.TupleIdx]struct{}
}

// FromSeed builds layer 0 from a seed state: every (variable, value) atom
// of the seed that has a corresponding tuple is marked reached at layer 0
// (§3 invariant: "the seed state's tuples are always in layer 0"). The
// seed tuples also seed the frontier, since nothing was reachable before
// the problem started.
func FromSeed(idx *problem.Index, seed State) *Layer {
	l := &Layer{
		reached:  make(map[problem.TupleIdx]struct{}, idx.NumVariables()),
		frontier: make(map[problem.TupleIdx]struct{}, idx.NumVariables()),
	}
	for _, v := range idx.Variables() {
		if t, ok := idx.AtomTuple(v, seed.Get(v)); ok {
			l.reached[t] = struct{}{}
			l.frontier[t] = struct{}{}
		}
	}
	return l
}

// Contains reports whether t has been reached on or before the current
// layer. O(1).
func (l *Layer) Contains(t problem.TupleIdx) bool {
	_, ok := l.reached[t]
	return ok
}

// Add marks t reached. Idempotent: adding an already-reached tuple is a
// no-op.
func (l *Layer) Add(t problem.TupleIdx) {
	l.reached[t] = struct{}{}
}

// Advance unions novel into the reached set (§4.B "advance(novel_set)") and
// replaces the frontier with exactly this round's additions: the set of
// tuples that "were not reachable at the previous layer" (§4.D.2), which
// drives the optional per-handler novelty constraint.
func (l *Layer) Advance(novel []problem.TupleIdx) {
	frontier := make(map[problem.TupleIdx]struct{}, len(novel))
	for _, t := range novel {
		l.reached[t] = struct{}{}
		frontier[t] = struct{}{}
	}
	l.frontier = frontier
}

// InFrontier reports whether t was newly reached in the most recent
// Advance call (or is a seed tuple, if Advance has never been called).
func (l *Layer) InFrontier(t problem.TupleIdx) bool {
	_, ok := l.frontier[t]
	return ok
}

// Size returns the number of tuples reached so far.
func (l *Layer) Size() int { return len(l.reached) }

// UnachievedAgainst returns the subset of goalAtoms not yet reached (§4.B).
// heuristic.Driver does not call it: its per-layer sweeps end when a layer
// adds no novel tuple or when the goal handler reports the goal satisfied.
func (l *Layer) UnachievedAgainst(goalAtoms []problem.TupleIdx) []problem.TupleIdx {
	out := make([]problem.TupleIdx, 0, len(goalAtoms))
	for _, t := range goalAtoms {
		if !l.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// ReachedTuples returns a stable-order snapshot of every reached TupleIdx.
// Intended for diagnostics and tests, not the hot path.
func (l *Layer) ReachedTuples() []problem.TupleIdx {
	out := make([]problem.TupleIdx, 0, len(l.reached))
	for t := range l.reached {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
