// Package rpg implements the RPG Bookkeeping component (§3, §4.E): the
// per-layer record of which tuples have been reached, when, and with what
// support. Grounded on original_source/src/heuristics/relaxed_plan/
// atom_based_crpg.cxx's use of an RPGData instance (getNumNovelAtoms,
// getNovelAtoms, advanceLayer, getCurrentLayerIdx) as the single
// bookkeeping object threaded through one heuristic evaluation.
package rpg

import (
	"fmt"

	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// Record is the bookkeeping payload for one reached tuple: the layer at
// which it first appeared and its support.
type Record struct {
	FirstLayer int
	Support    csp.Support
}

// Bookkeeping tracks, for a single heuristic evaluation, every tuple
// reached so far and the tuples novel to the layer currently being built.
// Owned by one evaluation and never shared across them (§5).
type Bookkeeping struct {
	currentLayer int
	reached      map[problem.TupleIdx]Record
	novel        map[problem.TupleIdx]csp.Support
}

// New seeds layer 0 from seed: every tuple seed already contains is
// recorded as reached at layer 0 with empty support (§3's "Atoms present
// in the seed have L=0 and empty support").
func New(seed *state.Layer) *Bookkeeping {
	b := &Bookkeeping{
		reached: make(map[problem.TupleIdx]Record),
		novel:   make(map[problem.TupleIdx]csp.Support),
	}
	for _, t := range seed.ReachedTuples() {
		b.reached[t] = Record{FirstLayer: 0}
	}
	return b
}

// Reached reports whether t has been recorded (at any layer up to and
// including the current one).
func (b *Bookkeeping) Reached(t problem.TupleIdx) bool {
	_, ok := b.reached[t]
	return ok
}

// CurrentLayer returns the index of the layer currently being built.
func (b *Bookkeeping) CurrentLayer() int { return b.currentLayer }

// Add inserts t into the novel set (to be flushed at layer current+1) if
// it isn't already reached, otherwise discards it (§4.E). Panics if
// support references a tuple that is not itself already reached — a
// violation of the acyclic-support invariant, a programmer error in the
// calling CSP handler (§4.E's invariant, §7's failure-mode policy).
func (b *Bookkeeping) Add(t problem.TupleIdx, support csp.Support) bool {
	if b.Reached(t) {
		return false
	}
	for _, dep := range support.Tuples {
		if !b.Reached(dep) {
			panic(fmt.Sprintf("rpg: support for tuple %d references unreached tuple %d", t, dep))
		}
	}
	if _, already := b.novel[t]; already {
		return false
	}
	b.novel[t] = support
	return true
}

// NumNovel returns the size of the novel set accumulated at the current
// layer so far.
func (b *Bookkeeping) NumNovel() int { return len(b.novel) }

// NovelSet returns every tuple currently in the novel set, for
// state.Layer.Advance.
func (b *Bookkeeping) NovelSet() []problem.TupleIdx {
	out := make([]problem.TupleIdx, 0, len(b.novel))
	for t := range b.novel {
		out = append(out, t)
	}
	return out
}

// AdvanceLayer flushes the novel set into the reached map at layer
// current+1 and increments the layer counter (§4.E).
func (b *Bookkeeping) AdvanceLayer() {
	next := b.currentLayer + 1
	for t, support := range b.novel {
		b.reached[t] = Record{FirstLayer: next, Support: support}
	}
	b.novel = make(map[problem.TupleIdx]csp.Support)
	b.currentLayer = next
}

// SupportOf returns the recorded Record for t, if reached.
func (b *Bookkeeping) SupportOf(t problem.TupleIdx) (Record, bool) {
	r, ok := b.reached[t]
	return r, ok
}
