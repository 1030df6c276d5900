// Package search implements the Search Harness (§4.H): a small capability
// set (§9 "Polymorphism over search algorithms and heuristics") consumed
// by two plain-function engines, BFS and GBFS, over an arena of search
// nodes (§9 "Re-architect as... an arena"). Grounded on
// original_source/src/search/engines/{gbfs_crpg_lifted.cxx,registry.cxx}
// for the BFS/GBFS split, and the teacher's dijkstra.go heap idiom for the
// GBFS open list (container/heap over a nodeItem/nodePQ pair).
package search

import (
	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// ActionIterator is a pull interface over a lazy, non-restartable sequence
// of applicable action instances (§9 "Iterators/generators"). Cancellation
// is by simply dropping the iterator; there is no Close method because
// nothing it holds needs releasing beyond the Go garbage collector.
type ActionIterator interface {
	// Next returns the next applicable action instance, or ok=false once
	// the sequence is exhausted.
	Next() (ai fstrips.ActionInstance, ok bool)
}

// StateModel is the capability set a search engine needs (§9): an initial
// state, a lazy applicable-action sequence per state, a successor
// function, and a goal test.
type StateModel interface {
	Initial() state.State
	ApplicableActions(s state.State) ActionIterator
	Apply(s state.State, ai fstrips.ActionInstance) state.State
	IsGoal(s state.State) bool
}

// GroundedModel is a StateModel over a fixed set of lifted action schemata,
// grounded once at construction (§4.H "applicable-action iterator"). Its
// ApplicableActions filters the precomputed ground instances by
// ActionInstance.IsApplicable per state, which is the naive analogue of
// the source's "CSP over preconditions for lifted mode" in a setting
// without a general constraint solver (the RPG's CSP handlers already
// cover the heuristic's need for that machinery, §4.D).
type GroundedModel struct {
	idx       *problem.Index
	initial   state.State
	goal      fstrips.Formula
	instances []fstrips.ActionInstance
}

// NewGroundedModel grounds every action in actions against idx's objects
// and builds a StateModel around (initial, goal).
func NewGroundedModel(idx *problem.Index, actions []*fstrips.Action, initial state.State, goal fstrips.Formula) *GroundedModel {
	var instances []fstrips.ActionInstance
	for _, a := range actions {
		for _, b := range a.Grounding(idx) {
			instances = append(instances, fstrips.ActionInstance{Action: a, Binding: b})
		}
	}
	return &GroundedModel{idx: idx, initial: initial, goal: goal, instances: instances}
}

func (m *GroundedModel) Initial() state.State { return m.initial }

func (m *GroundedModel) IsGoal(s state.State) bool { return m.goal.Eval(fstrips.NewBinding(nil), s, m.idx) }

func (m *GroundedModel) Apply(s state.State, ai fstrips.ActionInstance) state.State {
	return ai.Apply(s, m.idx)
}

func (m *GroundedModel) ApplicableActions(s state.State) ActionIterator {
	return &groundedIterator{model: m, state: s, pos: 0}
}

type groundedIterator struct {
	model *GroundedModel
	state state.State
	pos   int
}

func (it *groundedIterator) Next() (fstrips.ActionInstance, bool) {
	for it.pos < len(it.model.instances) {
		ai := it.model.instances[it.pos]
		it.pos++
		if ai.IsApplicable(it.state, it.model.idx) {
			return ai, true
		}
	}
	return fstrips.ActionInstance{}, false
}
