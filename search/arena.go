package search

import (
	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/state"
)

// nodeID indexes into an arena (§9 "search-tree nodes indexed in an arena
// (vector of node records) with parents stored as arena indices",
// replacing the source's reference-counted handles).
type nodeID int

const noParent nodeID = -1

// node is one arena record: a state, its generating action, and a
// back-pointer to its parent.
type node struct {
	state  state.State
	parent nodeID
	action fstrips.ActionInstance // incoming action; zero value for the root
	depth  int
}

// arena owns every node created during one search, by value, indexed by
// nodeID. It never shrinks; dropping the arena drops every node at once
// (§5 "partial RPG structures are dropped with their owner" — the search
// analogue).
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) add(n node) nodeID {
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) get(id nodeID) node {
	return a.nodes[id]
}

// plan reconstructs the action sequence from the root to id by walking
// parent pointers and reversing.
func (a *arena) plan(id nodeID) []fstrips.ActionInstance {
	var rev []fstrips.ActionInstance
	for id != noParent {
		n := a.get(id)
		if n.parent == noParent {
			break
		}
		rev = append(rev, n.action)
		id = n.parent
	}
	out := make([]fstrips.ActionInstance, len(rev))
	for i, ai := range rev {
		out[len(rev)-1-i] = ai
	}
	return out
}
