package search

import (
	"container/heap"
	"context"

	"github.com/katalvlaran/fsplanner/state"
)

// Unreachable mirrors heuristic.UNREACHABLE without importing the
// heuristic package (§9: a Heuristic is any function matching
// HeuristicFunc's shape, not tied to this repository's Driver type).
const Unreachable = -1

// HeuristicFunc evaluates a state to a non-negative cost estimate, or
// Unreachable. An error signals an internal failure (e.g. a cancelled
// context), distinct from a dead end, and aborts the search.
type HeuristicFunc func(s state.State) (int, error)

// GBFS performs greedy best-first search (§4.H): a binary-heap priority
// queue keyed by h(state), ties broken by generation order, adapted from
// the teacher's dijkstra.go lazy-decrease-key nodeItem/nodePQ idiom (here
// keyed by heuristic value instead of path distance). A node whose
// heuristic is Unreachable is a dead end (§7): it is simply never opened,
// and the search continues with the rest of the frontier.
func GBFS(ctx context.Context, model StateModel, h HeuristicFunc) (*Result, error) {
	a := newArena()
	closed := map[string]struct{}{}

	root := model.Initial()
	rootID := a.add(node{state: root, parent: noParent})
	closed[root.Key()] = struct{}{}
	stats := &Result{NodesGenerated: 1}

	if model.IsGoal(root) {
		stats.Plan = a.plan(rootID)
		return stats, nil
	}

	open := &openPQ{}
	heap.Init(open)
	rootH, err := h(root)
	if err != nil {
		return stats, err
	}
	if rootH != Unreachable {
		heap.Push(open, &openItem{id: rootID, h: rootH, gen: 0})
	}
	gen := 1

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		item := heap.Pop(open).(*openItem)
		stats.NodesExpanded++

		n := a.get(item.id)
		it := model.ApplicableActions(n.state)
		for {
			ai, ok := it.Next()
			if !ok {
				break
			}
			succ := model.Apply(n.state, ai)
			key := succ.Key()
			if _, seen := closed[key]; seen {
				continue
			}
			closed[key] = struct{}{}
			childID := a.add(node{state: succ, parent: item.id, action: ai, depth: n.depth + 1})
			stats.NodesGenerated++

			if model.IsGoal(succ) {
				stats.Plan = a.plan(childID)
				return stats, nil
			}

			childH, err := h(succ)
			if err != nil {
				return stats, err
			}
			if childH == Unreachable {
				continue
			}
			heap.Push(open, &openItem{id: childID, h: childH, gen: gen})
			gen++
		}
	}

	return stats, ErrNoPlan
}

// openItem is one entry of the GBFS open list.
type openItem struct {
	id  nodeID
	h   int
	gen int
}

// openPQ is a min-heap over openItem ordered by (h, gen), the binary-heap
// idiom adapted from dijkstra.go's nodePQ.
type openPQ []*openItem

func (pq openPQ) Len() int { return len(pq) }

func (pq openPQ) Less(i, j int) bool {
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].gen < pq[j].gen
}

func (pq openPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *openPQ) Push(x interface{}) { *pq = append(*pq, x.(*openItem)) }

func (pq *openPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
