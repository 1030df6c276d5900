package search

import (
	"context"
	"errors"

	"github.com/katalvlaran/fsplanner/fstrips"
)

// ErrNoPlan is returned when the search exhausts its frontier without
// reaching a goal state (§7 "no plan", §8 "unsolvable task").
var ErrNoPlan = errors.New("search: no plan exists from the initial state")

// Result reports a found plan plus the statistics the CLI's searchlog.out
// writer needs (§6).
type Result struct {
	Plan           []fstrips.ActionInstance
	NodesGenerated int
	NodesExpanded  int
}

// BFS performs a breadth-first search over model (§4.H): a FIFO of
// (state, parent, incoming-action) nodes, closed-set deduplication keyed
// by state.Key(), goal test on pop. ctx is checked once per expansion
// (§5's "between expansions" checkpoint); a cancelled/expired ctx aborts
// with ctx.Err().
func BFS(ctx context.Context, model StateModel) (*Result, error) {
	a := newArena()
	closed := map[string]struct{}{}

	root := model.Initial()
	rootID := a.add(node{state: root, parent: noParent})
	closed[root.Key()] = struct{}{}

	queue := []nodeID{rootID}
	stats := &Result{NodesGenerated: 1}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		id := queue[0]
		queue = queue[1:]

		n := a.get(id)
		if model.IsGoal(n.state) {
			stats.Plan = a.plan(id)
			return stats, nil
		}
		stats.NodesExpanded++

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
			childID := a.add(node{state: succ, parent: id, action: ai, depth: n.depth + 1})
			stats.NodesGenerated++
			queue = append(queue, childID)
		}
	}

	return stats, ErrNoPlan
}
