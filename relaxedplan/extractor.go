// Package relaxedplan implements the Relaxed-Plan Extractor (§3, §4.F):
// given the goal's "causes" in the final RPG layer, it walks the support
// DAG backwards and reports cost_ff (distinct actions used) and cost_hmax
// (the maximum layer touched). The support DAG has no separate vertex/edge
// representation: Bookkeeping.SupportOf already gives each tuple its
// in-edges, so the walk is a direct recursive descent over that map,
// three-color marked (white/gray/black) the way the teacher's
// dfs.DetectCycles guards a general graph against re-entering a vertex
// still on the recursion stack, here specialized to the one structure the
// extractor ever walks. Grounded on original_source/src/heuristics/
// relaxed_plan/constrained_relaxed_plan_heuristic.cxx's backward traversal.
package relaxedplan

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/rpg"
)

// ErrSupportCycle is returned (a defensive check, never expected to
// trigger given a correctly-implemented Bookkeeping) when the support DAG
// built from the bookkeeping contains a cycle.
var ErrSupportCycle = errors.New("relaxedplan: support graph contains a cycle")

// ErrUnsupportedTuple is the programmer-error case from §4.F: the
// extractor reached a tuple with no recorded support that isn't itself a
// seed-layer (layer 0) tuple.
var ErrUnsupportedTuple = errors.New("relaxedplan: tuple has no support and is not a seed-layer tuple")

// color marks a tuple's traversal state during the backward walk:
// white (unseen), gray (on the current recursion stack, i.e. an ancestor
// of the tuple being expanded), black (fully expanded).
type color int

const (
	white color = iota
	gray
	black
)

// actionInstanceKey identifies a distinct action instance (handler +
// parameter binding), the unit cost_ff counts, per §4.F.
func actionInstanceKey(s csp.Support) string {
	slots := make([]int, 0, len(s.Binding.Values))
	for slot := range s.Binding.Values {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	key := s.HandlerID
	for _, slot := range slots {
		key += fmt.Sprintf("|%d=%d", slot, s.Binding.Values[slot])
	}
	return key
}

// Extractor walks the support sub-DAG rooted at a set of goal causes.
type Extractor struct {
	bk *rpg.Bookkeeping
}

// New builds an Extractor over bk, the bookkeeping of the RPG whose goal
// layer was just confirmed reachable.
func New(bk *rpg.Bookkeeping) *Extractor {
	return &Extractor{bk: bk}
}

// Extract walks the support sub-DAG for causes backwards, three-color
// marking each tuple as it descends, and returns (cost_ff, cost_hmax). The
// extractor never revisits a fully-expanded tuple (§4.F); a tuple reached
// with no recorded support that isn't a seed-layer tuple is
// ErrUnsupportedTuple, a programming error per §4.F. Re-entering a gray
// (still-expanding) tuple is ErrSupportCycle, the defensive check for
// Testable Property 1 (support acyclicity).
func (e *Extractor) Extract(causes []problem.TupleIdx) (costFF int, costHMax int, err error) {
	colors := map[problem.TupleIdx]color{}
	actions := map[string]bool{}

	var walk func(t problem.TupleIdx) error
	walk = func(t problem.TupleIdx) error {
		switch colors[t] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w: tuple %d", ErrSupportCycle, t)
		}
		colors[t] = gray

		rec, ok := e.bk.SupportOf(t)
		if !ok {
			return fmt.Errorf("%w: tuple %d", ErrUnsupportedTuple, t)
		}
		if rec.FirstLayer == 0 {
			colors[t] = black
			return nil // seed-layer tuple: no further support to walk
		}

		if rec.FirstLayer > costHMax {
			costHMax = rec.FirstLayer
		}
		if rec.Support.HandlerID != "" {
			actions[actionInstanceKey(rec.Support)] = true
		}

		for _, dep := range rec.Support.Tuples {
			if err := walk(dep); err != nil {
				return err
			}
		}

		colors[t] = black
		return nil
	}

	for _, c := range causes {
		if err := walk(c); err != nil {
			return 0, 0, err
		}
	}

	return len(actions), costHMax, nil
}
