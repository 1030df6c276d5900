// Package heuristic implements the Heuristic Driver (§4.G): the layered
// fixed-point loop that orchestrates the CSP Handlers (D) and RPG
// Bookkeeping (E), invoking the Relaxed-Plan Extractor (F) the moment the
// goal becomes reachable. Evaluate follows spec §4.G's pseudocode, except
// that the layer's novel set is flushed into the bookkeeping before the
// goal check rather than after it; the loop is grounded on original_source/src/heuristics/
// relaxed_plan/atom_based_crpg.cxx's ConstrainedRPG::evaluate.
package heuristic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/fsplanner/csp"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/relaxedplan"
	"github.com/katalvlaran/fsplanner/rpg"
	"github.com/katalvlaran/fsplanner/state"
)

// UNREACHABLE is the sentinel returned when the RPG fixpoint is reached
// without the goal becoming true: the real problem is unsolvable from the
// evaluated state (§4.G).
const UNREACHABLE = -1

// Variant selects which of the two relaxed-plan costs Evaluate reports.
type Variant int

const (
	// FF counts distinct actions in the extracted relaxed plan.
	FF Variant = iota
	// HMax reports the maximum RPG layer touched by the extraction.
	HMax
)

// Driver owns the (shared, planner-lifetime) set of CSP handlers and the
// goal handler, and evaluates states against them.
type Driver struct {
	idx             *problem.Index
	handlers        []*csp.Handler
	achievers       *csp.AchieverIndex
	goal            *csp.GoalHandler
	variant         Variant
	minHMaxSelector bool
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithMinHMaxValueSelector enables `use_min_hmax_value_selector` (§4.G):
// when more than one handler produces the same novel tuple in the same
// layer sweep, the one whose support depends on the lowest-hmax tuples is
// recorded, instead of simply the first handler visited in registration
// order.
func WithMinHMaxValueSelector() Option {
	return func(d *Driver) { d.minHMaxSelector = true }
}

// NewDriver builds a Driver. handlers must already have been through
// Index()+Propagate() (construction is one-shot and shared across every
// Evaluate call, §5); handlers still in StateCreated or StateIndexed are
// rejected since SeekNovelTuples would silently no-op for them.
func NewDriver(idx *problem.Index, handlers []*csp.Handler, goal *csp.GoalHandler, variant Variant, opts ...Option) (*Driver, error) {
	for _, h := range handlers {
		switch h.State() {
		case csp.StateActive, csp.StateStatic, csp.StateFailed:
		default:
			return nil, fmt.Errorf("heuristic: handler %q must be Propagated before use, got %s", h.ID(), h.State())
		}
	}
	d := &Driver{
		idx:       idx,
		handlers:  handlers,
		achievers: csp.BuildAchieverIndex(handlers, idx),
		goal:      goal,
		variant:   variant,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Evaluate computes the heuristic value for seed (§4.G). Returns
// UNREACHABLE if the RPG fixpoint is reached without the goal becoming
// true. ctx is checked between layers only (§5): the search/heuristic
// core never suspends mid-layer.
func (d *Driver) Evaluate(ctx context.Context, seed state.State) (int, error) {
	if d.goal.SatisfiedBySeed(seed) {
		return 0, nil
	}

	layer := state.FromSeed(d.idx, seed)
	bk := rpg.New(layer)

	for {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("heuristic: %w", err)
		}

		candidates := map[problem.TupleIdx][]csp.Support{}
		for _, h := range d.handlers {
			if !d.achievers.PotentiallyUseful(h, bk.Reached) {
				continue
			}
			for _, nt := range h.SeekNovelTuples(layer) {
				candidates[nt.Tuple] = append(candidates[nt.Tuple], nt.Support)
			}
		}
		for t, supports := range candidates {
			bk.Add(t, d.selectSupport(bk, supports))
		}

		if bk.NumNovel() == 0 {
			return UNREACHABLE, nil
		}

		layer.Advance(bk.NovelSet())
		// Flush before the goal check so the extractor finds a record for
		// every tuple the goal's causes may name.
		bk.AdvanceLayer()

		if causes, ok := d.goal.Causes(layer); ok {
			ex := relaxedplan.New(bk)
			ff, hmax, err := ex.Extract(causes)
			if err != nil {
				return 0, fmt.Errorf("heuristic: %w", err)
			}
			if d.variant == HMax {
				return hmax, nil
			}
			return ff, nil
		}
	}
}

// selectSupport picks which of several same-tuple candidate supports
// Bookkeeping.Add should record. With the selector disabled, the first
// handler to have produced the tuple this sweep wins (registration-order
// determinism, §5). With it enabled, the candidate whose dependencies sit
// at the lowest hmax (maximum recorded first-layer among its support
// tuples) wins, ties broken by the same registration order.
func (d *Driver) selectSupport(bk *rpg.Bookkeeping, supports []csp.Support) csp.Support {
	if !d.minHMaxSelector || len(supports) == 1 {
		return supports[0]
	}
	best := supports[0]
	bestHMax := supportHMax(bk, best)
	for _, s := range supports[1:] {
		h := supportHMax(bk, s)
		if h < bestHMax {
			best, bestHMax = s, h
		}
	}
	return best
}

func supportHMax(bk *rpg.Bookkeeping, s csp.Support) int {
	max := 0
	for _, dep := range s.Tuples {
		if rec, ok := bk.SupportOf(dep); ok && rec.FirstLayer > max {
			max = rec.FirstLayer
		}
	}
	return max
}
