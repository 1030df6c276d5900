// Package fsplanner is a relaxed-planning-graph (RPG) heuristic search
// planner for functional STRIPS: typed objects, first-order terms, and
// numeric/symbolic state variables.
//
// Given a planning task — typed objects, finite-domain state variables, an
// initial assignment, a goal formula, and a set of (possibly lifted) action
// schemata — the planner searches the reachable state space for a sequence
// of ground actions that transforms the initial state into one satisfying
// the goal. The estimator driving that search is the delete-relaxation
// machinery under rpg/, csp/ and relaxedplan/: a layered forward
// reachability structure, per-effect constraint-satisfaction handlers that
// compute newly achievable atoms at each layer, and a backward extractor
// that turns the resulting support graph into an integer cost (h_ff or
// h_max).
//
// Packages:
//
//	problem/     — immutable problem index: types, objects, variables, symbols, tuple index
//	state/       — concrete states and the monotonically growing relaxed layer
//	fstrips/     — typed term/formula AST, binding and evaluation
//	csp/         — per-effect constraint-satisfaction handlers over a layer
//	rpg/         — RPG bookkeeping: reached tuples, supports, layer advance
//	relaxedplan/ — backward support-graph walk producing h_ff / h_max
//	heuristic/   — the layered fixed-point driver (A→H data flow)
//	search/      — BFS / greedy-best-first search harness
//	config/      — the planner Configuration object
//	problemio/   — problem-description loader, searchlog.out and plan.ipc writers
//	cmd/planner/ — the CLI entry point
//
// See SPEC_FULL.md for the full specification this module implements.
package fsplanner
