// Package csp implements the Relaxed Planning Graph's per-layer
// reachability computation (§4.D): one Handler per (action schema,
// non-delete effect) pair, a GoalHandler for the goal formula, an
// ExtensionalTable for binary-predicate precondition lookups, and an
// AchieverIndex dispatch table consulted by the heuristic driver.
package csp
