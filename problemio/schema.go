// Package problemio is the minimal problem-description loader and plan
// I/O this repository plays the role of "external collaborator" for (§1
// scopes the Problem Index's construction out of the planner core itself;
// something still has to build one). It reads a single YAML document
// (types/objects/predicates/actions/init/goal) into a *problem.Index, an
// initial state.State, a goal fstrips.Formula, and a []*fstrips.Action —
// everything cmd/planner needs to wire components A through H — and
// writes the two plain-text artifacts of §6/§8: searchlog.out and
// plan.ipc.
//
// The loader only ever builds boolean (predicate) state variables: every
// declared predicate is instantiated once per type-consistent argument
// tuple with domain {false, true}, following the STRIPS fragment of
// functional-STRIPS this teacher's planner core fully supports. Numeric
// fluents and functional symbols are Formula/Term AST features the core
// can evaluate, but this particular loader has no YAML surface for them;
// a hand-built problem.Index remains the only route to those, exactly as
// today's unit tests already construct one.
package problemio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// document is the raw YAML shape, unmarshaled before any cross-reference
// resolution (symbol names, type names, and parameter names are resolved
// in a second pass by resolve()).
type document struct {
	Types      []typeDoc      `yaml:"types"`
	Objects    []objectDoc    `yaml:"objects"`
	Predicates []predicateDoc `yaml:"predicates"`
	Actions    []actionDoc    `yaml:"actions"`
	Init       []atomDoc      `yaml:"init"`
	Goal       []atomDoc      `yaml:"goal"`
}

type typeDoc struct {
	Name string `yaml:"name"`
}

type objectDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type predicateDoc struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

type paramDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type actionDoc struct {
	Name         string    `yaml:"name"`
	Params       []paramDoc `yaml:"params"`
	Precondition []atomDoc `yaml:"precondition"`
	Effect       []atomDoc `yaml:"effect"`
}

// atomDoc is pred(args...), optionally negated (precondition/goal use) or
// assigned an explicit truth value (effect use). Args name either an
// enclosing action's parameter or a declared object; which is decided by
// lookup, not by syntax, matching the teacher's preference for resolving
// identifiers against a symbol table rather than inventing sigils.
type atomDoc struct {
	Pred  string   `yaml:"pred"`
	Args  []string `yaml:"args"`
	Not   bool     `yaml:"not"`
	Value *bool    `yaml:"value"` // effect only; nil means "true" (an add, the common case)
}

// Problem is the fully resolved output of Load: everything cmd/planner
// needs to construct a search.StateModel and a heuristic.Driver.
type Problem struct {
	Index   *problem.Index
	Initial state.State
	Goal    fstrips.Formula
	Actions []*fstrips.Action
}

func parseDocument(data []byte) (document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("problemio: parsing problem document: %w", err)
	}
	return doc, nil
}
