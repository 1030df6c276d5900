// Package fstrips implements the functional-STRIPS term and formula AST:
// typed Terms (term.go), Formulas (formula.go), parameter Bindings
// (binding.go), lifted action schemata and their ground instances
// (action.go), and the indirect-scope walk used to drive CSP variable
// registration (scope.go).
package fstrips
