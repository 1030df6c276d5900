package problemio

import (
	"fmt"
	"os"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// Load reads and resolves a problem document from path into a Problem.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problemio: reading %s: %w", path, err)
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return resolve(doc)
}

// builder accumulates the symbol tables needed to resolve a document's
// name references (types, objects, predicates, parameters) before
// emitting the final problem.Index and fstrips AST.
type builder struct {
	typeIdx   map[string]problem.TypeIdx
	types     []problem.Type
	objectIdx map[string]problem.ObjectIdx
	objects   []problem.Object
	symbolIdx map[string]problem.SymbolIdx
	symbols   []problem.Symbol

	// variables and variableKey are filled once every symbol's full
	// argument-tuple instantiation is known, by instantiateVariables.
	variables   []problem.Variable
	variableKey map[string]problem.VariableIdx // "symbolIdx/obj/obj/..." -> VariableIdx

	nextSlot int
}

func resolve(doc document) (*Problem, error) {
	b := &builder{
		typeIdx:     map[string]problem.TypeIdx{},
		objectIdx:   map[string]problem.ObjectIdx{},
		symbolIdx:   map[string]problem.SymbolIdx{},
		variableKey: map[string]problem.VariableIdx{},
	}

	if err := b.addTypes(doc.Types); err != nil {
		return nil, err
	}
	if err := b.addObjects(doc.Objects); err != nil {
		return nil, err
	}
	if err := b.addPredicates(doc.Predicates); err != nil {
		return nil, err
	}
	b.instantiateVariables()

	idx, err := problem.NewIndex(b.types, b.objects, b.variables, b.symbols)
	if err != nil {
		return nil, fmt.Errorf("problemio: building problem index: %w", err)
	}

	actions := make([]*fstrips.Action, 0, len(doc.Actions))
	for _, a := range doc.Actions {
		action, err := b.resolveAction(a)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	initial, err := b.resolveInitial(doc.Init)
	if err != nil {
		return nil, err
	}

	goal, err := b.resolveGoalConjunction(doc.Goal, nil)
	if err != nil {
		return nil, fmt.Errorf("problemio: resolving goal: %w", err)
	}

	return &Problem{Index: idx, Initial: initial, Goal: goal, Actions: actions}, nil
}

func (b *builder) addTypes(types []typeDoc) error {
	for _, t := range types {
		if _, dup := b.typeIdx[t.Name]; dup {
			return fmt.Errorf("problemio: duplicate type %q", t.Name)
		}
		b.typeIdx[t.Name] = problem.TypeIdx(len(b.types))
		b.types = append(b.types, problem.Type{Name: t.Name})
	}
	return nil
}

func (b *builder) addObjects(objects []objectDoc) error {
	for _, o := range objects {
		tIdx, ok := b.typeIdx[o.Type]
		if !ok {
			return fmt.Errorf("problemio: object %q references unknown type %q", o.Name, o.Type)
		}
		if _, dup := b.objectIdx[o.Name]; dup {
			return fmt.Errorf("problemio: duplicate object %q", o.Name)
		}
		oIdx := problem.ObjectIdx(len(b.objects))
		b.objectIdx[o.Name] = oIdx
		b.objects = append(b.objects, problem.Object{Name: o.Name, Type: tIdx})
		b.types[tIdx].Objects = append(b.types[tIdx].Objects, oIdx)
	}
	return nil
}

func (b *builder) addPredicates(predicates []predicateDoc) error {
	for _, p := range predicates {
		if _, dup := b.symbolIdx[p.Name]; dup {
			return fmt.Errorf("problemio: duplicate predicate %q", p.Name)
		}
		argTypes := make([]problem.TypeIdx, len(p.Args))
		for i, tn := range p.Args {
			tIdx, ok := b.typeIdx[tn]
			if !ok {
				return fmt.Errorf("problemio: predicate %q arg %d references unknown type %q", p.Name, i, tn)
			}
			argTypes[i] = tIdx
		}
		b.symbolIdx[p.Name] = problem.SymbolIdx(len(b.symbols))
		b.symbols = append(b.symbols, problem.Symbol{Name: p.Name, ArgTypes: argTypes, Predicate: true})
	}
	return nil
}

// instantiateVariables builds one boolean state variable per predicate
// per type-consistent argument tuple (the cross product of each
// argument's type's objects), domain {false, true} per problem.NewIndex's
// predicate convention.
func (b *builder) instantiateVariables() {
	for s, sym := range b.symbols {
		b.instantiateFor(problem.SymbolIdx(s), sym, 0, nil)
	}
}

func (b *builder) instantiateFor(s problem.SymbolIdx, sym problem.Symbol, i int, args []problem.ObjectIdx) {
	if i == len(sym.ArgTypes) {
		key := variableKey(s, args)
		b.variableKey[key] = problem.VariableIdx(len(b.variables))
		b.variables = append(b.variables, problem.Variable{
			Symbol: s,
			Args:   append([]problem.ObjectIdx(nil), args...),
			Domain: []problem.Value{0, 1},
		})
		return
	}
	for _, obj := range b.types[sym.ArgTypes[i]].Objects {
		b.instantiateFor(s, sym, i+1, append(args, obj))
	}
}

func variableKey(s problem.SymbolIdx, args []problem.ObjectIdx) string {
	key := fmt.Sprintf("%d", s)
	for _, a := range args {
		key += fmt.Sprintf("/%d", a)
	}
	return key
}

func (b *builder) resolveInitial(init []atomDoc) (state.State, error) {
	values := make([]problem.Value, len(b.variables))
	for _, a := range init {
		v, err := b.variableFor(a.Pred, a.Args)
		if err != nil {
			return state.State{}, fmt.Errorf("problemio: resolving init atom %q: %w", a.Pred, err)
		}
		values[v] = 1
	}
	return state.New(values), nil
}

// variableFor resolves a fully-ground atom's predicate+object-name args
// to its VariableIdx.
func (b *builder) variableFor(predName string, argNames []string) (problem.VariableIdx, error) {
	s, ok := b.symbolIdx[predName]
	if !ok {
		return 0, fmt.Errorf("unknown predicate %q", predName)
	}
	args := make([]problem.ObjectIdx, len(argNames))
	for i, name := range argNames {
		o, ok := b.objectIdx[name]
		if !ok {
			return 0, fmt.Errorf("unknown object %q", name)
		}
		args[i] = o
	}
	key := variableKey(s, args)
	v, ok := b.variableKey[key]
	if !ok {
		return 0, fmt.Errorf("predicate %q has no variable for args %v", predName, argNames)
	}
	return v, nil
}
