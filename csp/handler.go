// Package csp implements the per-(schema, effect) constraint handlers
// that drive Relaxed Planning Graph layer expansion (§4.D). Each Handler
// walks a small state machine — Created, Indexed, Propagated, then one of
// Failed, Static, Active — mirroring the lifecycle of
// original_source/src/constraints/gecode/handlers/base_csp.hxx's
// index()/register_csp_variables()/register_csp_constraints() split,
// adapted from Gecode's constraint-propagation model to a direct
// enumerate-and-filter evaluator since the relaxed, positive-atoms-only
// setting never needs a general-purpose finite-domain solver.
package csp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fsplanner/fstrips"
	"github.com/katalvlaran/fsplanner/problem"
	"github.com/katalvlaran/fsplanner/state"
)

// HandlerState enumerates a Handler's lifecycle stages.
type HandlerState int

const (
	StateCreated HandlerState = iota
	StateIndexed
	StatePropagated
	StateFailed
	StateStatic
	StateActive
)

func (s HandlerState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateIndexed:
		return "Indexed"
	case StatePropagated:
		return "Propagated"
	case StateFailed:
		return "Failed"
	case StateStatic:
		return "Static"
	case StateActive:
		return "Active"
	default:
		return fmt.Sprintf("HandlerState(%d)", int(s))
	}
}

// ErrDeleteEffectHandler is returned by NewHandler when asked to build a
// handler for a delete-effect: the relaxation forgets deletes, so no
// handler is ever built for one (§4.D).
var ErrDeleteEffectHandler = errors.New("csp: delete-effects never get a handler under the relaxation")

// ErrWrongState is returned when a Handler method is called out of its
// required lifecycle order.
var ErrWrongState = errors.New("csp: handler method called from the wrong lifecycle state")

// Support is a novel tuple's justification: the action instance that
// produced it and the (already-reached, strictly earlier-layer) tuples
// its precondition depended on.
type Support struct {
	HandlerID string
	Binding   fstrips.Binding
	Tuples    []problem.TupleIdx
}

// NovelTuple pairs a newly achievable tuple with its Support, the unit
// SeekNovelTuples produces per layer.
type NovelTuple struct {
	Tuple   problem.TupleIdx
	Support Support
}

// Handler models one (action schema, effect) pair (§3 "CSP Handler").
type Handler struct {
	id          string
	action      *fstrips.Action
	effectIdx   int
	effect      fstrips.Effect
	idx         *problem.Index
	approximate bool

	state HandlerState

	paramDomains      [][]problem.ObjectIdx
	preconditionAtoms []fstrips.AtomicFormula
	staticAtoms       []fstrips.AtomicFormula // atoms with no free parameter references

	tables map[problem.SymbolIdx]*ExtensionalTable

	staticAchievedTuple problem.TupleIdx
	staticSupport       []problem.TupleIdx

	useNovelty bool
}

// NewHandler builds a Handler in the Created state for action's effect at
// effectIdx. id should be unique per (action, effectIdx) pair across the
// planner's handler set: it becomes Support.HandlerID, which the relaxed-
// plan extractor uses to tell action instances apart.
func NewHandler(id string, action *fstrips.Action, effectIdx int, idx *problem.Index, approximate bool) (*Handler, error) {
	effect := action.Effects[effectIdx]
	if effect.Delete {
		return nil, ErrDeleteEffectHandler
	}
	return &Handler{
		id:          id,
		action:      action,
		effectIdx:   effectIdx,
		effect:      effect,
		idx:         idx,
		approximate: approximate,
		state:       StateCreated,
		tables:      map[problem.SymbolIdx]*ExtensionalTable{},
	}, nil
}

// State reports the handler's current lifecycle stage.
func (h *Handler) State() HandlerState { return h.state }

// EnableNoveltyConstraint turns on the optional per-layer novelty
// constraint (§4.D.2, `use_novelty_constraint`): a binding is only
// accepted if at least one of its (non-negated) precondition atoms
// resolves to a tuple that was newly reached in the immediately
// preceding layer, pruning re-derivations that depend only on stale
// support. Must be called before Propagate; has no effect on handlers
// with no precondition atoms (an unconditional effect is always novel
// by virtue of its own achieved-tuple check).
func (h *Handler) EnableNoveltyConstraint() { h.useNovelty = true }

// ID returns this handler's identity string.
func (h *Handler) ID() string { return h.id }

// Index performs variable/constraint registration (§4.D items 1-2):
// builds each parameter's object domain, splits the action's precondition
// atoms into those with and without free parameter references, and
// allocates one ExtensionalTable per distinct binary (arity-2) predicate
// symbol appearing in a non-static precondition atom.
func (h *Handler) Index() error {
	if h.state != StateCreated {
		return fmt.Errorf("%w: Index called in state %s", ErrWrongState, h.state)
	}

	h.paramDomains = make([][]problem.ObjectIdx, len(h.action.ParamSlots))
	for i, t := range h.action.ParamTypes {
		h.paramDomains[i] = h.idx.ObjectsOfType(t)
	}

	for _, atom := range h.action.Precondition.AllAtoms() {
		if isStaticAtom(atom) {
			h.staticAtoms = append(h.staticAtoms, atom)
		} else {
			h.preconditionAtoms = append(h.preconditionAtoms, atom)
			if h.idx.IsPredicate(atom.Symbol) && len(atom.Args) == 2 {
				if _, ok := h.tables[atom.Symbol]; !ok {
					h.tables[atom.Symbol] = NewExtensionalTable(h.idx.NumObjects(), atom.Symbol)
				}
			}
		}
	}

	h.state = StateIndexed
	return nil
}

// isStaticAtom reports whether every argument of atom is already a ground
// constant, i.e. it never depends on an action parameter binding.
func isStaticAtom(atom fstrips.AtomicFormula) bool {
	for _, a := range atom.Args {
		switch a.(type) {
		case fstrips.ObjectConstant, fstrips.Constant:
		default:
			return false
		}
	}
	return true
}

// Propagate runs the fixed-point consistency check (§4.D item 3) and
// transitions the handler into Failed, Static, or Active.
//
// Failed: some parameter has an empty object domain, making the schema
// permanently ungroundable (an empty type). Static: the effect's lhs has
// no free parameter references and the effect is predicative, so the
// achieved tuple is a single fixed TupleIdx known once and for all
// (§4.D's "lhs has no free variables" edge case). Active: the normal
// case, in which SeekNovelTuples enumerates parameter bindings per layer.
func (h *Handler) Propagate() error {
	if h.state != StateIndexed {
		return fmt.Errorf("%w: Propagate called in state %s", ErrWrongState, h.state)
	}

	for _, dom := range h.paramDomains {
		if len(dom) == 0 {
			h.state = StateFailed
			return nil
		}
	}

	if lhsGround(h.effect.LHS) && !h.effect.Delete && h.idx.IsPredicate(h.effect.LHS.Symbol) {
		h.staticAchievedTuple = h.achievedTuple(fstrips.NewBinding(nil))
		for _, atom := range h.staticAtoms {
			if t, ok := h.atomTuple(atom, fstrips.NewBinding(nil)); ok {
				h.staticSupport = append(h.staticSupport, t)
			}
		}
		h.state = StateStatic
		return nil
	}

	h.state = StateActive
	return nil
}

func lhsGround(lhs fstrips.NestedTerm) bool {
	for _, a := range lhs.Args {
		switch a.(type) {
		case fstrips.ObjectConstant, fstrips.Constant:
		default:
			return false
		}
	}
	return true
}

// atomTuple resolves atom's ground TupleIdx under b. Predicate tuples are
// keyed on their arguments alone (the interning scheme in problem.NewIndex
// never folds the boolean "true" value into the key); functional symbols
// would instead need the value appended, but AtomicFormula only ever
// wraps predicate symbols (functional comparisons go through
// ComparisonFormula, §4.C).
func (h *Handler) atomTuple(atom fstrips.AtomicFormula, b fstrips.Binding) (problem.TupleIdx, bool) {
	args := make([]problem.Value, len(atom.Args))
	for i, a := range atom.Args {
		args[i] = a.Eval(b, state.State{}, h.idx)
	}
	t := h.idx.ToIndexIfRegistered(atom.Symbol, args)
	return t, t >= 0
}

// achievedTuple resolves this handler's effect to the TupleIdx it
// achieves under b: for a predicative effect, the key is the lhs's
// arguments alone; for a functional effect, the rhs value is appended
// (§4.D item 4).
func (h *Handler) achievedTuple(b fstrips.Binding) problem.TupleIdx {
	lhsArgs := make([]problem.Value, len(h.effect.LHS.Args))
	for i, a := range h.effect.LHS.Args {
		lhsArgs[i] = a.Eval(b, state.State{}, h.idx)
	}
	if h.idx.IsPredicate(h.effect.LHS.Symbol) {
		return h.idx.ToIndex(h.effect.LHS.Symbol, lhsArgs)
	}
	rhs := h.effect.RHS.Eval(b, state.State{}, h.idx)
	return h.idx.ToIndex(h.effect.LHS.Symbol, append(lhsArgs, rhs))
}

// SeekNovelTuples is seek_novel_tuples(layer) (§4.D, §4.G): refreshes
// this handler's extensional tables against layer, enumerates every
// parameter binding whose precondition holds, and returns one NovelTuple
// per achieved tuple not already present in layer. In approximate mode
// enumeration stops at the first consistent binding per call (a speed
// knob that trades completeness of the achiever set for per-layer cost,
// §4.D "Approximate mode").
func (h *Handler) SeekNovelTuples(layer *state.Layer) []NovelTuple {
	if h.state != StateActive && h.state != StateStatic {
		return nil
	}
	for _, t := range h.tables {
		t.Refresh(layer, h.idx)
	}

	if h.state == StateStatic && layer.Contains(h.staticAchievedTuple) {
		return nil
	}

	var out []NovelTuple
	h.enumerate(0, fstrips.NewBinding(nil), layer, &out)
	return out
}

func (h *Handler) enumerate(i int, b fstrips.Binding, layer *state.Layer, out *[]NovelTuple) {
	if h.approximate && len(*out) > 0 {
		return
	}
	if i == len(h.action.ParamSlots) {
		h.tryBinding(b, layer, out)
		return
	}
	for _, obj := range h.paramDomains[i] {
		h.enumerate(i+1, b.With(h.action.ParamSlots[i], problem.Value(obj)), layer, out)
		if h.approximate && len(*out) > 0 {
			return
		}
	}
}

func (h *Handler) tryBinding(b fstrips.Binding, layer *state.Layer, out *[]NovelTuple) {
	support, ok := h.checkPrecondition(b, layer)
	if !ok {
		return
	}

	achieved := h.achievedTuple(b)
	if layer.Contains(achieved) {
		return
	}

	*out = append(*out, NovelTuple{
		Tuple: achieved,
		Support: Support{
			HandlerID: h.id,
			Binding:   b,
			Tuples:    support,
		},
	})
}

// checkPrecondition evaluates every precondition atom against layer
// (positive atoms require tuple membership; negated atoms are trivially
// satisfied, the standard delete-relaxation treatment of negative
// preconditions) and, on success, returns the support tuple list.
func (h *Handler) checkPrecondition(b fstrips.Binding, layer *state.Layer) ([]problem.TupleIdx, bool) {
	var support []problem.TupleIdx
	frontierHit := false

	for _, atom := range h.staticAtoms {
		if atom.Negated {
			continue
		}
		t, ok := h.atomTuple(atom, b)
		if !ok || !layer.Contains(t) {
			return nil, false
		}
		support = append(support, t)
		frontierHit = frontierHit || layer.InFrontier(t)
	}

	for _, atom := range h.preconditionAtoms {
		if atom.Negated {
			continue
		}
		if table, ok := h.tables[atom.Symbol]; ok && len(atom.Args) == 2 {
			a0 := problem.ObjectIdx(atom.Args[0].Eval(b, state.State{}, h.idx))
			a1 := problem.ObjectIdx(atom.Args[1].Eval(b, state.State{}, h.idx))
			if !table.Contains(a0, a1) {
				return nil, false
			}
			t, ok := h.atomTuple(atom, b)
			if !ok {
				return nil, false
			}
			support = append(support, t)
			frontierHit = frontierHit || layer.InFrontier(t)
			continue
		}
		t, ok := h.atomTuple(atom, b)
		if !ok || !layer.Contains(t) {
			return nil, false
		}
		support = append(support, t)
		frontierHit = frontierHit || layer.InFrontier(t)
	}

	if h.useNovelty && len(support) > 0 && !frontierHit {
		return nil, false
	}

	return support, true
}
