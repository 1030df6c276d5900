package fstrips

import "github.com/katalvlaran/fsplanner/problem"

// Binding assigns values to bound-variable slots (action parameters and
// existential quantifiers, all drawn from one global slot-id space
// assigned when an Action/Formula is constructed). A slot absent from
// Values is unbound.
//
// Binding is the parameter binding of §4.C: Term.Bind(parameter_binding)
// materializes a partially or fully ground clone of an AST node.
type Binding struct {
	Values map[int]problem.Value
}

// NewBinding builds a Binding from a slot→value map. A nil map is a valid
// empty Binding (every slot unbound).
func NewBinding(values map[int]problem.Value) Binding {
	if values == nil {
		values = map[int]problem.Value{}
	}
	return Binding{Values: values}
}

// Get returns the value bound to slot, if any.
func (b Binding) Get(slot int) (problem.Value, bool) {
	v, ok := b.Values[slot]
	return v, ok
}

// With returns a new Binding identical to b but with slot additionally
// bound to val (or overridden, if already bound). b is never mutated.
func (b Binding) With(slot int, val problem.Value) Binding {
	out := make(map[int]problem.Value, len(b.Values)+1)
	for k, v := range b.Values {
		out[k] = v
	}
	out[slot] = val
	return Binding{Values: out}
}

// Complete reports whether every slot in slots is bound.
func (b Binding) Complete(slots []int) bool {
	for _, s := range slots {
		if _, ok := b.Values[s]; !ok {
			return false
		}
	}
	return true
}
