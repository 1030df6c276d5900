// Package state defines the concrete planning State and the monotonically
// growing Relaxed Layer used by the RPG machinery (§3, §4.B).
//
// State is a total, immutable function from problem.VariableIdx to
// problem.Value; successors are always fresh States, never in-place
// mutations, matching the teacher's Clone()-on-write convention
// (core/methods_clone.go).
package state

import (
	"hash/fnv"

	"github.com/katalvlaran/fsplanner/problem"
)

// State is a fixed-size assignment of values to every state variable.
// Hashable and comparable by value; once constructed it is never mutated.
type State struct {
	values []problem.Value
}

// New builds a State from a dense value vector, indexed by VariableIdx.
// The caller must supply exactly one value per variable in the Problem
// Index; New does not validate domain membership (that is the loader's
// job, an out-of-scope external collaborator per spec.md §1).
func New(values []problem.Value) State {
	cp := make([]problem.Value, len(values))
	copy(cp, values)
	return State{values: cp}
}

// Get returns the value assigned to variable v.
func (s State) Get(v problem.VariableIdx) problem.Value {
	return s.values[v]
}

// NumVariables returns the number of variables this state assigns.
func (s State) NumVariables() int { return len(s.values) }

// With returns a fresh State identical to s except variable v is set to
// val. s itself is never mutated.
func (s State) With(v problem.VariableIdx, val problem.Value) State {
	cp := make([]problem.Value, len(s.values))
	copy(cp, s.values)
	cp[v] = val
	return State{values: cp}
}

// Equal reports whether two states assign identical values to every
// variable.
func (s State) Equal(other State) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for i, v := range s.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// Hash is a pure function of s's values (FNV-1a over the value vector),
// suitable as a map/closed-set key for the search harness (§4.B, §8
// property 6: determinism).
func (s State) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, v := range s.values {
		u := uint64(v)
		buf[0] = byte(u)
		buf[1] = byte(u >> 8)
		buf[2] = byte(u >> 16)
		buf[3] = byte(u >> 24)
		buf[4] = byte(u >> 32)
		buf[5] = byte(u >> 40)
		buf[6] = byte(u >> 48)
		buf[7] = byte(u >> 56)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Key returns a value usable as a Go map key, identical for equal states.
// Go slices aren't comparable, so the search harness's closed set keys on
// Key() (a string) rather than State itself.
func (s State) Key() string {
	return string(s.rawBytes())
}

func (s State) rawBytes() []byte {
	buf := make([]byte, len(s.values)*8)
	for i, v := range s.values {
		u := uint64(v)
		o := i * 8
		buf[o] = byte(u)
		buf[o+1] = byte(u >> 8)
		buf[o+2] = byte(u >> 16)
		buf[o+3] = byte(u >> 24)
		buf[o+4] = byte(u >> 32)
		buf[o+5] = byte(u >> 40)
		buf[o+6] = byte(u >> 48)
		buf[o+7] = byte(u >> 56)
	}
	return buf
}
