package wfa

import (
	"slices"
)

// StateSetKey a set of states usable as a HashMap key.
type StateSetKey interface {
	Hashable

	GetArray() []State

	Size() int
}

var (
	_ StateSetKey = &StateSet{}
	_ StateSetKey = &FrozenStateSet{}
)

// StateSet a mutable multiset of states, frozen into a FrozenStateSet once complete.
type StateSet struct {
	inner       map[State]int
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet() *StateSet {
	return &StateSet{
		inner: make(map[State]int),
	}
}

// Hash does not depend on the multiplicities, only on the support.
func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = uint64(len(s.inner))
	for k := range s.inner {
		s.hashCode += uint64(mix(int(k)))
	}
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	o, ok := other.(StateSetKey)
	if !ok || o.Size() != s.Size() {
		return false
	}
	for _, v := range o.GetArray() {
		if _, ok := s.inner[v]; !ok {
			return false
		}
	}
	return true
}

// GetArray Returns the support, sorted.
func (s *StateSet) GetArray() []State {
	keys := make([]State, 0, len(s.inner))
	for k := range s.inner {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *StateSet) Size() int {
	return len(s.inner)
}

func (s *StateSet) Contains(state State) bool {
	_, ok := s.inner[state]
	return ok
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
}

func (s *StateSet) Incr(state State) {
	s.inner[state]++
	if s.inner[state] == 1 {
		s.keyChanged()
	}
}

func (s *StateSet) Decr(state State) {
	count, ok := s.inner[state]
	if !ok {
		return
	}
	if count <= 1 {
		delete(s.inner, state)
		s.keyChanged()
	} else {
		s.inner[state] = count - 1
	}
}

// Freeze Returns an immutable copy of the support of s, bound to the given state.
func (s *StateSet) Freeze(state State) *FrozenStateSet {
	return NewFrozenStateSet(s.GetArray(), state, s.Hash())
}

// FrozenStateSet a sorted immutable set of states with a precomputed hash.
type FrozenStateSet struct {
	values   []State
	state    State
	hashCode uint64
}

// NewFrozenStateSet values must be sorted and hashCode consistent with StateSet.Hash.
func NewFrozenStateSet(values []State, state State, hashCode uint64) *FrozenStateSet {
	return &FrozenStateSet{values: values, state: state, hashCode: hashCode}
}

// frozenOf builds the frozen set of the sorted values, with the hash of StateSet.
func frozenOf(values []State, state State) *FrozenStateSet {
	h := uint64(len(values))
	for _, v := range values {
		h += uint64(mix(int(v)))
	}
	return NewFrozenStateSet(values, state, h)
}

func (f *FrozenStateSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenStateSet) Equals(other Hashable) bool {
	switch o := other.(type) {
	case *FrozenStateSet:
		if f == nil || o == nil {
			return f == o
		}
		return f.hashCode == o.hashCode && slices.Equal(f.values, o.values)
	case *StateSet:
		if f == nil || o == nil {
			return f == nil && o == nil
		}
		return o.Equals(f)
	}
	return false
}

func (f *FrozenStateSet) GetArray() []State {
	return f.values
}

func (f *FrozenStateSet) Size() int {
	return len(f.values)
}

// State Returns the state bound to the set.
func (f *FrozenStateSet) State() State {
	return f.state
}
