package wfa

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// AccessibleStates Returns the states reachable from Pre, Pre included.
func AccessibleStates[L, W comparable](a *Automaton[L, W]) *bitset.BitSet {
	return reachable(a, pre, a.AllOut, a.DstOf)
}

// CoaccessibleStates Returns the states from which Post is reachable, Post included.
func CoaccessibleStates[L, W comparable](a *Automaton[L, W]) *bitset.BitSet {
	return reachable(a, post, a.AllIn, a.SrcOf)
}

// UsefulStates Returns the states both accessible and coaccessible.
func UsefulStates[L, W comparable](a *Automaton[L, W]) *bitset.BitSet {
	live := AccessibleStates(a)
	live.InPlaceIntersection(CoaccessibleStates(a))
	return live
}

func reachable[L, W comparable](a *Automaton[L, W], from State,
	next func(State) []Transition, endpoint func(Transition) State) *bitset.BitSet {

	live := bitset.New(uint(a.MaxState()))
	workList := make([]State, 0)
	live.Set(uint(from))
	workList = append(workList, from)

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, t := range next(s) {
			e := endpoint(t)
			if !live.Test(uint(e)) {
				live.Set(uint(e))
				workList = append(workList, e)
			}
		}
	}
	return live
}

func containsAll[L, W comparable](a *Automaton[L, W], set *bitset.BitSet) bool {
	for s := range a.States() {
		if !set.Test(uint(s)) {
			return false
		}
	}
	return true
}

// IsAccessible Returns true if every state of a is reachable from an initial state.
func IsAccessible[L, W comparable](a *Automaton[L, W]) bool {
	return containsAll(a, AccessibleStates(a))
}

// IsCoaccessible Returns true if a final state is reachable from every state of a.
func IsCoaccessible[L, W comparable](a *Automaton[L, W]) bool {
	return containsAll(a, CoaccessibleStates(a))
}

// IsTrim Returns true if a is accessible and coaccessible.
func IsTrim[L, W comparable](a *Automaton[L, W]) bool {
	return containsAll(a, UsefulStates(a))
}

// IsEmpty Returns true if a has no path from an initial state to a final state.
func IsEmpty[L, W comparable](a *Automaton[L, W]) bool {
	return !AccessibleStates(a).Test(uint(post))
}

func requireAccessible[L, W comparable](a *Automaton[L, W], op string) error {
	if !IsAccessible(a) {
		return errors.Wrap(ErrNotAccessible, op)
	}
	return nil
}

// Accessible Returns a copy of the accessible part of a.
func Accessible[L, W comparable](a *Automaton[L, W]) *Automaton[L, W] {
	res := New(a.ctx)
	copyInto(a, res, AccessibleStates(a), nil)
	return res
}

// Coaccessible Returns a copy of the coaccessible part of a.
func Coaccessible[L, W comparable](a *Automaton[L, W]) *Automaton[L, W] {
	res := New(a.ctx)
	copyInto(a, res, CoaccessibleStates(a), nil)
	return res
}

// Trim Returns a copy of the useful part of a.
func Trim[L, W comparable](a *Automaton[L, W]) *Automaton[L, W] {
	res := New(a.ctx)
	copyInto(a, res, UsefulStates(a), nil)
	return res
}
