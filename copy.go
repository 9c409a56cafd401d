package wfa

import (
	"github.com/bits-and-blooms/bitset"
)

// Copy Returns a copy of a with compact state numbering. The copy has a
// SingleHistory mapping its states to the states of a.
func Copy[L, W comparable](a *Automaton[L, W]) *Automaton[L, W] {
	res := New(a.ctx)
	copyInto(a, res, nil, nil)
	return res
}

// copyInto copies the states of a in keep, all of them when keep is nil, and
// the transitions between them into the empty automaton res, mapping the
// weights through conv when it is not nil. It returns the state map.
func copyInto[L, W, V comparable](a *Automaton[L, W], res *Automaton[L, V], keep *bitset.BitSet, conv func(W) V) []State {
	history := NewSingleHistory()
	stateMap := fill(a.MaxState(), NullState)
	stateMap[pre], stateMap[post] = pre, post
	for s := range a.States() {
		if keep != nil && !keep.Test(uint(s)) {
			continue
		}
		ns := res.AddState()
		stateMap[s] = ns
		history.AddState(ns, s)
		if name, ok := a.names[s]; ok {
			res.SetStateName(ns, name)
		}
	}
	for t := range a.AllTransitions() {
		tr := &a.transitions[t]
		src, dst := stateMap[tr.src], stateMap[tr.dst]
		if src == NullState || dst == NullState {
			continue
		}
		var w V
		if conv != nil {
			w = conv(tr.weight)
		} else {
			w = any(tr.weight).(V)
		}
		res.NewTransition(src, dst, tr.label, w)
	}
	res.SetHistory(history)
	res.SetName(a.name)
	res.SetDesc(a.desc)
	return stateMap
}
