package wfa

import (
	"slices"
)

// Merge Returns the quotient of a by the partition classes: every class
// becomes one state. The class of Pre (resp. Post) must be {Pre} (resp.
// {Post}). Transitions are taken from the first state of each class, so
// classes must be a congruence for the result to be meaningful.
func Merge[L, W comparable](a *Automaton[L, W], classes [][]State, keepHistory bool) *Automaton[L, W] {
	res := New(a.ctx)
	classOf := fill(a.MaxState(), -1)
	resState := make([]State, len(classes))

	for c, members := range classes {
		if len(members) == 0 {
			continue
		}
		for _, s := range members {
			classOf[s] = c
		}
		switch members[0] {
		case pre:
			resState[c] = pre
		case post:
			resState[c] = post
		default:
			resState[c] = res.AddState()
			if first := slices.Min(members); a.HasExplicitName(first) {
				res.SetStateName(resState[c], a.StateName(first))
			}
		}
	}

	for c, members := range classes {
		if len(members) == 0 {
			continue
		}
		src := resState[c]
		for _, t := range a.AllOut(members[0]) {
			dst := resState[classOf[a.DstOf(t)]]
			res.AddTransition(src, dst, a.LabelOf(t), a.WeightOf(t))
		}
	}

	if keepHistory {
		history := NewPartitionHistory()
		for c, members := range classes {
			if len(members) == 0 || resState[c] == pre || resState[c] == post {
				continue
			}
			history.AddState(resState[c], slices.Sorted(slices.Values(members)))
		}
		res.SetHistory(history)
	}
	res.SetName(a.name)
	return res
}
