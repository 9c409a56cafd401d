package wfa

// TransposeHere reverses every transition of a, exchanging initial and final weights.
func TransposeHere[L, W comparable](a *Automaton[L, W]) {
	swap := func(s State) State {
		switch s {
		case pre:
			return post
		case post:
			return pre
		}
		return s
	}
	for i := range a.transitions {
		tr := &a.transitions[i]
		if tr.src == NullState {
			continue
		}
		tr.src, tr.dst = swap(tr.dst), swap(tr.src)
	}
	for s := range a.states {
		if a.HasState(State(s)) {
			st := &a.states[s]
			st.succ, st.pred = st.pred, st.succ
		}
	}
	a.states[pre], a.states[post] = a.states[post], a.states[pre]
}

// Transpose Returns the transposed copy of a.
func Transpose[L, W comparable](a *Automaton[L, W]) *Automaton[L, W] {
	res := Copy(a)
	TransposeHere(res)
	return res
}
