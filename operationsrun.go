package wfa

import (
	"github.com/pkg/errors"
)

// Eval Returns the weight of word in the proper automaton a: the sum, over the
// paths labelled by word, of the product of their weights.
func Eval[L, W comparable](a *Automaton[L, W], word []L) (W, error) {
	ws := a.ctx.Weights
	if !IsProper(a) {
		return ws.Zero(), errors.Wrap(ErrNotProper, "eval")
	}

	current := make(map[State]W)
	for t := range a.InitialTransitions() {
		current[a.DstOf(t)] = a.WeightOf(t)
	}
	for _, l := range word {
		next := make(map[State]W, len(current))
		for s, w := range current {
			for t := range a.OutLabel(s, l) {
				dst := a.DstOf(t)
				v := ws.Mul(w, a.WeightOf(t))
				if old, ok := next[dst]; ok {
					v = ws.Add(old, v)
				}
				next[dst] = v
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}

	res := ws.Zero()
	for s, w := range current {
		if a.IsFinal(s) {
			res = ws.Add(res, ws.Mul(w, a.FinalWeight(s)))
		}
	}
	return res, nil
}

// Run Returns true if the letter automaton a gives s a non-zero weight.
func Run[W comparable](a *Automaton[rune, W], s string) bool {
	w, err := Eval(a, []rune(s))
	return err == nil && !a.ctx.Weights.IsZero(w)
}
