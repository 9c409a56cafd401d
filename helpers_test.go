package wfa

import (
	"testing"

	"go.uber.org/goleak"

	"github.com/geange/wfa/labelset"
	"github.com/geange/wfa/weightset"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func boolContext(alphabet string) Context[rune, bool] {
	return Context[rune, bool]{Labels: labelset.NewLetters(alphabet), Weights: weightset.B{}}
}

func nullableBoolContext(alphabet string) Context[rune, bool] {
	return Context[rune, bool]{Labels: labelset.NewNullableLetters(alphabet), Weights: weightset.B{}}
}

func zContext(alphabet string) Context[rune, int64] {
	return Context[rune, int64]{Labels: labelset.NewLetters(alphabet), Weights: weightset.Z{}}
}

func nullableZContext(alphabet string) Context[rune, int64] {
	return Context[rune, int64]{Labels: labelset.NewNullableLetters(alphabet), Weights: weightset.Z{}}
}

type arc[W comparable] struct {
	src, dst int
	label    rune
	weight   W
}

// build creates an automaton with n states, numbered by creation order, and
// the given transitions. Initial and final weights are given by state index.
func build[W comparable](ctx Context[rune, W], n int, initials, finals map[int]W, arcs []arc[W]) (*Automaton[rune, W], []State) {
	a := New(ctx)
	states := make([]State, n)
	for i := range states {
		states[i] = a.AddState()
	}
	for i, w := range initials {
		a.SetInitial(states[i], w)
	}
	for i, w := range finals {
		a.SetFinal(states[i], w)
	}
	for _, x := range arcs {
		a.AddTransition(states[x.src], states[x.dst], x.label, x.weight)
	}
	return a, states
}

// mod3 recognises the words over {a,b} with a number of a's equal to 2 modulo 3.
func mod3() (*Automaton[rune, bool], []State) {
	return build(boolContext("ab"), 3,
		map[int]bool{0: true}, map[int]bool{2: true},
		[]arc[bool]{
			{0, 1, 'a', true}, {1, 2, 'a', true}, {2, 0, 'a', true},
			{0, 0, 'b', true}, {1, 1, 'b', true}, {2, 2, 'b', true},
		})
}

// words Returns every word over alphabet of length at most n.
func words(alphabet string, n int) []string {
	res := []string{""}
	last := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range last {
			for _, l := range alphabet {
				next = append(next, w+string(l))
			}
		}
		res = append(res, next...)
		last = next
	}
	return res
}

func mustEval[W comparable](t *testing.T, a *Automaton[rune, W], word string) W {
	t.Helper()
	w, err := Eval(a, []rune(word))
	if err != nil {
		t.Fatalf("eval %q: %v", word, err)
	}
	return w
}
