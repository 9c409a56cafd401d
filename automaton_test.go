package wfa

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomatonStates(t *testing.T) {
	t.Run("pre and post", func(t *testing.T) {
		a := New(zContext("ab"))
		assert.Equal(t, 0, a.NumStates())
		assert.Equal(t, 2, a.NumAllStates())
		assert.True(t, a.HasState(a.Pre()))
		assert.True(t, a.HasState(a.Post()))
		assert.Empty(t, slices.Collect(a.States()))
		assert.Equal(t, []State{a.Pre(), a.Post()}, slices.Collect(a.AllStates()))
	})

	t.Run("free list reuse", func(t *testing.T) {
		a := New(zContext("ab"))
		s0 := a.AddState()
		s1 := a.AddState()
		a.NewTransition(s0, s1, 'a', 2)
		a.SetInitial(s1, 3)

		a.DelState(s1)
		assert.False(t, a.HasState(s1))
		assert.Equal(t, 1, a.NumStates())
		assert.Equal(t, 0, a.NumAllTransitions())
		assert.Empty(t, a.AllOut(s0))

		s2 := a.AddState()
		assert.Equal(t, s1, s2)
		assert.True(t, a.HasState(s2))
		assert.Empty(t, a.AllIn(s2))
		assert.Empty(t, a.AllOut(s2))
	})

	t.Run("names", func(t *testing.T) {
		a := New(zContext("ab"))
		s := a.AddState()
		assert.Equal(t, "0", a.StateName(s))
		assert.Equal(t, "_", a.StateName(a.Pre()))
		a.SetStateName(s, "start")
		assert.Equal(t, "start", a.StateName(s))
		assert.Equal(t, s, a.StateByName("start"))
		assert.Equal(t, NullState, a.StateByName("missing"))
		a.DelState(s)
		assert.Equal(t, NullState, a.StateByName("start"))
	})
}

func TestAutomatonTransitions(t *testing.T) {
	a := New(zContext("ab"))
	p, q := a.AddState(), a.AddState()

	t.Run("new with zero weight", func(t *testing.T) {
		assert.Equal(t, NullTransition, a.NewTransition(p, q, 'a', 0))
		assert.False(t, a.HasTransition(p, q, 'a'))
	})

	t.Run("add accumulates", func(t *testing.T) {
		assert.Equal(t, int64(2), a.AddTransition(p, q, 'a', 2))
		assert.Equal(t, int64(5), a.AddTransition(p, q, 'a', 3))
		tr := a.GetTransition(p, q, 'a')
		require.NotEqual(t, NullTransition, tr)
		assert.Equal(t, int64(5), a.WeightOf(tr))
		assert.Equal(t, int64(0), a.AddTransition(p, q, 'a', -5))
		assert.False(t, a.HasTransition(p, q, 'a'))
	})

	t.Run("set overwrites", func(t *testing.T) {
		tr := a.SetTransition(p, q, 'b', 4)
		assert.Equal(t, tr, a.SetTransition(p, q, 'b', 7))
		assert.Equal(t, int64(7), a.WeightOf(tr))
		assert.Equal(t, NullTransition, a.SetTransition(p, q, 'b', 0))
		assert.False(t, a.IsLiveTransition(tr))
	})

	t.Run("initial and final", func(t *testing.T) {
		a.SetInitial(p, 2)
		a.AddFinal(q, 3)
		a.AddFinal(q, 1)
		assert.True(t, a.IsInitial(p))
		assert.False(t, a.IsInitial(q))
		assert.Equal(t, int64(2), a.InitialWeight(p))
		assert.Equal(t, int64(4), a.FinalWeight(q))
		assert.Equal(t, int64(0), a.FinalWeight(p))
		assert.Equal(t, 1, a.NumInitials())
		assert.Equal(t, 1, a.NumFinals())

		a.NewTransition(p, q, 'a', 1)
		assert.Equal(t, 1, a.NumTransitions())
		assert.Equal(t, 3, a.NumAllTransitions())
		assert.Len(t, slices.Collect(a.Out(q)), 0)
		assert.Len(t, a.AllOut(q), 1)

		a.UnsetInitial(p)
		a.UnsetFinal(q)
		assert.Equal(t, 0, a.NumInitials())
		assert.Equal(t, 0, a.NumFinals())
	})

	t.Run("delete between states", func(t *testing.T) {
		a.SetTransition(p, q, 'a', 1)
		a.SetTransition(p, q, 'b', 1)
		a.SetTransition(q, p, 'b', 1)
		a.DelTransitions(p, q)
		assert.Empty(t, slices.Collect(a.OutIn(p, q)))
		assert.True(t, a.HasTransition(q, p, 'b'))
	})
}

type tripleKey struct {
	src, dst State
	label    rune
}

// The store must agree with a plain map after any sequence of edits.
func TestAutomatonInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	a := New(zContext("abc"))
	model := make(map[tripleKey]int64)
	live := []State{}

	labels := []rune("abc")
	pick := func() State { return live[rnd.IntN(len(live))] }

	for step := 0; step < 2000; step++ {
		switch op := rnd.IntN(10); {
		case op == 0 || len(live) < 2:
			live = append(live, a.AddState())
		case op == 1 && len(live) > 2:
			i := rnd.IntN(len(live))
			s := live[i]
			a.DelState(s)
			live = slices.Delete(live, i, i+1)
			for k := range model {
				if k.src == s || k.dst == s {
					delete(model, k)
				}
			}
		case op < 5:
			k := tripleKey{pick(), pick(), labels[rnd.IntN(3)]}
			w := int64(rnd.IntN(5) - 2)
			got := a.AddTransition(k.src, k.dst, k.label, w)
			sum := model[k] + w
			assert.Equal(t, sum, got)
			if sum == 0 {
				delete(model, k)
			} else {
				model[k] = sum
			}
		case op < 8:
			k := tripleKey{pick(), pick(), labels[rnd.IntN(3)]}
			w := int64(rnd.IntN(3))
			a.SetTransition(k.src, k.dst, k.label, w)
			if w == 0 {
				delete(model, k)
			} else {
				model[k] = w
			}
		default:
			k := tripleKey{pick(), pick(), labels[rnd.IntN(3)]}
			a.DelTransitionLabel(k.src, k.dst, k.label)
			delete(model, k)
		}

		if step%50 != 0 {
			continue
		}
		require.Equal(t, len(live), a.NumStates())
		require.Equal(t, len(model), a.NumTransitions())
		for k, w := range model {
			tr := a.GetTransition(k.src, k.dst, k.label)
			require.True(t, a.IsLiveTransition(tr))
			require.Equal(t, w, a.WeightOf(tr))
		}
		for tr := range a.AllTransitions() {
			require.NotZero(t, a.WeightOf(tr))
			require.Contains(t, a.AllOut(a.SrcOf(tr)), tr)
			require.Contains(t, a.AllIn(a.DstOf(tr)), tr)
		}
	}
}

func TestCopyAndTranspose(t *testing.T) {
	a, s := build(zContext("ab"), 2,
		map[int]int64{0: 2}, map[int]int64{1: 3},
		[]arc[int64]{{0, 1, 'a', 5}, {1, 1, 'b', 7}})
	a.SetStateName(s[0], "p")

	c := Copy(a)
	assert.Equal(t, a.NumStates(), c.NumStates())
	assert.Equal(t, a.NumAllTransitions(), c.NumAllTransitions())
	assert.Equal(t, "p", c.StateName(c.StateByName("p")))
	h, ok := c.History().(*SingleHistory)
	require.True(t, ok)
	assert.Equal(t, s[1], h.GetState(c.StateByName("p")+1))

	tr := Transpose(a)
	for _, w := range []string{"a", "ab", "abb"} {
		rev := []rune(w)
		slices.Reverse(rev)
		assert.Equal(t, mustEval(t, a, w), mustEval(t, tr, string(rev)), w)
	}
	assert.Equal(t, int64(3), tr.InitialWeight(tr.StateByName("p")+1))
	assert.Equal(t, int64(2), tr.FinalWeight(tr.StateByName("p")))
}
