package wfa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doubling gives weight 2^n to a^n.
func doubling() *Automaton[rune, int64] {
	a, _ := build(zContext("a"), 1,
		map[int]int64{0: 1}, map[int]int64{0: 1},
		[]arc[int64]{{0, 0, 'a', 2}})
	return a
}

// twoCounters gives weight 2^n + 1 to a^n. Its weighted subsets never repeat.
func twoCounters() *Automaton[rune, int64] {
	a, _ := build(zContext("a"), 2,
		map[int]int64{0: 1, 1: 1}, map[int]int64{0: 1, 1: 1},
		[]arc[int64]{{0, 0, 'a', 2}, {1, 1, 'a', 1}})
	return a
}

func requireDeterminizedIsomorphic[W comparable](t *testing.T, a *Automaton[rune, W]) {
	t.Helper()
	d, truncated, err := Explore(a, -1, nil)
	require.NoError(t, err)
	assert.False(t, truncated)
	ok, err := AreIsomorphic(Accessible(a), d)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWeightedDeterminizeSequential(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		a, s := mod3()
		extra := a.AddState()
		a.NewTransition(extra, s[0], 'a', true)
		requireDeterminizedIsomorphic(t, a)
	})

	t.Run("weighted chain", func(t *testing.T) {
		a, _ := build(zContext("a"), 2,
			map[int]int64{0: 1}, map[int]int64{1: 1},
			[]arc[int64]{{0, 1, 'a', 2}})
		requireDeterminizedIsomorphic(t, a)
	})

	t.Run("weighted loop", func(t *testing.T) {
		requireDeterminizedIsomorphic(t, doubling())
	})

	t.Run("weighted cycle", func(t *testing.T) {
		a, s := build(zContext("ab"), 3,
			map[int]int64{0: 3}, map[int]int64{2: 5},
			[]arc[int64]{
				{0, 1, 'a', 2}, {1, 1, 'b', 3},
				{1, 2, 'a', -1}, {2, 0, 'b', 4},
			})
		extra := a.AddState()
		a.NewTransition(extra, s[1], 'b', 7)
		requireDeterminizedIsomorphic(t, a)

		d, err := WeightedDeterminize(a)
		require.NoError(t, err)
		for _, w := range words("ab", 6) {
			assert.Equal(t, mustEval(t, a, w), mustEval(t, d, w), w)
		}
	})
}

func TestWeightedDeterminizeCounts(t *testing.T) {
	a, _ := build(zContext("ab"), 3,
		map[int]int64{0: 1}, map[int]int64{2: 1},
		[]arc[int64]{{0, 0, 'a', 1}, {0, 0, 'b', 1}, {0, 1, 'a', 1}, {1, 2, 'b', 1}})

	d, truncated, err := Explore(a, -1, nil)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, 3, d.NumStates())
	assert.True(t, IsDeterministic(d))
	for _, w := range words("ab", 5) {
		assert.Equal(t, mustEval(t, a, w), mustEval(t, d, w), w)
	}
}

func TestExploreByLength(t *testing.T) {
	a := twoCounters()
	d, truncated, err := ExploreByLength(a, 3)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, 5, d.NumStates())

	unknown := d.StateByName(UnknownStateName)
	require.NotEqual(t, NullState, unknown)
	assert.True(t, d.HasTransition(unknown, unknown, 'a'))
	assert.False(t, d.IsFinal(unknown))

	for n := 0; n <= 3; n++ {
		assert.Equal(t, int64(1)<<n+1, mustEval(t, d, strings.Repeat("a", n)))
	}
	assert.Equal(t, int64(0), mustEval(t, d, "aaaa"))

	// singleton subsets carry their weight on the transitions
	d, truncated, err = ExploreByLength(doubling(), 50)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, 1, d.NumStates())
}

func TestExploreWithBound(t *testing.T) {
	d, truncated, err := ExploreWithBound(twoCounters(), int64(5))
	require.NoError(t, err)
	assert.True(t, truncated)
	// {1,1}, {2,1}, {4,1} and the unknown sink
	assert.Equal(t, 4, d.NumStates())
	assert.Equal(t, int64(5), mustEval(t, d, "aa"))
	assert.Equal(t, int64(0), mustEval(t, d, "aaa"))
}

func TestExplorePredicate(t *testing.T) {
	calls := 0
	d, truncated, err := Explore(twoCounters(), -1, func(members []WeightedState[int64]) bool {
		calls++
		return members[0].Weight < 3
	})
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, 3, d.NumStates())
	assert.Equal(t, 3, calls)
}

func TestWeightedDeterminizeRejectsEpsilon(t *testing.T) {
	_, err := WeightedDeterminize(New(nullableZContext("a")))
	assert.ErrorIs(t, err, ErrNotFree)
}
