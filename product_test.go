package wfa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// powersOfTwo gives weight 2^n to the words with n letters a.
func powersOfTwo() *Automaton[rune, int64] {
	a, _ := build(zContext("ab"), 1,
		map[int]int64{0: 1}, map[int]int64{0: 1},
		[]arc[int64]{{0, 0, 'a', 2}, {0, 0, 'b', 1}})
	return a
}

// afterB counts, with weights, the words containing a b.
func afterB() *Automaton[rune, int64] {
	a, _ := build(zContext("ab"), 2,
		map[int]int64{0: 1}, map[int]int64{1: 1},
		[]arc[int64]{{0, 0, 'a', 1}, {0, 0, 'b', 1}, {0, 1, 'b', 1}, {1, 1, 'a', 3}, {1, 1, 'b', 1}})
	return a
}

func TestProduct(t *testing.T) {
	a, b := powersOfTwo(), afterB()

	t.Run("binary", func(t *testing.T) {
		p, err := Product([]*Automaton[rune, int64]{a, b})
		require.NoError(t, err)
		for _, w := range words("ab", 4) {
			assert.Equal(t, mustEval(t, a, w)*mustEval(t, b, w), mustEval(t, p, w), w)
		}
		h, ok := p.History().(*TupleHistory)
		require.True(t, ok)
		for s := range p.States() {
			assert.Len(t, h.GetTuple(s), 2)
		}
	})

	t.Run("ternary", func(t *testing.T) {
		p, err := Product([]*Automaton[rune, int64]{a, b, a}, WithHistory(false))
		require.NoError(t, err)
		for _, w := range words("ab", 4) {
			ea := mustEval(t, a, w)
			assert.Equal(t, ea*mustEval(t, b, w)*ea, mustEval(t, p, w), w)
		}
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Product[rune, int64](nil)
		assert.ErrorIs(t, err, ErrEmptyProduct)
		_, err = Product([]*Automaton[rune, int64]{New(nullableZContext("ab"))})
		assert.ErrorIs(t, err, ErrNotFree)
	})
}

func TestPower(t *testing.T) {
	a := afterB()

	t.Run("zero", func(t *testing.T) {
		p, err := Power(a, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, p.NumStates())
		assert.Equal(t, int64(1), mustEval(t, p, ""))
		for _, w := range words("ab", 3)[1:] {
			assert.Equal(t, int64(0), mustEval(t, p, w), w)
		}
	})

	t.Run("one", func(t *testing.T) {
		p, err := Power(a, 1)
		require.NoError(t, err)
		assert.NotSame(t, a, p)
		ok, err := AreIsomorphic(a, p)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("square", func(t *testing.T) {
		p, err := Power(a, 2)
		require.NoError(t, err)
		q, err := Product([]*Automaton[rune, int64]{a, a})
		require.NoError(t, err)
		ok, err := AreIsomorphic(p, q)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.IsType(t, NoHistory{}, p.History())
	})

	t.Run("iterative", func(t *testing.T) {
		squared, err := Power(a, 3)
		require.NoError(t, err)
		iterated, err := Power(a, 3, WithIterative(true))
		require.NoError(t, err)
		for _, w := range words("ab", 4) {
			e := mustEval(t, a, w)
			assert.Equal(t, e*e*e, mustEval(t, squared, w), w)
			assert.Equal(t, e*e*e, mustEval(t, iterated, w), w)
		}
	})

	t.Run("negative", func(t *testing.T) {
		_, err := Power(a, -1)
		assert.Error(t, err)
	})
}

func TestShuffle(t *testing.T) {
	f := NewAutomata(zContext("ab"))
	a, b := f.MakeWord([]rune("a")), f.MakeWord([]rune("b"))

	s, err := Shuffle([]*Automaton[rune, int64]{a, b})
	require.NoError(t, err)
	want := map[string]int64{"ab": 1, "ba": 1}
	for _, w := range words("ab", 3) {
		assert.Equal(t, want[w], mustEval(t, s, w), w)
	}

	aa, err := Shuffle([]*Automaton[rune, int64]{a, a, a})
	require.NoError(t, err)
	assert.Equal(t, int64(6), mustEval(t, aa, "aaa"))
	assert.Equal(t, int64(0), mustEval(t, aa, "aa"))
}

func TestInfiltration(t *testing.T) {
	f := NewAutomata(zContext("ab"))
	a := f.MakeWord([]rune("a"))

	i, err := Infiltration([]*Automaton[rune, int64]{a, a})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mustEval(t, i, "a"))
	assert.Equal(t, int64(2), mustEval(t, i, "aa"))
	assert.Equal(t, int64(0), mustEval(t, i, ""))
	assert.Equal(t, int64(0), mustEval(t, i, strings.Repeat("a", 3)))
}

func TestAutomata(t *testing.T) {
	f := NewAutomata(boolContext("ab"))

	empty := f.MakeEmpty()
	assert.True(t, IsEmpty(empty))
	assert.False(t, Run(empty, ""))

	eps := f.MakeEmptyWord()
	assert.True(t, Run(eps, ""))
	assert.False(t, Run(eps, "a"))

	word := f.MakeWord([]rune("abb"))
	assert.True(t, IsDeterministic(word))
	assert.True(t, Run(word, "abb"))
	assert.False(t, Run(word, "ab"))

	all := f.MakeAnyWord()
	for _, w := range words("ab", 3) {
		assert.True(t, Run(all, w), w)
	}
}
