package wfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endsWithAB recognises the words over {a,b} ending with "ab".
func endsWithAB() *Automaton[rune, bool] {
	a, _ := build(boolContext("ab"), 3,
		map[int]bool{0: true}, map[int]bool{2: true},
		[]arc[bool]{{0, 0, 'a', true}, {0, 0, 'b', true}, {0, 1, 'a', true}, {1, 2, 'b', true}})
	return a
}

func TestDeterminize(t *testing.T) {
	variants := []struct {
		name string
		det  func(*Automaton[rune, bool], ...Option) (*Automaton[rune, bool], error)
	}{
		{"auto", Determinize[rune, bool]},
		{"bitset", DeterminizeBitset[rune, bool]},
		{"set", DeterminizeSet[rune, bool]},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			a := endsWithAB()
			d, err := v.det(a)
			require.NoError(t, err)
			assert.True(t, IsDeterministic(d))
			assert.False(t, IsDeterministic(a))
			assert.Equal(t, 3, d.NumStates())
			for _, w := range words("ab", 5) {
				assert.Equal(t, Run(a, w), Run(d, w), w)
			}

			h, ok := d.History().(*PartitionHistory)
			require.True(t, ok)
			for s := range d.States() {
				members := h.GetStateSet(s)
				assert.NotEmpty(t, members)
				assert.Contains(t, members, State(2))
			}
		})
	}
}

func TestDeterminizeDeterministic(t *testing.T) {
	a, _ := mod3()
	d, err := Determinize(a)
	require.NoError(t, err)
	ok, err := AreIsomorphic(a, d)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "det", d.Name())
}

func TestDeterminizeVariantsAgree(t *testing.T) {
	a := endsWithAB()
	b, err := DeterminizeBitset(a, WithHistory(false))
	require.NoError(t, err)
	s, err := DeterminizeSet(a, WithHistory(false))
	require.NoError(t, err)
	ok, err := AreIsomorphic(b, s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeterminizeErrors(t *testing.T) {
	t.Run("weighted", func(t *testing.T) {
		a, _ := build(zContext("ab"), 1, map[int]int64{0: 1}, map[int]int64{0: 1}, nil)
		_, err := Determinize(a)
		assert.ErrorIs(t, err, ErrNotBoolean)
	})
	t.Run("epsilon", func(t *testing.T) {
		a := New(nullableBoolContext("ab"))
		_, err := Determinize(a)
		assert.ErrorIs(t, err, ErrNotFree)
	})
}

func TestCodeterminize(t *testing.T) {
	a := endsWithAB()
	c, err := Codeterminize(a)
	require.NoError(t, err)
	assert.True(t, IsDeterministic(Transpose(c)))
	for _, w := range words("ab", 4) {
		assert.Equal(t, Run(a, w), Run(c, w), w)
	}
}
