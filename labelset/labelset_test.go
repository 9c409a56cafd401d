package labelset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetters(t *testing.T) {
	ls := NewLetters("cabba")
	assert.Equal(t, []rune("abc"), ls.Genset())
	assert.Equal(t, "lal_char(abc)", ls.Name())
	assert.True(t, ls.IsFree())
	assert.False(t, ls.HasOne())
	assert.True(t, ls.Has('b'))
	assert.False(t, ls.Has('d'))
	assert.True(t, ls.IsSpecial(ls.Special()))
	assert.False(t, ls.IsOne('a'))
	assert.True(t, ls.LessThan('a', 'b'))
}

func TestNullableLetters(t *testing.T) {
	ls := NewNullableLetters("ba")
	assert.Equal(t, []rune("ab"), ls.Genset())
	assert.False(t, ls.IsFree())
	assert.True(t, ls.HasOne())
	assert.True(t, ls.IsOne(ls.One()))
	assert.False(t, ls.IsOne('a'))
	assert.True(t, ls.LessThan(ls.One(), 'a'))
	assert.False(t, ls.IsSpecial(ls.One()))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		word []rune
		want string
	}{
		{"letters", []rune("ab"), "ab"},
		{"epsilon", []rune{Epsilon}, "\\e"},
		{"special", []rune{Special, 'a'}, "$a"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWord(tt.word))
		})
	}
}
