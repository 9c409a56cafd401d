package labelset

import (
	"slices"
)

// NullableLetters is the labelset of letters extended with epsilon.
type NullableLetters struct {
	alphabet []rune
}

var _ LabelSet[rune] = (*NullableLetters)(nil)

func NewNullableLetters(alphabet string) *NullableLetters {
	return &NullableLetters{alphabet: sortedRunes(alphabet)}
}

func (ls *NullableLetters) Name() string {
	return "lan_char(" + string(ls.alphabet) + ")"
}

func (ls *NullableLetters) Equals(l, r rune) bool { return l == r }

// LessThan orders epsilon before every letter.
func (ls *NullableLetters) LessThan(l, r rune) bool { return l < r }

func (ls *NullableLetters) Hash(l rune) uint64 { return uint64(l) }

func (ls *NullableLetters) IsFree() bool { return false }

func (ls *NullableLetters) HasOne() bool { return true }

func (ls *NullableLetters) One() rune { return Epsilon }

func (ls *NullableLetters) IsOne(l rune) bool { return l == Epsilon }

func (ls *NullableLetters) Special() rune { return Special }

func (ls *NullableLetters) IsSpecial(l rune) bool { return l == Special }

func (ls *NullableLetters) Genset() []rune { return ls.alphabet }

func (ls *NullableLetters) Has(l rune) bool {
	_, ok := slices.BinarySearch(ls.alphabet, l)
	return ok
}

func (ls *NullableLetters) Format(l rune) string {
	return formatRune(l)
}
