package labelset

import (
	"slices"
	"strings"
)

// Letters is the free labelset over a finite alphabet of runes.
type Letters struct {
	alphabet []rune
}

var _ LabelSet[rune] = (*Letters)(nil)

// NewLetters builds the labelset whose generators are the distinct runes of alphabet.
func NewLetters(alphabet string) *Letters {
	return &Letters{alphabet: sortedRunes(alphabet)}
}

func sortedRunes(alphabet string) []rune {
	rs := []rune(alphabet)
	slices.Sort(rs)
	return slices.Compact(rs)
}

func (ls *Letters) Name() string { return "lal_char(" + string(ls.alphabet) + ")" }

func (ls *Letters) Equals(l, r rune) bool { return l == r }

func (ls *Letters) LessThan(l, r rune) bool { return l < r }

func (ls *Letters) Hash(l rune) uint64 { return uint64(l) }

func (ls *Letters) IsFree() bool { return true }

func (ls *Letters) HasOne() bool { return false }

func (ls *Letters) One() rune { return Epsilon }

func (ls *Letters) IsOne(rune) bool { return false }

func (ls *Letters) Special() rune { return Special }

func (ls *Letters) IsSpecial(l rune) bool { return l == Special }

func (ls *Letters) Genset() []rune { return ls.alphabet }

// Has reports whether l is a generator.
func (ls *Letters) Has(l rune) bool {
	_, ok := slices.BinarySearch(ls.alphabet, l)
	return ok
}

func (ls *Letters) Format(l rune) string {
	return formatRune(l)
}

func formatRune(l rune) string {
	switch l {
	case Special:
		return "$"
	case Epsilon:
		return "\\e"
	}
	return string(l)
}

// FormatWord formats a sequence of labels.
func FormatWord(word []rune) string {
	var sb strings.Builder
	for _, l := range word {
		sb.WriteString(formatRune(l))
	}
	return sb.String()
}
