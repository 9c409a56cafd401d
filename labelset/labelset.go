// Package labelset provides the alphabets used as transition labels.
package labelset

// LabelSet the operations on labels of type L.
type LabelSet[L comparable] interface {
	Equals(l, r L) bool
	LessThan(l, r L) bool
	Hash(l L) uint64

	// IsFree reports whether labels are plain letters (no epsilon, no words).
	IsFree() bool

	// HasOne reports whether the set contains the empty label (epsilon).
	HasOne() bool
	// One returns epsilon. Only meaningful when HasOne is true.
	One() L
	IsOne(l L) bool

	// Special returns the label carried by initial and final transitions.
	Special() L
	IsSpecial(l L) bool

	// Genset returns the generators, sorted by LessThan.
	Genset() []L

	Format(l L) string
	Name() string
}

// Reserved rune labels.
const (
	Special = rune(-1)
	Epsilon = rune(-2)
)
