package weightset

import (
	"fmt"
	"math"
	"strconv"
)

// Rational a normalized fraction: Den > 0 and gcd(|Num|, Den) = 1.
type Rational struct {
	Num int64
	Den uint64
}

// NewRational builds the normalized fraction num/den. It panics when den is
// zero, like division. Numerators and denominators are not checked for
// overflow: Add and Mul are exact while every intermediate product fits in int64.
func NewRational(num int64, den int64) Rational {
	if den == 0 {
		panic("weightset: rational with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), uint64(den))
	if g == 0 {
		return Rational{0, 1}
	}
	return Rational{num / int64(g), uint64(den) / g}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// Q is the field of rational numbers.
type Q struct{}

var (
	_ WeightSet[Rational] = Q{}
	_ AbsValuer[Rational] = Q{}
)

func (Q) Name() string { return "Q" }

func (Q) Zero() Rational { return Rational{0, 1} }

func (Q) One() Rational { return Rational{1, 1} }

func (Q) IsZero(w Rational) bool { return w.Num == 0 }

func (Q) IsOne(w Rational) bool { return w.Num == 1 && w.Den == 1 }

func (Q) Add(l, r Rational) Rational {
	return NewRational(l.Num*int64(r.Den)+r.Num*int64(l.Den), int64(l.Den*r.Den))
}

func (Q) Mul(l, r Rational) Rational {
	return NewRational(l.Num*r.Num, int64(l.Den*r.Den))
}

func (Q) Equals(l, r Rational) bool { return l == r }

func (q Q) Star(w Rational) (Rational, error) {
	if abs64(w.Num) < w.Den {
		return NewRational(int64(w.Den), int64(w.Den)-w.Num), nil
	}
	return Rational{}, starError(q.Name(), q.Format(w))
}

func (Q) LessThan(l, r Rational) bool {
	return l.Num*int64(r.Den) < r.Num*int64(l.Den)
}

func (Q) Hash(w Rational) uint64 {
	return mixHash(uint64(w.Num)*31 + w.Den)
}

func (Q) StarStatus() StarStatus { return Absval }

func (Q) Abs(w Rational) Rational {
	return Rational{int64(abs64(w.Num)), w.Den}
}

func (Q) Format(w Rational) string {
	if w.Den == 1 {
		return strconv.FormatInt(w.Num, 10)
	}
	return fmt.Sprintf("%d/%d", w.Num, w.Den)
}

// R is the field of real numbers, approximated by float64.
type R struct{}

var (
	_ WeightSet[float64] = R{}
	_ AbsValuer[float64] = R{}
)

func (R) Name() string { return "R" }
func (R) Zero() float64 { return 0 }
func (R) One() float64 { return 1 }
func (R) IsZero(w float64) bool { return w == 0 }
func (R) IsOne(w float64) bool { return w == 1 }
func (R) Add(l, r float64) float64 { return l + r }
func (R) Mul(l, r float64) float64 { return l * r }
func (R) Equals(l, r float64) bool { return l == r }
func (R) LessThan(l, r float64) bool { return l < r }
func (R) Hash(w float64) uint64 { return mixHash(math.Float64bits(w)) }
func (R) StarStatus() StarStatus { return Absval }
func (R) Abs(w float64) float64 { return math.Abs(w) }
func (R) Format(w float64) string { return strconv.FormatFloat(w, 'g', -1, 64) }

func (r R) Star(w float64) (float64, error) {
	if -1 < w && w < 1 {
		return 1 / (1 - w), nil
	}
	return 0, starError(r.Name(), w)
}
