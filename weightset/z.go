package weightset

import (
	"math"
	"strconv"
)

// N is the semiring of natural numbers.
type N struct{}

var _ WeightSet[uint64] = N{}

func (N) Name() string { return "N" }
func (N) Zero() uint64 { return 0 }
func (N) One() uint64 { return 1 }
func (N) IsZero(w uint64) bool { return w == 0 }
func (N) IsOne(w uint64) bool { return w == 1 }
func (N) Add(l, r uint64) uint64 { return l + r }
func (N) Mul(l, r uint64) uint64 { return l * r }
func (N) Equals(l, r uint64) bool {
	return l == r
}

func (n N) Star(w uint64) (uint64, error) {
	if w == 0 {
		return 1, nil
	}
	return 0, starError(n.Name(), w)
}

func (N) LessThan(l, r uint64) bool { return l < r }
func (N) Hash(w uint64) uint64 { return mixHash(w) }
func (N) StarStatus() StarStatus { return NonStarrable }
func (N) Format(w uint64) string { return strconv.FormatUint(w, 10) }

// Z is the ring of integers.
type Z struct{}

var _ WeightSet[int64] = Z{}

func (Z) Name() string { return "Z" }
func (Z) Zero() int64 { return 0 }
func (Z) One() int64 { return 1 }
func (Z) IsZero(w int64) bool { return w == 0 }
func (Z) IsOne(w int64) bool { return w == 1 }
func (Z) Add(l, r int64) int64 { return l + r }
func (Z) Mul(l, r int64) int64 { return l * r }
func (Z) Equals(l, r int64) bool {
	return l == r
}

func (z Z) Star(w int64) (int64, error) {
	if w == 0 {
		return 1, nil
	}
	return 0, starError(z.Name(), w)
}

func (Z) LessThan(l, r int64) bool { return l < r }
func (Z) Hash(w int64) uint64 { return mixHash(uint64(w)) }
func (Z) StarStatus() StarStatus { return NonStarrable }
func (Z) Format(w int64) string { return strconv.FormatInt(w, 10) }

// ZMin is the tropical min-plus semiring over integers. Zero is +oo and one is 0.
type ZMin struct{}

// Infinity is the zero of ZMin.
const Infinity = int64(math.MaxInt64)

// MinusInfinity is the zero of ZMax.
const MinusInfinity = int64(math.MinInt64)

var _ WeightSet[int64] = ZMin{}

func (ZMin) Name() string { return "Z-min-plus" }
func (ZMin) Zero() int64 { return Infinity }
func (ZMin) One() int64 { return 0 }
func (ZMin) IsZero(w int64) bool { return w == Infinity }
func (ZMin) IsOne(w int64) bool { return w == 0 }

func (ZMin) Add(l, r int64) int64 {
	return min(l, r)
}

func (ZMin) Mul(l, r int64) int64 {
	if l == Infinity || r == Infinity {
		return Infinity
	}
	return l + r
}

func (ZMin) Equals(l, r int64) bool { return l == r }

func (z ZMin) Star(w int64) (int64, error) {
	if w >= 0 {
		return 0, nil
	}
	return 0, starError(z.Name(), w)
}

// LessThan follows the semiring order, in which zero (+oo) is the smallest element.
func (ZMin) LessThan(l, r int64) bool { return l > r }
func (ZMin) Hash(w int64) uint64 { return mixHash(uint64(w)) }
func (ZMin) StarStatus() StarStatus { return Tops }

func (ZMin) Format(w int64) string {
	if w == Infinity {
		return "oo"
	}
	return strconv.FormatInt(w, 10)
}

// ZMax is the max-plus semiring over integers. Zero is -oo and one is 0.
type ZMax struct{}

var _ WeightSet[int64] = ZMax{}

func (ZMax) Name() string { return "Z-max-plus" }
func (ZMax) Zero() int64 { return MinusInfinity }
func (ZMax) One() int64 { return 0 }
func (ZMax) IsZero(w int64) bool { return w == MinusInfinity }
func (ZMax) IsOne(w int64) bool { return w == 0 }

func (ZMax) Add(l, r int64) int64 {
	return max(l, r)
}

func (ZMax) Mul(l, r int64) int64 {
	if l == MinusInfinity || r == MinusInfinity {
		return MinusInfinity
	}
	return l + r
}

func (ZMax) Equals(l, r int64) bool { return l == r }

func (z ZMax) Star(w int64) (int64, error) {
	if w <= 0 {
		return 0, nil
	}
	return 0, starError(z.Name(), w)
}

func (ZMax) LessThan(l, r int64) bool { return l < r }
func (ZMax) Hash(w int64) uint64 { return mixHash(uint64(w)) }
func (ZMax) StarStatus() StarStatus { return Tops }

func (ZMax) Format(w int64) string {
	if w == MinusInfinity {
		return "-oo"
	}
	return strconv.FormatInt(w, 10)
}
