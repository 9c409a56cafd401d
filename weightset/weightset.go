// Package weightset provides the semirings used as transition weights.
package weightset

import (
	"github.com/pkg/errors"
)

// StarStatus classifies a weightset by the domain of its star operation.
type StarStatus int

const (
	// Starrable every element has a star.
	Starrable = StarStatus(iota)
	// Tops topologically ordered positive semiring: the domain of star is downward closed.
	Tops
	// Absval the star is defined through an absolute value, see AbsValuer.
	Absval
	// NonStarrable only zero has a star.
	NonStarrable
)

func (s StarStatus) String() string {
	switch s {
	case Starrable:
		return "starrable"
	case Tops:
		return "tops"
	case Absval:
		return "absval"
	case NonStarrable:
		return "non_starrable"
	}
	return "unknown"
}

// ErrStar is the cause of every error returned by Star.
var ErrStar = errors.New("star: invalid value")

// WeightSet the algebraic operations on weights of type W.
type WeightSet[W comparable] interface {
	Zero() W
	One() W
	IsZero(w W) bool
	IsOne(w W) bool
	Add(l, r W) W
	Mul(l, r W) W
	// Star returns the star of w, or an error with cause ErrStar when undefined.
	Star(w W) (W, error)
	Equals(l, r W) bool
	LessThan(l, r W) bool
	Hash(w W) uint64
	StarStatus() StarStatus
	Format(w W) string
	Name() string
}

// AbsValuer is implemented by weightsets with an absolute value (Absval status).
type AbsValuer[W comparable] interface {
	Abs(w W) W
}

// IsBoolean Returns true if ws is the Boolean semiring.
func IsBoolean[W comparable](ws WeightSet[W]) bool {
	switch any(ws).(type) {
	case B, *B:
		return true
	}
	return false
}

func starError(name string, v any) error {
	return errors.Wrapf(ErrStar, "%s: %v", name, v)
}

func mixHash(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}
