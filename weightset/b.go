package weightset

// B is the Boolean semiring ({false, true}, or, and).
type B struct{}

var _ WeightSet[bool] = B{}

func (B) Name() string { return "B" }
func (B) Zero() bool { return false }
func (B) One() bool { return true }
func (B) IsZero(w bool) bool { return !w }
func (B) IsOne(w bool) bool { return w }
func (B) Add(l, r bool) bool { return l || r }
func (B) Mul(l, r bool) bool { return l && r }
func (B) Equals(l, r bool) bool {
	return l == r
}

// Star of any Boolean is true.
func (B) Star(bool) (bool, error) { return true, nil }

func (B) LessThan(l, r bool) bool { return !l && r }

func (B) Hash(w bool) uint64 {
	if w {
		return 1
	}
	return 0
}

func (B) StarStatus() StarStatus { return Starrable }

func (B) Format(w bool) string {
	if w {
		return "1"
	}
	return "0"
}

// F2 is the field with two elements (xor, and).
type F2 struct{}

var _ WeightSet[bool] = F2{}

func (F2) Name() string { return "F2" }
func (F2) Zero() bool { return false }
func (F2) One() bool { return true }
func (F2) IsZero(w bool) bool { return !w }
func (F2) IsOne(w bool) bool { return w }
func (F2) Add(l, r bool) bool { return l != r }
func (F2) Mul(l, r bool) bool { return l && r }
func (F2) Equals(l, r bool) bool {
	return l == r
}

func (f F2) Star(w bool) (bool, error) {
	if !w {
		return true, nil
	}
	return false, starError(f.Name(), 1)
}

func (F2) LessThan(l, r bool) bool { return !l && r }

func (F2) Hash(w bool) uint64 {
	if w {
		return 1
	}
	return 0
}

func (F2) StarStatus() StarStatus { return NonStarrable }

func (F2) Format(w bool) string {
	if w {
		return "1"
	}
	return "0"
}
