package wfa

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// linkedMap a map iterated in insertion order. Values are stored by pointer so
// they can be updated in place.
type linkedMap[K comparable, V any] struct {
	m *linkedhashmap.Map
}

func newLinkedMap[K comparable, V any]() *linkedMap[K, V] {
	return &linkedMap[K, V]{m: linkedhashmap.New()}
}

// at Returns the value of k, inserting a zero value when k is absent.
func (lm *linkedMap[K, V]) at(k K) *V {
	if v, ok := lm.m.Get(k); ok {
		return v.(*V)
	}
	v := new(V)
	lm.m.Put(k, v)
	return v
}

func (lm *linkedMap[K, V]) lookup(k K) (*V, bool) {
	v, ok := lm.m.Get(k)
	if !ok {
		return nil, false
	}
	return v.(*V), true
}

func (lm *linkedMap[K, V]) size() int {
	return lm.m.Size()
}

// each calls f on every entry, in insertion order.
func (lm *linkedMap[K, V]) each(f func(k K, v *V)) {
	it := lm.m.Iterator()
	for it.Next() {
		f(it.Key().(K), it.Value().(*V))
	}
}

// values Returns the values in insertion order.
func (lm *linkedMap[K, V]) values() []V {
	res := make([]V, 0, lm.m.Size())
	lm.each(func(_ K, v *V) {
		res = append(res, *v)
	})
	return res
}

// weakSort splits the states of list by their signatures, compared component
// by component: size(r) is the length of the signature of r and at(r, k) its
// k-th component. Groups are produced without any comparison sort.
func weakSort[K comparable](list []State, size func(State) int, at func(State, int) K) [][]State {
	var parts [][]State
	pending := [][]State{list}
	for k := 0; len(pending) > 0; k++ {
		var next [][]State
		for _, l := range pending {
			var shorter []State
			groups := newLinkedMap[K, []State]()
			for _, r := range l {
				if size(r) == k {
					shorter = append(shorter, r)
					continue
				}
				g := groups.at(at(r, k))
				*g = append(*g, r)
			}
			if len(shorter) > 0 {
				parts = append(parts, shorter)
			}
			next = append(next, groups.values()...)
		}
		pending = next
	}
	return parts
}
