package wfa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/geange/wfa/labelset"
	"github.com/geange/wfa/weightset"
)

// bitsetLimit is the largest MaxState handled by the bitset subset construction.
const bitsetLimit = 128

func isBoolean[L, W comparable](a *Automaton[L, W]) bool {
	return weightset.IsBoolean(a.ctx.Weights)
}

// Determinize Returns the deterministic automaton equivalent to the Boolean automaton a.
// States of the result are subsets of states of a, recorded in a PartitionHistory
// unless WithHistory(false) is given.
func Determinize[L, W comparable](a *Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	if a.MaxState() < bitsetLimit {
		return DeterminizeBitset(a, opts...)
	}
	return DeterminizeSet(a, opts...)
}

func checkDeterminizable[L, W comparable](a *Automaton[L, W]) error {
	if err := requireFree(a, "determinize"); err != nil {
		return err
	}
	return requireBoolean(a, "determinize")
}

// subsetBuilder holds what both subset constructions share.
type subsetBuilder[L, W comparable] struct {
	in      *Automaton[L, W]
	out     *Automaton[L, W]
	history *PartitionHistory
	one     W
}

func newSubsetBuilder[L, W comparable](a *Automaton[L, W], o *options) *subsetBuilder[L, W] {
	b := &subsetBuilder[L, W]{
		in:  a,
		out: New(a.ctx),
		one: a.ctx.Weights.One(),
	}
	if o.history {
		b.history = NewPartitionHistory()
		b.out.SetHistory(b.history)
	}
	if a.name != "" {
		b.out.SetName("det-" + a.name)
	} else {
		b.out.SetName("det")
	}
	return b
}

// newState creates the output state of the subset members.
func (b *subsetBuilder[L, W]) newState(members []State, final bool) State {
	s := b.out.AddState()
	if final {
		b.out.SetFinal(s, b.one)
	}
	if b.history != nil {
		b.history.AddState(s, members)
	}
	return s
}

// sortLabels sorts labels by the order of the labelset.
func sortLabels[L comparable](ls labelset.LabelSet[L], labels []L) []L {
	slices.SortFunc(labels, func(x, y L) int {
		switch {
		case ls.LessThan(x, y):
			return -1
		case ls.LessThan(y, x):
			return 1
		}
		return 0
	})
	return labels
}

type bitsetKey struct {
	set   *bitset.BitSet
	state State
}

func (k *bitsetKey) Hash() uint64 {
	h := uint64(k.set.Count())
	for _, w := range k.set.Words() {
		h = hashCombine(h, w)
	}
	return h
}

func (k *bitsetKey) Equals(other Hashable) bool {
	o, ok := other.(*bitsetKey)
	return ok && k.set.Equal(o.set)
}

func bitsetMembers(set *bitset.BitSet) []State {
	members := make([]State, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		members = append(members, State(i))
	}
	return members
}

// DeterminizeBitset the subset construction over sets of states encoded as bitsets.
func DeterminizeBitset[L, W comparable](a *Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	if err := checkDeterminizable(a); err != nil {
		return nil, err
	}
	b := newSubsetBuilder(a, newOptions(opts...))
	n := uint(a.MaxState())

	finals := bitset.New(n)
	for t := range a.FinalTransitions() {
		finals.Set(uint(a.SrcOf(t)))
	}

	// successors of each input state, by label
	cache := make([]map[L]*bitset.BitSet, n)
	successors := func(s State) map[L]*bitset.BitSet {
		if cache[s] != nil {
			return cache[s]
		}
		m := make(map[L]*bitset.BitSet)
		for t := range a.Out(s) {
			l := a.LabelOf(t)
			set, ok := m[l]
			if !ok {
				set = bitset.New(n)
				m[l] = set
			}
			set.Set(uint(a.DstOf(t)))
		}
		cache[s] = m
		return m
	}

	states := NewHashMap[State](WithCapacity(64))
	var todo []*bitsetKey

	start := &bitsetKey{set: bitset.New(n).Set(uint(pre)), state: pre}
	states.Set(start, pre)
	todo = append(todo, start)

	for len(todo) > 0 {
		current := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		next := make(map[L]*bitset.BitSet)
		for _, s := range bitsetMembers(current.set) {
			for l, dsts := range successors(s) {
				if acc, ok := next[l]; ok {
					acc.InPlaceUnion(dsts)
				} else {
					next[l] = dsts.Clone()
				}
			}
		}

		labels := sortLabels(a.ctx.Labels, mapKeys(next))
		for _, l := range labels {
			key := &bitsetKey{set: next[l]}
			dst, created := states.GetOrInsert(key, func() State {
				return b.newState(bitsetMembers(key.set), key.set.IntersectionCardinality(finals) > 0)
			})
			if created {
				key.state = dst
				todo = append(todo, key)
			}
			b.out.NewTransition(current.state, dst, l, b.one)
		}
	}

	logger.Debug("determinize",
		zap.String("variant", "bitset"),
		zap.Int("input_states", a.NumStates()),
		zap.Int("output_states", b.out.NumStates()))
	return b.out, nil
}

// DeterminizeSet the subset construction over sorted sets of states, with no
// bound on the number of states.
func DeterminizeSet[L, W comparable](a *Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	if err := checkDeterminizable(a); err != nil {
		return nil, err
	}
	b := newSubsetBuilder(a, newOptions(opts...))

	states := NewHashMap[State](WithCapacity(64))
	start := frozenOf([]State{pre}, pre)
	states.Set(start, pre)
	todo := []*FrozenStateSet{start}

	for len(todo) > 0 {
		current := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		next := make(map[L]*StateSet)
		for _, s := range current.GetArray() {
			for t := range a.Out(s) {
				l := a.LabelOf(t)
				set, ok := next[l]
				if !ok {
					set = NewStateSet()
					next[l] = set
				}
				set.Incr(a.DstOf(t))
			}
		}

		for _, l := range sortLabels(a.ctx.Labels, mapKeys(next)) {
			set := next[l]
			dst, created := states.GetOrInsert(set, func() State {
				members := set.GetArray()
				final := slices.ContainsFunc(members, a.IsFinal)
				return b.newState(members, final)
			})
			if created {
				// the map now holds the mutable set: replace it by its frozen form
				states.Delete(set)
				frozen := set.Freeze(dst)
				states.Set(frozen, dst)
				todo = append(todo, frozen)
			}
			b.out.NewTransition(current.State(), dst, l, b.one)
		}
	}

	logger.Debug("determinize",
		zap.String("variant", "set"),
		zap.Int("input_states", a.NumStates()),
		zap.Int("output_states", b.out.NumStates()))
	return b.out, nil
}

func mapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Codeterminize Returns the codeterministic automaton equivalent to a.
func Codeterminize[L, W comparable](a *Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	res, err := Determinize(Transpose(a), opts...)
	if err != nil {
		return nil, err
	}
	TransposeHere(res)
	return res, nil
}

// IsSequential Returns true if no state has two outgoing transitions with the same label.
func IsSequential[L, W comparable](a *Automaton[L, W]) bool {
	seen := make(map[L]struct{})
	for s := range a.States() {
		clear(seen)
		for t := range a.Out(s) {
			l := a.LabelOf(t)
			if _, ok := seen[l]; ok {
				return false
			}
			seen[l] = struct{}{}
		}
	}
	return true
}

// IsDeterministic Returns true if a is sequential and has at most one initial state.
func IsDeterministic[L, W comparable](a *Automaton[L, W]) bool {
	return a.NumInitials() <= 1 && IsSequential(a)
}
