package wfa

import (
	"slices"

	"go.uber.org/zap"

	"github.com/geange/wfa/weightset"
)

// WeightedState a member of a weighted subset of states.
type WeightedState[W comparable] struct {
	State  State
	Weight W
}

// weightedName a weighted subset of states sorted by state, with no zero weight.
type weightedName[W comparable] struct {
	members []WeightedState[W]
	ws      weightset.WeightSet[W]
	hash    uint64
}

func newWeightedName[W comparable](acc map[State]W, ws weightset.WeightSet[W]) *weightedName[W] {
	members := make([]WeightedState[W], 0, len(acc))
	for s, w := range acc {
		if !ws.IsZero(w) {
			members = append(members, WeightedState[W]{s, w})
		}
	}
	slices.SortFunc(members, func(x, y WeightedState[W]) int {
		return int(x.State) - int(y.State)
	})
	h := uint64(len(members))
	for _, m := range members {
		h = hashCombine(h, uint64(mix(int(m.State))))
		h = hashCombine(h, ws.Hash(m.Weight))
	}
	return &weightedName[W]{members: members, ws: ws, hash: h}
}

// splitSingleton builds the name of acc. A singleton {(q, w)} becomes
// {(q, one)} and its weight w is returned to be put on the transition.
func splitSingleton[W comparable](acc map[State]W, ws weightset.WeightSet[W]) (*weightedName[W], W) {
	name := newWeightedName(acc, ws)
	if len(name.members) != 1 {
		return name, ws.One()
	}
	m := name.members[0]
	return newWeightedName(map[State]W{m.State: ws.One()}, ws), m.Weight
}

func (n *weightedName[W]) Hash() uint64 {
	return n.hash
}

func (n *weightedName[W]) Equals(other Hashable) bool {
	o, ok := other.(*weightedName[W])
	if !ok || len(o.members) != len(n.members) {
		return false
	}
	for i, m := range n.members {
		if m.State != o.members[i].State || !n.ws.Equals(m.Weight, o.members[i].Weight) {
			return false
		}
	}
	return true
}

func (n *weightedName[W]) states() []State {
	states := make([]State, len(n.members))
	for i, m := range n.members {
		states[i] = m.State
	}
	return states
}

// UnknownStateName is the name of the sink standing for every unexplored weighted subset.
const UnknownStateName = "..."

// WeightedDeterminize Returns the weighted subset construction of a. It may
// not terminate when the construction is infinite; use Explore to bound it.
func WeightedDeterminize[L, W comparable](a *Automaton[L, W]) (*Automaton[L, W], error) {
	res, _, err := Explore(a, -1, nil)
	return res, err
}

// ExploreByLength builds the weighted subset construction up to the given depth.
// The boolean is true when some subset was replaced by the unknown sink.
func ExploreByLength[L, W comparable](a *Automaton[L, W], depth int) (*Automaton[L, W], bool, error) {
	return Explore(a, depth, nil)
}

// ExploreWithBound builds the weighted subset construction, replacing by the
// unknown sink every subset with a weight whose square exceeds the square of bound.
func ExploreWithBound[L, W comparable](a *Automaton[L, W], bound W) (*Automaton[L, W], bool, error) {
	ws := a.ctx.Weights
	limit := ws.Mul(bound, bound)
	return Explore(a, -1, func(members []WeightedState[W]) bool {
		for _, m := range members {
			if ws.LessThan(limit, ws.Mul(m.Weight, m.Weight)) {
				return false
			}
		}
		return true
	})
}

type weightedStep[W comparable] struct {
	name  *weightedName[W]
	state State
	depth int
}

// Explore builds the weighted subset construction of a. Transitions weigh one,
// except those reaching a singleton {(q, w)}: they carry w and reach {(q, one)}.
// A new subset found at depth d becomes a state when pred accepts it and
// d <= limit; otherwise the transition goes to the unknown sink, which loops
// on every generator. A negative limit or a nil pred do not restrict anything.
// The boolean reports whether the unknown sink was used.
func Explore[L, W comparable](a *Automaton[L, W], limit int, pred func([]WeightedState[W]) bool) (*Automaton[L, W], bool, error) {
	if err := requireFree(a, "weighted determinize"); err != nil {
		return nil, false, err
	}
	ws, ls := a.ctx.Weights, a.ctx.Labels
	one := ws.One()

	res := New(a.ctx)
	history := NewPartitionHistory()
	res.SetHistory(history)

	names := NewHashMap[State](WithCapacity(64))
	var queue []weightedStep[W]
	unknown := NullState

	stateOf := func(name *weightedName[W], depth int) State {
		if s, ok := names.Get(name); ok {
			return s
		}
		if (pred == nil || pred(name.members)) && (limit < 0 || depth <= limit) {
			s := res.AddState()
			names.Set(name, s)
			history.AddState(s, name.states())
			final := ws.Zero()
			for _, m := range name.members {
				final = ws.Add(final, ws.Mul(m.Weight, a.FinalWeight(m.State)))
			}
			res.SetFinal(s, final)
			queue = append(queue, weightedStep[W]{name, s, depth})
			return s
		}
		if unknown == NullState {
			unknown = res.AddState()
			for _, l := range ls.Genset() {
				res.NewTransition(unknown, unknown, l, one)
			}
			res.SetStateName(unknown, UnknownStateName)
		}
		return unknown
	}

	initial := make(map[State]W)
	for t := range a.InitialTransitions() {
		dst := a.DstOf(t)
		if w, ok := initial[dst]; ok {
			initial[dst] = ws.Add(w, a.WeightOf(t))
		} else {
			initial[dst] = a.WeightOf(t)
		}
	}
	if name, w := splitSingleton(initial, ws); len(name.members) > 0 {
		res.SetInitial(stateOf(name, 0), w)
	}

	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]

		next := make(map[L]map[State]W)
		for _, m := range step.name.members {
			for t := range a.Out(m.State) {
				l := a.LabelOf(t)
				acc, ok := next[l]
				if !ok {
					acc = make(map[State]W)
					next[l] = acc
				}
				w := ws.Mul(m.Weight, a.WeightOf(t))
				if old, ok := acc[a.DstOf(t)]; ok {
					w = ws.Add(old, w)
				}
				acc[a.DstOf(t)] = w
			}
		}

		for _, l := range sortLabels(ls, mapKeys(next)) {
			name, w := splitSingleton(next[l], ws)
			if len(name.members) == 0 {
				continue
			}
			res.NewTransition(step.state, stateOf(name, step.depth+1), l, w)
		}
	}

	truncated := unknown != NullState
	logger.Debug("weighted determinize",
		zap.Int("input_states", a.NumStates()),
		zap.Int("output_states", res.NumStates()),
		zap.Bool("truncated", truncated))
	return res, truncated, nil
}
