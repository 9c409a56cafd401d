package wfa

import (
	"slices"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type labelTarget[W comparable] struct {
	dst    State
	weight W
}

func compareTuples(x, y interface{}) int {
	return slices.Compare(x.([]State), y.([]State))
}

// productEngine explores the accessible tuples of states of its operands.
type productEngine[L, W comparable] struct {
	auts    []*Automaton[L, W]
	res     *Automaton[L, W]
	tuples  *treemap.Map
	todo    [][]State
	history *TupleHistory

	// outgoing transitions of each operand state, by label
	transitionMaps []map[State]map[L][]labelTarget[W]
}

func newProductEngine[L, W comparable](op string, auts []*Automaton[L, W], o *options) (*productEngine[L, W], error) {
	if len(auts) == 0 {
		return nil, errors.Wrap(ErrEmptyProduct, op)
	}
	for _, a := range auts {
		if err := requireFree(a, op); err != nil {
			return nil, err
		}
	}
	e := &productEngine[L, W]{
		auts:           auts,
		res:            New(auts[0].ctx),
		tuples:         treemap.NewWith(compareTuples),
		transitionMaps: make([]map[State]map[L][]labelTarget[W], len(auts)),
	}
	for i := range auts {
		e.transitionMaps[i] = make(map[State]map[L][]labelTarget[W])
	}
	if o.history {
		e.history = NewTupleHistory()
		e.res.SetHistory(e.history)
	}
	return e, nil
}

func (e *productEngine[L, W]) transitionMap(i int, s State) map[L][]labelTarget[W] {
	if m, ok := e.transitionMaps[i][s]; ok {
		return m
	}
	a := e.auts[i]
	m := make(map[L][]labelTarget[W])
	for _, t := range a.AllOut(s) {
		l := a.LabelOf(t)
		m[l] = append(m[l], labelTarget[W]{a.DstOf(t), a.WeightOf(t)})
	}
	e.transitionMaps[i][s] = m
	return m
}

func (e *productEngine[L, W]) preTuple() []State {
	return fill(len(e.auts), pre)
}

// state Returns the result state of tuple, creating and queueing it when new.
func (e *productEngine[L, W]) state(tuple []State) State {
	switch {
	case allEqual(tuple, pre):
		return pre
	case allEqual(tuple, post):
		return post
	}
	if v, ok := e.tuples.Get(tuple); ok {
		return v.(State)
	}
	s := e.res.AddState()
	e.tuples.Put(tuple, s)
	if e.history != nil {
		e.history.AddState(s, tuple)
	}
	e.todo = append(e.todo, tuple)
	return s
}

func allEqual(tuple []State, s State) bool {
	for _, t := range tuple {
		if t != s {
			return false
		}
	}
	return true
}

// explore runs step on every accessible tuple, starting from the tuple of Pre states.
func (e *productEngine[L, W]) explore(step func(src State, tuple []State)) *Automaton[L, W] {
	start := e.preTuple()
	e.tuples.Put(start, pre)
	e.todo = append(e.todo, start)
	for len(e.todo) > 0 {
		tuple := e.todo[0]
		e.todo = e.todo[1:]
		src, _ := e.tuples.Get(tuple)
		step(src.(State), tuple)
	}
	return e.res
}

// addProductTransitions synchronises the operands on the labels they all share.
func (e *productEngine[L, W]) addProductTransitions(src State, tuple []State) {
	ws := e.res.ctx.Weights
	maps := make([]map[L][]labelTarget[W], len(tuple))
	for i, s := range tuple {
		maps[i] = e.transitionMap(i, s)
	}

	for _, l := range sortLabels(e.res.ctx.Labels, mapKeys(maps[0])) {
		lists := make([][]labelTarget[W], len(maps))
		common := true
		for i, m := range maps {
			if lists[i], common = m[l]; !common {
				break
			}
		}
		if !common {
			continue
		}

		// enumerate one target per operand, like an odometer
		idx := make([]int, len(lists))
		for {
			dsts := make([]State, len(lists))
			w := ws.One()
			for i, list := range lists {
				dsts[i] = list[idx[i]].dst
				w = ws.Mul(w, list[idx[i]].weight)
			}
			e.res.NewTransition(src, e.state(dsts), l, w)

			k := len(idx) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(lists[k]) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				break
			}
		}
	}
}

// addShuffleTransitions lets each operand move alone; the final weight of the
// tuple is the product of the final weights of its components.
func (e *productEngine[L, W]) addShuffleTransitions(src State, tuple []State) {
	ws, ls := e.res.ctx.Weights, e.res.ctx.Labels
	final := ws.One()
	for i, s := range tuple {
		m := e.transitionMap(i, s)
		finalI := ws.Zero()
		for _, l := range sortLabels(ls, mapKeys(m)) {
			for _, target := range m[l] {
				if ls.IsSpecial(l) {
					finalI = ws.Add(finalI, target.weight)
					continue
				}
				dsts := slices.Clone(tuple)
				dsts[i] = target.dst
				e.res.AddTransition(src, e.state(dsts), l, target.weight)
			}
		}
		final = ws.Mul(final, finalI)
	}
	e.res.SetFinal(src, final)
}

func logProduct[L, W comparable](op string, auts []*Automaton[L, W], res *Automaton[L, W]) {
	logger.Debug(op,
		zap.Int("operands", len(auts)),
		zap.Int("states", res.NumStates()),
		zap.Int("transitions", res.NumTransitions()))
}

// Product Returns the accessible part of the synchronised product of auts.
// Every result state stands for a tuple of operand states, recorded in a
// TupleHistory. The result has the context of the first operand.
func Product[L, W comparable](auts []*Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	e, err := newProductEngine("product", auts, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	res := e.explore(e.addProductTransitions)
	logProduct("product", auts, res)
	return res, nil
}

// Shuffle Returns the accessible part of the shuffle product of auts.
func Shuffle[L, W comparable](auts []*Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	e, err := newProductEngine("shuffle", auts, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	res := e.explore(func(src State, tuple []State) {
		if src == pre {
			e.addProductTransitions(src, tuple)
			return
		}
		e.addShuffleTransitions(src, tuple)
	})
	logProduct("shuffle", auts, res)
	return res, nil
}

// Infiltration Returns the accessible part of the infiltration product of
// auts: the union of the synchronised and the shuffle transitions.
func Infiltration[L, W comparable](auts []*Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	e, err := newProductEngine("infiltration", auts, newOptions(opts...))
	if err != nil {
		return nil, err
	}
	res := e.explore(func(src State, tuple []State) {
		e.addProductTransitions(src, tuple)
		if src != pre {
			e.addShuffleTransitions(src, tuple)
		}
	})
	logProduct("infiltration", auts, res)
	return res, nil
}

// Power Returns the product of n copies of a. Power(a, 0) realises the empty
// word with weight one. Squaring is used unless WithIterative(true) is given or
// the WFA_ITERATIVE environment variable is set. The result has no history.
func Power[L, W comparable](a *Automaton[L, W], n int, opts ...Option) (*Automaton[L, W], error) {
	if err := requireFree(a, "power"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Errorf("power: negative exponent %d", n)
	}
	if n == 0 {
		res := New(a.ctx)
		s := res.AddState()
		res.SetInitialOne(s)
		res.SetFinalOne(s)
		return res, nil
	}

	noHistory := WithHistory(false)
	product := func(x, y *Automaton[L, W]) (*Automaton[L, W], error) {
		return Product([]*Automaton[L, W]{x, y}, noHistory)
	}

	var res *Automaton[L, W]
	var err error
	if newOptions(opts...).iterative {
		res = a
		for i := 1; i < n; i++ {
			if res, err = product(res, a); err != nil {
				return nil, err
			}
		}
	} else {
		base := a
		for n > 0 {
			if n&1 == 1 {
				if res == nil {
					res = base
				} else if res, err = product(res, base); err != nil {
					return nil, err
				}
			}
			n >>= 1
			if n > 0 {
				if base, err = product(base, base); err != nil {
					return nil, err
				}
			}
		}
	}
	if res == a {
		res = Copy(a)
	}
	res.StripHistory()
	return res, nil
}
