package wfa

import (
	"cmp"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/combin"
)

// IsomorphismResponse tells how CheckIsomorphism reached its verdict.
type IsomorphismResponse int

const (
	// Isomorphic a bijection was found.
	Isomorphic IsomorphismResponse = iota
	// Counterexample the sequential walk met a pair of states that cannot correspond.
	Counterexample
	// NoCounterexample every candidate bijection was rejected.
	NoCounterexample
	// TriviallyDifferent the sizes or the sequentiality differ.
	TriviallyDifferent
)

func (r IsomorphismResponse) String() string {
	switch r {
	case Isomorphic:
		return "isomorphic"
	case Counterexample:
		return "counterexample"
	case NoCounterexample:
		return "no counterexample"
	case TriviallyDifferent:
		return "trivially different"
	}
	return "unknown"
}

// IsomorphismResult the outcome of CheckIsomorphism. S1ToS2 and S2ToS1 hold the
// bijection when Response is Isomorphic. Counterexample is only meaningful
// when Response is Counterexample.
type IsomorphismResult struct {
	Response       IsomorphismResponse
	Counterexample [2]State
	S1ToS2         map[State]State
	S2ToS1         map[State]State
}

type seqTarget[W comparable] struct {
	weight W
	dst    State
}

// sequentialOut maps each state to its unique transition per label.
type sequentialOut[L, W comparable] map[State]map[L]seqTarget[W]

// nonsequentialOut maps each state to its destinations, by label then weight.
type nonsequentialOut[L, W comparable] map[State]map[L]map[W][]State

type isomorphismChecker[L, W comparable] struct {
	a1, a2       *Automaton[L, W]
	dout1, dout2 sequentialOut[L, W]
	nout1, nout2 nonsequentialOut[L, W]
	res          *IsomorphismResult

	// states of a1 and a2 that may correspond, grouped by class
	classes [][2][]State
}

// AreIsomorphic Returns true if a1 and a2 are equal up to a renumbering of
// their states. Both automata must be accessible.
func AreIsomorphic[L, W comparable](a1, a2 *Automaton[L, W]) (bool, error) {
	r, err := CheckIsomorphism(a1, a2)
	if err != nil {
		return false, err
	}
	return r.Response == Isomorphic, nil
}

// CheckIsomorphism searches a bijection between the states of a1 and a2 that
// preserves Pre, Post, labels and weights. Sequential automata are compared by
// a simultaneous walk; other automata by trying every bijection compatible
// with a structural classification of the states.
func CheckIsomorphism[L, W comparable](a1, a2 *Automaton[L, W]) (*IsomorphismResult, error) {
	if err := requireAccessible(a1, "are-isomorphic: lhs"); err != nil {
		return nil, err
	}
	if err := requireAccessible(a2, "are-isomorphic: rhs"); err != nil {
		return nil, err
	}

	c := &isomorphismChecker[L, W]{
		a1: a1,
		a2: a2,
		res: &IsomorphismResult{
			Response:       TriviallyDifferent,
			Counterexample: [2]State{NullState, NullState},
			S1ToS2:         make(map[State]State),
			S2ToS1:         make(map[State]State),
		},
	}
	if a1.NumStates() != a2.NumStates() || a1.NumTransitions() != a2.NumTransitions() {
		return c.res, nil
	}

	var ok1, ok2 bool
	c.dout1, ok1 = sequentialFilling(a1)
	c.dout2, ok2 = sequentialFilling(a2)
	switch {
	case ok1 && ok2:
		c.checkSequential()
	case ok1 != ok2:
		// different sequentiality
	default:
		c.nout1, c.nout2 = nonsequentialFilling(a1), nonsequentialFilling(a2)
		c.checkNonsequential()
	}
	logger.Debug("are-isomorphic",
		zap.Int("states", a1.NumStates()),
		zap.Int("classes", len(c.classes)),
		zap.Stringer("response", c.res.Response))
	return c.res, nil
}

func sequentialFilling[L, W comparable](a *Automaton[L, W]) (sequentialOut[L, W], bool) {
	dout := make(sequentialOut[L, W])
	for t := range a.AllTransitions() {
		src, l := a.SrcOf(t), a.LabelOf(t)
		m, ok := dout[src]
		if !ok {
			m = make(map[L]seqTarget[W])
			dout[src] = m
		}
		if _, ok := m[l]; ok {
			return nil, false
		}
		m[l] = seqTarget[W]{a.WeightOf(t), a.DstOf(t)}
	}
	return dout, true
}

func nonsequentialFilling[L, W comparable](a *Automaton[L, W]) nonsequentialOut[L, W] {
	nout := make(nonsequentialOut[L, W])
	for t := range a.AllTransitions() {
		src, l, w := a.SrcOf(t), a.LabelOf(t), a.WeightOf(t)
		byLabel, ok := nout[src]
		if !ok {
			byLabel = make(map[L]map[W][]State)
			nout[src] = byLabel
		}
		byWeight, ok := byLabel[l]
		if !ok {
			byWeight = make(map[W][]State)
			byLabel[l] = byWeight
		}
		byWeight[w] = append(byWeight[w], a.DstOf(t))
	}
	return nout
}

func (c *isomorphismChecker[L, W]) checkSequential() {
	ws := c.a1.ctx.Weights
	res := c.res
	res.Response = Counterexample
	res.S1ToS2[pre], res.S2ToS1[pre] = pre, pre

	worklist := [][2]State{{pre, pre}}
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		s1, s2 := p[0], p[1]
		res.Counterexample = p

		out1, out2 := c.dout1[s1], c.dout2[s2]
		if len(out1) != len(out2) {
			return
		}
		for l, t1 := range out1 {
			t2, ok := out2[l]
			if !ok || !ws.Equals(t1.weight, t2.weight) {
				return
			}
			m2, ok1 := res.S1ToS2[t1.dst]
			m1, ok2 := res.S2ToS1[t2.dst]
			switch {
			case !ok1 && !ok2:
				res.S1ToS2[t1.dst] = t2.dst
				res.S2ToS1[t2.dst] = t1.dst
				worklist = append(worklist, [2]State{t1.dst, t2.dst})
			case !ok1 || !ok2 || m2 != t2.dst || m1 != t1.dst:
				return
			}
		}
	}
	res.Response = Isomorphic
	res.Counterexample = [2]State{NullState, NullState}
}

func (c *isomorphismChecker[L, W]) checkNonsequential() {
	c.classes = c.makeClasses()
	c.res.Response = NoCounterexample
	for _, class := range c.classes {
		if len(class[0]) != len(class[1]) {
			return
		}
	}

	perms := newClassPermutations(c.classes)
	for {
		c.applyPermutation(perms.current)
		if c.isValid() {
			c.res.Response = Isomorphic
			return
		}
		if !perms.next() {
			break
		}
	}
	clear(c.res.S1ToS2)
	clear(c.res.S2ToS1)
}

func (c *isomorphismChecker[L, W]) applyPermutation(perms [][]int) {
	for k, class := range c.classes {
		for i, s1 := range class[0] {
			s2 := class[1][perms[k][i]]
			c.res.S1ToS2[s1] = s2
			c.res.S2ToS1[s2] = s1
		}
	}
}

// classOf hashes what an isomorphism preserves: being Pre or Post, the sorted
// (weight, label) pairs of the incoming and outgoing transitions, and the
// number of distinct neighbours on each side.
func classOf[L, W comparable](a *Automaton[L, W], s State) uint64 {
	ws, ls := a.ctx.Weights, a.ctx.Labels
	var h uint64
	h = hashCombine(h, boolHash(s == pre))
	h = hashCombine(h, boolHash(s == post))

	hashTransitions := func(ts []Transition, endpoint func(Transition) State) {
		tt := make([]extendedLabel[L, W], len(ts))
		endpoints := make(map[State]struct{})
		for i, t := range ts {
			tt[i] = extendedLabel[L, W]{a.LabelOf(t), a.WeightOf(t)}
			endpoints[endpoint(t)] = struct{}{}
		}
		slices.SortFunc(tt, func(x, y extendedLabel[L, W]) int {
			switch {
			case ws.LessThan(x.weight, y.weight):
				return -1
			case ws.LessThan(y.weight, x.weight):
				return 1
			case ls.LessThan(x.label, y.label):
				return -1
			case ls.LessThan(y.label, x.label):
				return 1
			}
			return 0
		})
		for _, x := range tt {
			h = hashCombine(h, ws.Hash(x.weight))
			h = hashCombine(h, ls.Hash(x.label))
		}
		h = hashCombine(h, uint64(len(endpoints)))
	}
	hashTransitions(a.AllIn(s), a.SrcOf)
	hashTransitions(a.AllOut(s), a.DstOf)
	return h
}

func boolHash(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// makeClasses groups the states of both automata by class, the largest
// classes first. Members are sorted so that the enumeration starts from the
// identity permutation of every class.
func (c *isomorphismChecker[L, W]) makeClasses() [][2][]State {
	table := make(map[uint64]*[2][]State)
	var ids []uint64
	add := func(side int, a *Automaton[L, W]) {
		for s := range a.AllStates() {
			id := classOf(a, s)
			class, ok := table[id]
			if !ok {
				class = new([2][]State)
				table[id] = class
				ids = append(ids, id)
			}
			class[side] = append(class[side], s)
		}
	}
	add(0, c.a1)
	add(1, c.a2)

	classes := make([][2][]State, 0, len(ids))
	for _, id := range ids {
		class := *table[id]
		slices.Sort(class[0])
		slices.Sort(class[1])
		classes = append(classes, class)
	}
	slices.SortStableFunc(classes, func(x, y [2][]State) int {
		return cmp.Compare(len(y[0]), len(x[0]))
	})
	return classes
}

// isValid checks the current bijection by walking both automata from Pre and
// from Post.
func (c *isomorphismChecker[L, W]) isValid() bool {
	a1, a2 := c.a1, c.a2
	s1ToS2, s2ToS1 := c.res.S1ToS2, c.res.S2ToS1
	marked1 := make(map[State]struct{})
	marked2 := make(map[State]struct{})

	worklist := [][2]State{{pre, pre}, {post, post}}
	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		s1, s2 := p[0], p[1]

		if m, ok := s1ToS2[s1]; !ok || m != s2 {
			return false
		}
		if m, ok := s2ToS1[s2]; !ok || m != s1 {
			return false
		}
		_, m1 := marked1[s1]
		_, m2 := marked2[s2]
		if m1 != m2 {
			return false
		}
		if m1 {
			continue
		}
		marked1[s1] = struct{}{}
		marked2[s2] = struct{}{}

		if (s1 == pre) != (s2 == pre) || (s1 == post) != (s2 == post) {
			return false
		}

		out1, out2 := a1.AllOut(s1), a2.AllOut(s2)
		if len(out1) != len(out2) {
			return false
		}
		for _, t1 := range out1 {
			d1 := a1.DstOf(t1)
			d2 := s1ToS2[d1]
			if !slices.Contains(c.nout2[s2][a1.LabelOf(t1)][a1.WeightOf(t1)], d2) {
				return false
			}
			worklist = append(worklist, [2]State{d1, d2})
		}
		for _, t2 := range out2 {
			d2 := a2.DstOf(t2)
			d1 := s2ToS1[d2]
			if !slices.Contains(c.nout1[s1][a2.LabelOf(t2)][a2.WeightOf(t2)], d1) {
				return false
			}
			worklist = append(worklist, [2]State{d1, d2})
		}
	}
	return true
}

// classPermutations enumerates the cross product of the permutations of every
// class, like an odometer: the last class turns fastest and carries into the
// previous ones when its permutations are exhausted.
type classPermutations struct {
	sizes   []int
	gens    []*combin.PermutationGenerator
	current [][]int
}

func newClassPermutations(classes [][2][]State) *classPermutations {
	p := &classPermutations{
		sizes:   make([]int, len(classes)),
		gens:    make([]*combin.PermutationGenerator, len(classes)),
		current: make([][]int, len(classes)),
	}
	for k, class := range classes {
		p.sizes[k] = len(class[1])
		p.reset(k)
	}
	return p
}

func (p *classPermutations) reset(k int) {
	n := p.sizes[k]
	if n < 2 {
		p.gens[k] = nil
		p.current[k] = identity(n)
		return
	}
	p.gens[k] = combin.NewPermutationGenerator(n, n)
	p.gens[k].Next()
	p.current[k] = p.gens[k].Permutation(p.current[k])
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// next moves to the following combination. It returns false once every
// combination was produced.
func (p *classPermutations) next() bool {
	for k := len(p.gens) - 1; k >= 0; k-- {
		if g := p.gens[k]; g != nil && g.Next() {
			p.current[k] = g.Permutation(p.current[k])
			return true
		}
		p.reset(k)
	}
	return false
}
