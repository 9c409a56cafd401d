package wfa

import (
	"slices"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/geange/wfa/weightset"
)

// epsProfile orders the states to eliminate: fewest outgoing epsilon
// transitions first, then fewest outgoing transitions, then fewest incoming
// epsilon transitions.
type epsProfile struct {
	state  State
	outEps int
	allOut int
	inEps  int
	ticket int
}

func compareProfiles(x, y interface{}) int {
	p, q := x.(*epsProfile), y.(*epsProfile)
	switch {
	case p.outEps != q.outEps:
		return p.outEps - q.outEps
	case p.allOut != q.allOut:
		return p.allOut - q.allOut
	case p.inEps != q.inEps:
		return p.inEps - q.inEps
	}
	return int(p.state) - int(q.state)
}

type closureEntry[W comparable] struct {
	src    State
	weight W
}

// epsilonRemover eliminates the epsilon transitions of an automaton, in place.
type epsilonRemover[L, W comparable] struct {
	a     *Automaton[L, W]
	eps   L
	prune bool

	heap    *binaryheap.Heap
	tickets map[State]int

	added   int
	removed int
}

func newEpsilonRemover[L, W comparable](a *Automaton[L, W], prune bool) *epsilonRemover[L, W] {
	r := &epsilonRemover[L, W]{
		a:       a,
		eps:     a.ctx.Labels.One(),
		prune:   prune,
		heap:    binaryheap.NewWith(compareProfiles),
		tickets: make(map[State]int),
	}
	for s := range a.States() {
		r.update(s)
	}
	return r
}

func (r *epsilonRemover[L, W]) isEps(t Transition) bool {
	return r.a.ctx.Labels.Equals(r.a.transitions[t].label, r.eps)
}

func (r *epsilonRemover[L, W]) profile(s State) *epsProfile {
	p := &epsProfile{state: s, allOut: len(r.a.AllOut(s))}
	for _, t := range r.a.AllOut(s) {
		if r.isEps(t) {
			p.outEps++
		}
	}
	for _, t := range r.a.AllIn(s) {
		if r.isEps(t) {
			p.inEps++
		}
	}
	return p
}

// update pushes the current profile of s. Older entries of s become stale.
func (r *epsilonRemover[L, W]) update(s State) {
	p := r.profile(s)
	if p.inEps == 0 {
		delete(r.tickets, s)
		return
	}
	p.ticket = r.tickets[s] + 1
	r.tickets[s] = p.ticket
	r.heap.Push(p)
}

func (r *epsilonRemover[L, W]) next() (State, bool) {
	for {
		v, ok := r.heap.Pop()
		if !ok {
			return NullState, false
		}
		p := v.(*epsProfile)
		if ticket, ok := r.tickets[p.state]; ok && ticket == p.ticket {
			delete(r.tickets, p.state)
			return p.state, true
		}
	}
}

// run eliminates every epsilon transition. It fails only when a star is undefined.
func (r *epsilonRemover[L, W]) run() error {
	for {
		s, ok := r.next()
		if !ok {
			return nil
		}
		if err := r.removeIncoming(s); err != nil {
			return err
		}
	}
}

func (r *epsilonRemover[L, W]) removeIncoming(s State) error {
	a := r.a
	ws := a.ctx.Weights

	var neighbours []State
	for _, t := range a.AllIn(s) {
		neighbours = append(neighbours, a.SrcOf(t))
	}
	for _, t := range a.AllOut(s) {
		neighbours = append(neighbours, a.DstOf(t))
	}

	star := ws.One()
	var closure []closureEntry[W]
	var incoming []Transition
	for _, t := range a.AllIn(s) {
		if r.isEps(t) {
			incoming = append(incoming, t)
		}
	}
	for _, t := range incoming {
		src, w := a.SrcOf(t), a.WeightOf(t)
		if src == s {
			var err error
			if star, err = ws.Star(w); err != nil {
				return errors.Wrapf(err, "epsilon loop on state %d", s)
			}
			continue
		}
		closure = append(closure, closureEntry[W]{src, w})
	}
	for _, t := range incoming {
		a.DelTransition(t)
		r.removed++
	}

	for _, t := range slices.Clone(a.AllOut(s)) {
		dst, label := a.DstOf(t), a.LabelOf(t)
		blow := ws.Mul(star, a.WeightOf(t))
		a.SetWeight(t, blow)
		for _, c := range closure {
			a.AddTransition(c.src, dst, label, ws.Mul(c.weight, blow))
			r.added++
		}
	}

	if r.prune && len(a.AllIn(s)) == 0 {
		a.DelState(s)
	}

	for _, n := range neighbours {
		if _, ok := r.tickets[n]; ok && n != s {
			r.update(n)
		}
	}
	return nil
}

// eliminationPolicy runs the epsilon-removal according to the star status of the weightset.
type eliminationPolicy[L, W comparable] interface {
	eliminate(a *Automaton[L, W], prune bool) error
}

// starrablePolicy every star is defined: elimination cannot fail.
type starrablePolicy[L, W comparable] struct{}

func (starrablePolicy[L, W]) eliminate(a *Automaton[L, W], prune bool) error {
	return removeEpsilon(a, prune)
}

// topsPolicy elimination is attempted directly; a failure means the automaton is invalid.
type topsPolicy[L, W comparable] struct{}

func (topsPolicy[L, W]) eliminate(a *Automaton[L, W], prune bool) error {
	if err := removeEpsilon(a, prune); err != nil {
		return errors.Wrap(ErrInvalidAutomaton, err.Error())
	}
	return nil
}

// checkedPolicy elimination only runs on automata that pass IsValid.
type checkedPolicy[L, W comparable] struct{}

func (checkedPolicy[L, W]) eliminate(a *Automaton[L, W], prune bool) error {
	if !IsValid(a) {
		return errors.Wrap(ErrInvalidAutomaton, "epsilon-removal")
	}
	if err := removeEpsilon(a, prune); err != nil {
		return errors.Wrap(ErrInvalidAutomaton, err.Error())
	}
	return nil
}

func policyFor[L, W comparable](status weightset.StarStatus) eliminationPolicy[L, W] {
	switch status {
	case weightset.Starrable:
		return starrablePolicy[L, W]{}
	case weightset.Tops:
		return topsPolicy[L, W]{}
	}
	return checkedPolicy[L, W]{}
}

func removeEpsilon[L, W comparable](a *Automaton[L, W], prune bool) error {
	r := newEpsilonRemover(a, prune)
	err := r.run()
	logger.Debug("epsilon-removal",
		zap.Int("added_transitions", r.added),
		zap.Int("removed_transitions", r.removed),
		zap.Int("states", a.NumStates()),
		zap.Error(err))
	return err
}

// InSituRemover eliminates the epsilon transitions of a in place, with no
// validity check. It returns false when some star is undefined, in which case
// a is left in an unspecified state.
func InSituRemover[L, W comparable](a *Automaton[L, W], prune bool) bool {
	if !a.ctx.Labels.HasOne() {
		return true
	}
	return removeEpsilon(a, prune) == nil
}

// ProperHere removes the epsilon transitions of a in place. The error has
// cause ErrInvalidAutomaton when a has no proper equivalent; a may then be
// left modified.
func ProperHere[L, W comparable](a *Automaton[L, W], opts ...Option) error {
	if !a.ctx.Labels.HasOne() || IsProper(a) {
		return nil
	}
	o := newOptions(opts...)
	policy := policyFor[L, W](a.ctx.Weights.StarStatus())
	if o.direction == Forward {
		TransposeHere(a)
		defer TransposeHere(a)
	}
	return policy.eliminate(a, o.prune)
}

// Proper Returns a copy of a without epsilon transitions.
func Proper[L, W comparable](a *Automaton[L, W], opts ...Option) (*Automaton[L, W], error) {
	res := Copy(a)
	if err := ProperHere(res, opts...); err != nil {
		return nil, err
	}
	return res, nil
}

// IsProper Returns true if a has no epsilon transition.
func IsProper[L, W comparable](a *Automaton[L, W]) bool {
	ls := a.ctx.Labels
	if !ls.HasOne() {
		return true
	}
	for t := range a.Transitions() {
		if ls.IsOne(a.LabelOf(t)) {
			return false
		}
	}
	return true
}
