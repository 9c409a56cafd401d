package wfa

import (
	"iter"
	"strconv"

	"github.com/geange/wfa/labelset"
	"github.com/geange/wfa/weightset"
)

// State handle of a state in an Automaton.
type State int

// Transition handle of a transition in an Automaton.
type Transition int

const (
	// NullState is returned when no state matches.
	NullState = State(-1)
	// NullTransition is returned when no transition matches. It also tags deleted states.
	NullTransition = Transition(-1)

	pre  = State(0)
	post = State(1)
)

// Context the algebraic context of an automaton. It never changes after New.
type Context[L, W comparable] struct {
	Labels  labelset.LabelSet[L]
	Weights weightset.WeightSet[W]
}

type storedState struct {
	succ []Transition
	pred []Transition
}

type storedTransition[L, W comparable] struct {
	src    State
	dst    State
	label  L
	weight W
}

// Automaton a weighted automaton over the labels L and the weights W.
//
// States and transitions are kept in two arenas with free lists, so handles of
// deleted objects are recycled by later insertions. Two states always exist:
// Pre, the source of every initial transition, and Post, the destination of
// every final transition. Initial and final transitions carry the special
// label of the labelset.
//
// A transition with a zero weight is never stored.
type Automaton[L, W comparable] struct {
	ctx Context[L, W]

	states          []storedState
	transitions     []storedTransition[L, W]
	freeStates      []State
	freeTransitions []Transition

	history History
	names   map[State]string
	name    string
	desc    string
}

// New creates an automaton with no state other than Pre and Post.
func New[L, W comparable](ctx Context[L, W]) *Automaton[L, W] {
	return &Automaton[L, W]{
		ctx:     ctx,
		states:  make([]storedState, 2, 16),
		history: NoHistory{},
	}
}

func (a *Automaton[L, W]) Context() Context[L, W] {
	return a.ctx
}

func (a *Automaton[L, W]) LabelSet() labelset.LabelSet[L] {
	return a.ctx.Labels
}

func (a *Automaton[L, W]) WeightSet() weightset.WeightSet[W] {
	return a.ctx.Weights
}

// Pre Returns the pre-initial state.
func (a *Automaton[L, W]) Pre() State { return pre }

// Post Returns the post-final state.
func (a *Automaton[L, W]) Post() State { return post }

// AddState Create a new state, recycling a deleted handle if there is one.
func (a *Automaton[L, W]) AddState() State {
	if n := len(a.freeStates); n > 0 {
		s := a.freeStates[n-1]
		a.freeStates = a.freeStates[:n-1]
		st := &a.states[s]
		st.succ = st.succ[:0]
		st.pred = st.pred[:0]
		return s
	}
	s := State(len(a.states))
	a.states = grow(a.states, len(a.states)+1)
	return s
}

// DelState removes s and every transition incident to s.
func (a *Automaton[L, W]) DelState(s State) {
	if checks {
		assertf(s != pre && s != post, "cannot delete pre or post")
		assertf(a.HasState(s), "state %d is not live", s)
	}

	st := &a.states[s]
	for len(st.succ) > 0 {
		a.DelTransition(st.succ[len(st.succ)-1])
	}
	for len(st.pred) > 0 {
		a.DelTransition(st.pred[len(st.pred)-1])
	}
	a.history.RemoveHistory(s)
	delete(a.names, s)
	st.succ = append(st.succ, NullTransition)
	a.freeStates = append(a.freeStates, s)
}

// HasState Returns true if s is a live state.
func (a *Automaton[L, W]) HasState(s State) bool {
	if s < 0 || int(s) >= len(a.states) {
		return false
	}
	succ := a.states[s].succ
	return len(succ) == 0 || succ[0] != NullTransition
}

// NumStates number of live states, Pre and Post excluded.
func (a *Automaton[L, W]) NumStates() int {
	return len(a.states) - len(a.freeStates) - 2
}

// NumAllStates number of live states, Pre and Post included.
func (a *Automaton[L, W]) NumAllStates() int {
	return len(a.states) - len(a.freeStates)
}

// MaxState Returns an upper bound of every state handle.
func (a *Automaton[L, W]) MaxState() int {
	return len(a.states)
}

// MaxTransition Returns an upper bound of every transition handle.
func (a *Automaton[L, W]) MaxTransition() int {
	return len(a.transitions)
}

func (a *Automaton[L, W]) NumInitials() int {
	return len(a.states[pre].succ)
}

func (a *Automaton[L, W]) NumFinals() int {
	return len(a.states[post].pred)
}

// NumTransitions number of live transitions, initial and final ones excluded.
func (a *Automaton[L, W]) NumTransitions() int {
	return a.NumAllTransitions() - a.NumInitials() - a.NumFinals()
}

// NumAllTransitions number of live transitions, initial and final ones included.
func (a *Automaton[L, W]) NumAllTransitions() int {
	return len(a.transitions) - len(a.freeTransitions)
}

func (a *Automaton[L, W]) IsLiveTransition(t Transition) bool {
	return t >= 0 && int(t) < len(a.transitions) && a.transitions[t].src != NullState
}

func (a *Automaton[L, W]) SrcOf(t Transition) State {
	return a.transitions[t].src
}

func (a *Automaton[L, W]) DstOf(t Transition) State {
	return a.transitions[t].dst
}

func (a *Automaton[L, W]) LabelOf(t Transition) L {
	return a.transitions[t].label
}

func (a *Automaton[L, W]) WeightOf(t Transition) W {
	return a.transitions[t].weight
}

// GetTransition Returns the transition src -label-> dst, or NullTransition.
// It scans the shorter of the successors of src and the predecessors of dst.
func (a *Automaton[L, W]) GetTransition(src, dst State, label L) Transition {
	if checks {
		assertf(a.HasState(src) && a.HasState(dst), "stale state %d or %d", src, dst)
	}

	ls := a.ctx.Labels
	succ, pred := a.states[src].succ, a.states[dst].pred
	if len(succ) <= len(pred) {
		for _, t := range succ {
			tr := &a.transitions[t]
			if tr.dst == dst && ls.Equals(tr.label, label) {
				return t
			}
		}
		return NullTransition
	}
	for _, t := range pred {
		tr := &a.transitions[t]
		if tr.src == src && ls.Equals(tr.label, label) {
			return t
		}
	}
	return NullTransition
}

func (a *Automaton[L, W]) HasTransition(src, dst State, label L) bool {
	return a.GetTransition(src, dst, label) != NullTransition
}

// NewTransition creates src -label-> dst with the given weight. There must be
// no such transition already. A zero weight creates nothing and NullTransition
// is returned.
func (a *Automaton[L, W]) NewTransition(src, dst State, label L, weight W) Transition {
	if checks {
		assertf(src != post && dst != pre, "no transition leaves post or reaches pre")
		assertf(!a.HasTransition(src, dst, label), "transition %d -> %d already exists", src, dst)
	}

	if a.ctx.Weights.IsZero(weight) {
		return NullTransition
	}

	var t Transition
	if n := len(a.freeTransitions); n > 0 {
		t = a.freeTransitions[n-1]
		a.freeTransitions = a.freeTransitions[:n-1]
	} else {
		t = Transition(len(a.transitions))
		a.transitions = grow(a.transitions, len(a.transitions)+1)
	}
	a.transitions[t] = storedTransition[L, W]{src: src, dst: dst, label: label, weight: weight}
	a.states[src].succ = append(a.states[src].succ, t)
	a.states[dst].pred = append(a.states[dst].pred, t)
	return t
}

// SetTransition sets the weight of src -label-> dst, creating or deleting the
// transition as needed.
func (a *Automaton[L, W]) SetTransition(src, dst State, label L, weight W) Transition {
	t := a.GetTransition(src, dst, label)
	if t == NullTransition {
		return a.NewTransition(src, dst, label, weight)
	}
	if a.ctx.Weights.IsZero(weight) {
		a.DelTransition(t)
		return NullTransition
	}
	tr := &a.transitions[t]
	tr.label = label
	tr.weight = weight
	return t
}

// AddTransition adds weight to src -label-> dst and returns the resulting weight.
func (a *Automaton[L, W]) AddTransition(src, dst State, label L, weight W) W {
	t := a.GetTransition(src, dst, label)
	if t == NullTransition {
		a.NewTransition(src, dst, label, weight)
		return weight
	}
	return a.AddWeight(t, weight)
}

// SetWeight sets the weight of t. A zero weight deletes t.
func (a *Automaton[L, W]) SetWeight(t Transition, weight W) W {
	if a.ctx.Weights.IsZero(weight) {
		a.DelTransition(t)
	} else {
		a.transitions[t].weight = weight
	}
	return weight
}

func (a *Automaton[L, W]) AddWeight(t Transition, weight W) W {
	return a.SetWeight(t, a.ctx.Weights.Add(a.transitions[t].weight, weight))
}

// LMulWeight multiplies the weight of t by weight on the left.
func (a *Automaton[L, W]) LMulWeight(t Transition, weight W) W {
	return a.SetWeight(t, a.ctx.Weights.Mul(weight, a.transitions[t].weight))
}

// RMulWeight multiplies the weight of t by weight on the right.
func (a *Automaton[L, W]) RMulWeight(t Transition, weight W) W {
	return a.SetWeight(t, a.ctx.Weights.Mul(a.transitions[t].weight, weight))
}

// DelTransition removes t from the automaton.
func (a *Automaton[L, W]) DelTransition(t Transition) {
	if checks {
		assertf(a.IsLiveTransition(t), "transition %d is not live", t)
	}

	tr := &a.transitions[t]
	removeTransition(&a.states[tr.src].succ, t)
	removeTransition(&a.states[tr.dst].pred, t)
	var zero storedTransition[L, W]
	*tr = zero
	tr.src = NullState
	tr.dst = NullState
	a.freeTransitions = append(a.freeTransitions, t)
}

// DelTransitionLabel removes src -label-> dst if it exists.
func (a *Automaton[L, W]) DelTransitionLabel(src, dst State, label L) {
	if t := a.GetTransition(src, dst, label); t != NullTransition {
		a.DelTransition(t)
	}
}

// DelTransitions removes every transition from src to dst.
func (a *Automaton[L, W]) DelTransitions(src, dst State) {
	var ts []Transition
	for _, t := range a.states[src].succ {
		if a.transitions[t].dst == dst {
			ts = append(ts, t)
		}
	}
	for _, t := range ts {
		a.DelTransition(t)
	}
}

func removeTransition(ts *[]Transition, t Transition) {
	s := *ts
	for i, u := range s {
		if u == t {
			last := len(s) - 1
			s[i] = s[last]
			*ts = s[:last]
			return
		}
	}
}

// SetInitial sets the initial weight of s.
func (a *Automaton[L, W]) SetInitial(s State, weight W) Transition {
	return a.SetTransition(pre, s, a.ctx.Labels.Special(), weight)
}

// SetInitialOne makes s initial with weight one.
func (a *Automaton[L, W]) SetInitialOne(s State) Transition {
	return a.SetInitial(s, a.ctx.Weights.One())
}

func (a *Automaton[L, W]) AddInitial(s State, weight W) W {
	return a.AddTransition(pre, s, a.ctx.Labels.Special(), weight)
}

func (a *Automaton[L, W]) UnsetInitial(s State) {
	a.DelTransitionLabel(pre, s, a.ctx.Labels.Special())
}

func (a *Automaton[L, W]) IsInitial(s State) bool {
	return a.HasTransition(pre, s, a.ctx.Labels.Special())
}

// InitialWeight Returns the initial weight of s, zero if s is not initial.
func (a *Automaton[L, W]) InitialWeight(s State) W {
	t := a.GetTransition(pre, s, a.ctx.Labels.Special())
	if t == NullTransition {
		return a.ctx.Weights.Zero()
	}
	return a.transitions[t].weight
}

// SetFinal sets the final weight of s.
func (a *Automaton[L, W]) SetFinal(s State, weight W) Transition {
	return a.SetTransition(s, post, a.ctx.Labels.Special(), weight)
}

// SetFinalOne makes s final with weight one.
func (a *Automaton[L, W]) SetFinalOne(s State) Transition {
	return a.SetFinal(s, a.ctx.Weights.One())
}

func (a *Automaton[L, W]) AddFinal(s State, weight W) W {
	return a.AddTransition(s, post, a.ctx.Labels.Special(), weight)
}

func (a *Automaton[L, W]) UnsetFinal(s State) {
	a.DelTransitionLabel(s, post, a.ctx.Labels.Special())
}

func (a *Automaton[L, W]) IsFinal(s State) bool {
	return a.HasTransition(s, post, a.ctx.Labels.Special())
}

// FinalWeight Returns the final weight of s, zero if s is not final.
func (a *Automaton[L, W]) FinalWeight(s State) W {
	t := a.GetTransition(s, post, a.ctx.Labels.Special())
	if t == NullTransition {
		return a.ctx.Weights.Zero()
	}
	return a.transitions[t].weight
}

// States iterates over the live states, Pre and Post excluded.
func (a *Automaton[L, W]) States() iter.Seq[State] {
	return a.statesFrom(2)
}

// AllStates iterates over the live states, Pre and Post included.
func (a *Automaton[L, W]) AllStates() iter.Seq[State] {
	return a.statesFrom(0)
}

func (a *Automaton[L, W]) statesFrom(first State) iter.Seq[State] {
	return func(yield func(State) bool) {
		for s := first; int(s) < len(a.states); s++ {
			if a.HasState(s) && !yield(s) {
				return
			}
		}
	}
}

// Transitions iterates over the live transitions, initial and final ones excluded.
func (a *Automaton[L, W]) Transitions() iter.Seq[Transition] {
	return a.transitionsWhere(func(tr *storedTransition[L, W]) bool {
		return tr.src != pre && tr.dst != post
	})
}

// AllTransitions iterates over every live transition.
func (a *Automaton[L, W]) AllTransitions() iter.Seq[Transition] {
	return a.transitionsWhere(func(*storedTransition[L, W]) bool { return true })
}

func (a *Automaton[L, W]) transitionsWhere(keep func(*storedTransition[L, W]) bool) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for i := range a.transitions {
			tr := &a.transitions[i]
			if tr.src == NullState || !keep(tr) {
				continue
			}
			if !yield(Transition(i)) {
				return
			}
		}
	}
}

// InitialTransitions iterates over the transitions leaving Pre.
func (a *Automaton[L, W]) InitialTransitions() iter.Seq[Transition] {
	return a.filter(a.states[pre].succ, nil)
}

// FinalTransitions iterates over the transitions reaching Post.
func (a *Automaton[L, W]) FinalTransitions() iter.Seq[Transition] {
	return a.filter(a.states[post].pred, nil)
}

// Out iterates over the transitions leaving s, final transition excluded.
func (a *Automaton[L, W]) Out(s State) iter.Seq[Transition] {
	return a.filter(a.states[s].succ, func(tr *storedTransition[L, W]) bool {
		return tr.dst != post
	})
}

// In iterates over the transitions reaching s, initial transition excluded.
func (a *Automaton[L, W]) In(s State) iter.Seq[Transition] {
	return a.filter(a.states[s].pred, func(tr *storedTransition[L, W]) bool {
		return tr.src != pre
	})
}

// OutLabel iterates over the transitions leaving s with the given label.
func (a *Automaton[L, W]) OutLabel(s State, label L) iter.Seq[Transition] {
	ls := a.ctx.Labels
	return a.filter(a.states[s].succ, func(tr *storedTransition[L, W]) bool {
		return ls.Equals(tr.label, label)
	})
}

// InLabel iterates over the transitions reaching s with the given label.
func (a *Automaton[L, W]) InLabel(s State, label L) iter.Seq[Transition] {
	ls := a.ctx.Labels
	return a.filter(a.states[s].pred, func(tr *storedTransition[L, W]) bool {
		return ls.Equals(tr.label, label)
	})
}

// OutIn iterates over the transitions from src to dst.
func (a *Automaton[L, W]) OutIn(src, dst State) iter.Seq[Transition] {
	return a.filter(a.states[src].succ, func(tr *storedTransition[L, W]) bool {
		return tr.dst == dst
	})
}

// AllOut Returns the transitions leaving s, final transition included.
// The slice belongs to the automaton and must not be retained across mutations.
func (a *Automaton[L, W]) AllOut(s State) []Transition {
	return a.states[s].succ
}

// AllIn Returns the transitions reaching s, initial transition included.
// The slice belongs to the automaton and must not be retained across mutations.
func (a *Automaton[L, W]) AllIn(s State) []Transition {
	return a.states[s].pred
}

func (a *Automaton[L, W]) filter(ts []Transition, keep func(*storedTransition[L, W]) bool) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for _, t := range ts {
			if keep != nil && !keep(&a.transitions[t]) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (a *Automaton[L, W]) History() History {
	return a.history
}

func (a *Automaton[L, W]) SetHistory(h History) {
	if h == nil {
		h = NoHistory{}
	}
	a.history = h
}

func (a *Automaton[L, W]) StripHistory() {
	a.history = NoHistory{}
}

func (a *Automaton[L, W]) SetName(name string) { a.name = name }

func (a *Automaton[L, W]) Name() string { return a.name }

func (a *Automaton[L, W]) SetDesc(desc string) { a.desc = desc }

func (a *Automaton[L, W]) Desc() string { return a.desc }

// SetStateName sets the display name of s. Names must stay injective.
func (a *Automaton[L, W]) SetStateName(s State, name string) {
	if a.names == nil {
		a.names = make(map[State]string)
	}
	a.names[s] = name
}

func (a *Automaton[L, W]) HasExplicitName(s State) bool {
	_, ok := a.names[s]
	return ok
}

// StateName Returns the display name of s: its explicit name if any, its
// history otherwise, its number at last.
func (a *Automaton[L, W]) StateName(s State) string {
	if name, ok := a.names[s]; ok {
		return name
	}
	if s == pre || s == post {
		return "_"
	}
	if a.history.HasHistory(s) {
		return a.history.Format(s)
	}
	return strconv.Itoa(int(s) - 2)
}

// StateByName Returns the state with the given explicit name, or NullState.
func (a *Automaton[L, W]) StateByName(name string) State {
	for s, n := range a.names {
		if n == name {
			return s
		}
	}
	return NullState
}

func (a *Automaton[L, W]) StripNames() {
	a.names = nil
}

// SetStateNamesFromHistory turns the history of every state into its explicit name.
func (a *Automaton[L, W]) SetStateNamesFromHistory() {
	for s := range a.States() {
		if !a.HasExplicitName(s) && a.history.HasHistory(s) {
			a.SetStateName(s, a.history.Format(s))
		}
	}
}
