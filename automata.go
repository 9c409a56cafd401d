package wfa

// Automata builds simple automata over a fixed context.
type Automata[L, W comparable] struct {
	ctx Context[L, W]
}

func NewAutomata[L, W comparable](ctx Context[L, W]) *Automata[L, W] {
	return &Automata[L, W]{ctx: ctx}
}

// MakeEmpty
// Returns a new automaton with no state: it realises the zero series.
func (f *Automata[L, W]) MakeEmpty() *Automaton[L, W] {
	return New(f.ctx)
}

// MakeEmptyWord
// Returns a new automaton that gives weight one to the empty word only.
func (f *Automata[L, W]) MakeEmptyWord() *Automaton[L, W] {
	a := New(f.ctx)
	s := a.AddState()
	a.SetInitialOne(s)
	a.SetFinalOne(s)
	return a
}

// MakeWord
// Returns a new (deterministic) automaton that gives weight one to word only.
func (f *Automata[L, W]) MakeWord(word []L) *Automaton[L, W] {
	one := f.ctx.Weights.One()
	a := New(f.ctx)
	s := a.AddState()
	a.SetInitial(s, one)
	for _, l := range word {
		next := a.AddState()
		a.NewTransition(s, next, l, one)
		s = next
	}
	a.SetFinal(s, one)
	return a
}

// MakeAnyWord
// Returns a new (deterministic) automaton that gives weight one to every word.
func (f *Automata[L, W]) MakeAnyWord() *Automaton[L, W] {
	one := f.ctx.Weights.One()
	a := New(f.ctx)
	s := a.AddState()
	a.SetInitial(s, one)
	a.SetFinal(s, one)
	for _, l := range f.ctx.Labels.Genset() {
		a.NewTransition(s, s, l, one)
	}
	return a
}
