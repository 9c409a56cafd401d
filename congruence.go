package wfa

import (
	"math"

	"github.com/pkg/errors"
)

// extendedLabel a transition label together with its weight.
type extendedLabel[L, W comparable] struct {
	label  L
	weight W
}

type edge struct {
	src State
	dst State
}

// initialPartition groups the states by the sequence of (label, weight) pairs of
// their outgoing transitions. Part 0 is {Pre} and part 1 is {Post}.
func initialPartition[L, W comparable](a *Automaton[L, W]) [][]State {
	meet := newLinkedMap[extendedLabel[L, W], []State]()
	for s := range a.States() {
		for _, t := range a.AllOut(s) {
			g := meet.at(extendedLabel[L, W]{a.LabelOf(t), a.WeightOf(t)})
			*g = append(*g, s)
		}
	}

	parts := [][]State{{pre}, {post}}
	if meet.size() == 0 {
		if a.NumStates() > 0 {
			parts = append(parts, collectStates(a))
		}
		return parts
	}

	labels := make([][]extendedLabel[L, W], a.MaxState())
	meet.each(func(k extendedLabel[L, W], states *[]State) {
		for _, s := range *states {
			labels[s] = append(labels[s], k)
		}
	})

	return append(parts, weakSort(collectStates(a),
		func(s State) int { return len(labels[s]) },
		func(s State, k int) extendedLabel[L, W] { return labels[s][k] })...)
}

func collectStates[L, W comparable](a *Automaton[L, W]) []State {
	states := make([]State, 0, a.NumStates())
	for s := range a.States() {
		states = append(states, s)
	}
	return states
}

// MooreDet Returns the coarsest congruence of the sequential automaton a,
// computed by Moore's algorithm. Part 0 is {Pre} and part 1 is {Post}.
// It fails with ErrNotSequential on any other automaton.
func MooreDet[L, W comparable](a *Automaton[L, W]) ([][]State, error) {
	if !IsSequential(a) {
		return nil, errors.Wrap(ErrNotSequential, "moore")
	}
	parts := initialPartition(a)

	// successors of each state, ordered like the labels in meet
	meet := newLinkedMap[L, []edge]()
	for s := range a.States() {
		for _, t := range a.AllOut(s) {
			g := meet.at(a.LabelOf(t))
			*g = append(*g, edge{s, a.DstOf(t)})
		}
	}
	succs := make([][]State, a.MaxState())
	meet.each(func(_ L, edges *[]edge) {
		for _, e := range *edges {
			succs[e.src] = append(succs[e.src], e.dst)
		}
	})

	part := make([]int, a.MaxState())
	var queue []int
	for k, states := range parts {
		for _, s := range states {
			part[s] = k
		}
		if len(states) > 1 {
			queue = append(queue, k)
		}
	}

	// 0 marks the end of a round
	queue = append(queue, 0)
	stop := true
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if i == 0 {
			if stop {
				break
			}
			stop = true
			queue = append(queue, 0)
			continue
		}

		newParts := weakSort(parts[i],
			func(s State) int { return len(succs[s]) },
			func(s State, k int) int { return part[succs[s][k]] })
		if len(newParts) == 1 {
			queue = append(queue, i)
			continue
		}
		stop = false

		for k, states := range newParts {
			p := i
			if k == 0 {
				parts[i] = states
			} else {
				p = len(parts)
				for _, s := range states {
					part[s] = p
				}
				parts = append(parts, states)
			}
			if len(parts[p]) > 1 {
				queue = append(queue, p)
			}
		}
	}
	return parts, nil
}

// HopcroftDet Returns the coarsest congruence of the sequential automaton a,
// computed by Hopcroft's algorithm for incomplete automata. Part 0 is {Pre}
// and part 1 is {Post}. It fails with ErrNotSequential on any other automaton.
func HopcroftDet[L, W comparable](a *Automaton[L, W]) ([][]State, error) {
	if !IsSequential(a) {
		return nil, errors.Wrap(ErrNotSequential, "hopcroft")
	}
	h := &hopcroft[L, W]{a: a, part: make([]int, a.MaxState())}
	if isBoolean(a) {
		h.initBoolean()
	} else {
		h.initWeighted()
	}
	for len(h.splitters) > 0 {
		i := h.splitters[0]
		h.splitters = h.splitters[1:]
		h.inQueue[i] = false
		h.split(i)
	}
	return nonEmpty(h.parts), nil
}

func nonEmpty(parts [][]State) [][]State {
	res := parts[:0]
	for _, p := range parts {
		if len(p) > 0 {
			res = append(res, p)
		}
	}
	return res
}

type hopcroft[L, W comparable] struct {
	a         *Automaton[L, W]
	parts     [][]State
	part      []int
	splitters []int
	inQueue   []bool
}

func (h *hopcroft[L, W]) initBoolean() {
	rest := collectStates(h.a)
	h.parts = [][]State{{pre}, {post}, rest}
	h.part[pre], h.part[post] = 0, 1
	for _, s := range rest {
		h.part[s] = 2
	}
	h.inQueue = []bool{false, true, true}
	h.splitters = []int{1, 2}
}

func (h *hopcroft[L, W]) initWeighted() {
	h.parts = initialPartition(h.a)
	largest := 1
	for k := 2; k < len(h.parts); k++ {
		for _, s := range h.parts[k] {
			h.part[s] = k
		}
		if len(h.parts[k]) > len(h.parts[largest]) {
			largest = k
		}
	}
	h.part[pre], h.part[post] = 0, 1
	h.inQueue = append(h.inQueue, false)
	for k := 1; k < len(h.parts); k++ {
		h.inQueue = append(h.inQueue, k != largest)
		if k != largest {
			h.splitters = append(h.splitters, k)
		}
	}
}

// split refines every part with a predecessor in part i.
func (h *hopcroft[L, W]) split(i int) {
	a := h.a

	meet := newLinkedMap[L, []State]()
	for _, s := range h.parts[i] {
		for _, t := range a.AllIn(s) {
			g := meet.at(a.LabelOf(t))
			*g = append(*g, a.SrcOf(t))
		}
	}
	if meet.size() == 0 {
		return
	}

	// labels leading into i, ordered like the labels in meet
	signature := newLinkedMap[State, []L]()
	meet.each(func(l L, srcs *[]State) {
		for _, r := range *srcs {
			sig := signature.at(r)
			*sig = append(*sig, l)
		}
	})

	// met states are grouped by part; their part is undefined until the split
	byPart := newLinkedMap[int, []State]()
	signature.each(func(r State, _ *[]L) {
		g := byPart.at(h.part[r])
		*g = append(*g, r)
		h.part[r] = math.MaxInt
	})

	byPart.each(func(p int, met *[]State) {
		newParts := weakSort(*met,
			func(r State) int { sig, _ := signature.lookup(r); return len(*sig) },
			func(r State, k int) L { sig, _ := signature.lookup(r); return (*sig)[k] })
		var unmet []State
		for _, r := range h.parts[p] {
			if h.part[r] == p {
				unmet = append(unmet, r)
			}
		}
		if len(unmet) > 0 {
			newParts = append(newParts, unmet)
		}
		h.refine(p, newParts)
	})
}

func (h *hopcroft[L, W]) refine(p int, newParts [][]State) {
	assign := func(states []State, k int) {
		for _, r := range states {
			h.part[r] = k
		}
	}

	if h.inQueue[p] {
		h.parts[p] = newParts[0]
		assign(newParts[0], p)
		for _, states := range newParts[1:] {
			np := len(h.parts)
			assign(states, np)
			h.parts = append(h.parts, states)
			h.splitters = append(h.splitters, np)
			h.inQueue = append(h.inQueue, true)
		}
		return
	}

	minPart, maxPart := 0, 0
	for k := 1; k < len(newParts); k++ {
		if len(newParts[k]) > len(newParts[maxPart]) {
			maxPart = k
		}
		if len(newParts[k]) <= len(newParts[minPart]) {
			minPart = k
		}
	}
	for k, states := range newParts {
		if k == minPart {
			// the smallest subpart keeps the index p
			assign(states, p)
			h.parts[p] = states
			if len(newParts) > 1 {
				h.inQueue[p] = true
				h.splitters = append(h.splitters, p)
			}
			continue
		}
		np := len(h.parts)
		assign(states, np)
		h.parts = append(h.parts, states)
		h.inQueue = append(h.inQueue, k != maxPart)
		if k != maxPart {
			h.splitters = append(h.splitters, np)
		}
	}
}

type quotientSignature[L, W comparable] struct {
	label  L
	part   int
	weight W
}

// MooreQuotient Returns the coarsest congruence of the weighted automaton a:
// two states are equivalent when, for every label and every part, the sums of
// the weights of their transitions into that part coincide. Part 0 is {Pre}
// and part 1 is {Post}.
func MooreQuotient[L, W comparable](a *Automaton[L, W]) [][]State {
	ws := a.ctx.Weights

	parts := [][]State{{pre}, {post}, collectStates(a)}
	part := make([]int, a.MaxState())
	part[post] = 1
	for _, s := range parts[2] {
		part[s] = 2
	}
	if len(parts[2]) == 0 {
		parts = parts[:2]
	}

	var queue []int
	if len(parts) > 2 && len(parts[2]) > 1 {
		queue = append(queue, 2)
	}
	queue = append(queue, 0)

	type arc struct {
		src    State
		weight W
		part   int
	}
	type labelled struct {
		src    State
		weight W
		label  L
	}

	stop := true
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if i == 0 {
			if stop {
				break
			}
			stop = true
			queue = append(queue, 0)
			continue
		}

		meet := newLinkedMap[L, []arc]()
		for _, s := range parts[i] {
			for _, t := range a.AllOut(s) {
				g := meet.at(a.LabelOf(t))
				*g = append(*g, arc{s, a.WeightOf(t), part[a.DstOf(t)]})
			}
		}

		meet2 := newLinkedMap[int, []labelled]()
		meet.each(func(l L, arcs *[]arc) {
			for _, x := range *arcs {
				g := meet2.at(x.part)
				*g = append(*g, labelled{x.src, x.weight, l})
			}
		})

		signatures := make(map[State][]quotientSignature[L, W], len(parts[i]))
		meet2.each(func(j int, ls *[]labelled) {
			for _, x := range *ls {
				sig := signatures[x.src]
				if n := len(sig); n > 0 && sig[n-1].part == j && sig[n-1].label == x.label {
					sig[n-1].weight = ws.Add(sig[n-1].weight, x.weight)
					continue
				}
				signatures[x.src] = append(sig, quotientSignature[L, W]{x.label, j, x.weight})
			}
		})

		// weights summing to zero leave no trace in the signature
		for s, sig := range signatures {
			kept := sig[:0]
			for _, x := range sig {
				if !ws.IsZero(x.weight) {
					kept = append(kept, x)
				}
			}
			signatures[s] = kept
		}

		newParts := weakSort(parts[i],
			func(s State) int { return len(signatures[s]) },
			func(s State, k int) quotientSignature[L, W] { return signatures[s][k] })
		if len(newParts) == 1 {
			queue = append(queue, i)
			continue
		}
		stop = false

		for k, states := range newParts {
			p := i
			if k == 0 {
				parts[i] = states
			} else {
				p = len(parts)
				for _, s := range states {
					part[s] = p
				}
				parts = append(parts, states)
			}
			if len(parts[p]) > 1 {
				queue = append(queue, p)
			}
		}
	}
	return parts
}
