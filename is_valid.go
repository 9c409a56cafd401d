package wfa

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/geange/wfa/weightset"
)

// IsEpsAcyclic Returns true if the epsilon transitions of a form no cycle.
func IsEpsAcyclic[L, W comparable](a *Automaton[L, W]) bool {
	ls := a.ctx.Labels
	if !ls.HasOne() {
		return true
	}
	g := simple.NewDirectedGraph()
	for t := range a.Transitions() {
		if !ls.IsOne(a.LabelOf(t)) {
			continue
		}
		src, dst := a.SrcOf(t), a.DstOf(t)
		if src == dst {
			return false
		}
		g.SetEdge(g.NewEdge(simple.Node(src), simple.Node(dst)))
	}
	_, err := topo.Sort(g)
	return err == nil
}

// IsValid Returns true if the epsilon transitions of a can be removed, that
// is if every star needed by the removal is defined.
func IsValid[L, W comparable](a *Automaton[L, W]) bool {
	ws := a.ctx.Weights
	if !a.ctx.Labels.HasOne() {
		return true
	}
	switch ws.StarStatus() {
	case weightset.Starrable:
		return true
	case weightset.Tops:
		if IsProper(a) || IsEpsAcyclic(a) {
			return true
		}
		return InSituRemover(Copy(a), false)
	case weightset.Absval:
		if IsProper(a) || IsEpsAcyclic(a) {
			return true
		}
		av, ok := ws.(weightset.AbsValuer[W])
		if !ok {
			return false
		}
		abs := New(a.ctx)
		copyInto(a, abs, nil, av.Abs)
		return InSituRemover(abs, false)
	}
	return IsProper(a) || IsEpsAcyclic(a)
}
