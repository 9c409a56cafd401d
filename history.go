package wfa

import (
	"strconv"
	"strings"
)

// History records where the states of an automaton come from.
type History interface {
	HasHistory(s State) bool
	RemoveHistory(s State)
	// Format Returns a display string for the origin of s.
	Format(s State) string
}

// NoHistory the empty history.
type NoHistory struct{}

func (NoHistory) HasHistory(State) bool { return false }

func (NoHistory) RemoveHistory(State) {}

func (NoHistory) Format(State) string { return "" }

// SingleHistory maps each state to one state of another automaton.
type SingleHistory struct {
	origins map[State]State
}

func NewSingleHistory() *SingleHistory {
	return &SingleHistory{origins: make(map[State]State)}
}

func (h *SingleHistory) AddState(s, origin State) {
	h.origins[s] = origin
}

// GetState Returns the origin of s, or NullState.
func (h *SingleHistory) GetState(s State) State {
	if origin, ok := h.origins[s]; ok {
		return origin
	}
	return NullState
}

func (h *SingleHistory) HasHistory(s State) bool {
	_, ok := h.origins[s]
	return ok
}

func (h *SingleHistory) RemoveHistory(s State) {
	delete(h.origins, s)
}

func (h *SingleHistory) Format(s State) string {
	origin, ok := h.origins[s]
	if !ok {
		return ""
	}
	return formatState(origin)
}

// PartitionHistory maps each state to a set of states of another automaton.
type PartitionHistory struct {
	origins map[State][]State
}

func NewPartitionHistory() *PartitionHistory {
	return &PartitionHistory{origins: make(map[State][]State)}
}

// AddState records the sorted set of origins of s.
func (h *PartitionHistory) AddState(s State, set []State) {
	h.origins[s] = set
}

func (h *PartitionHistory) GetStateSet(s State) []State {
	return h.origins[s]
}

func (h *PartitionHistory) HasHistory(s State) bool {
	_, ok := h.origins[s]
	return ok
}

func (h *PartitionHistory) RemoveHistory(s State) {
	delete(h.origins, s)
}

func (h *PartitionHistory) Format(s State) string {
	set, ok := h.origins[s]
	if !ok {
		return ""
	}
	return formatStates("{", set, "}")
}

// TupleHistory maps each state to a tuple of states, one per operand of a product.
type TupleHistory struct {
	origins map[State][]State
}

func NewTupleHistory() *TupleHistory {
	return &TupleHistory{origins: make(map[State][]State)}
}

func (h *TupleHistory) AddState(s State, tuple []State) {
	h.origins[s] = tuple
}

func (h *TupleHistory) GetTuple(s State) []State {
	return h.origins[s]
}

func (h *TupleHistory) HasHistory(s State) bool {
	_, ok := h.origins[s]
	return ok
}

func (h *TupleHistory) RemoveHistory(s State) {
	delete(h.origins, s)
}

func (h *TupleHistory) Format(s State) string {
	tuple, ok := h.origins[s]
	if !ok {
		return ""
	}
	return formatStates("(", tuple, ")")
}

func formatState(s State) string {
	return strconv.Itoa(int(s) - 2)
}

func formatStates(open string, states []State, closing string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, s := range states {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatState(s))
	}
	sb.WriteString(closing)
	return sb.String()
}
