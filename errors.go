package wfa

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAutomaton the automaton has no valid epsilon-removal.
	ErrInvalidAutomaton = errors.New("invalid automaton")
	// ErrNotFree the algorithm requires a free labelset.
	ErrNotFree = errors.New("labelset is not free")
	// ErrNotBoolean the algorithm requires the Boolean weightset.
	ErrNotBoolean = errors.New("weightset is not Boolean")
	// ErrNotProper the algorithm requires an automaton without epsilon transitions.
	ErrNotProper = errors.New("automaton is not proper")
	// ErrNotSequential the algorithm requires at most one outgoing transition per label and state.
	ErrNotSequential = errors.New("automaton is not sequential")
	// ErrNotAccessible the algorithm requires every state to be accessible.
	ErrNotAccessible = errors.New("automaton is not accessible")
	// ErrEmptyProduct a product needs at least one operand.
	ErrEmptyProduct = errors.New("product of no automaton")
)

func requireFree[L, W comparable](a *Automaton[L, W], op string) error {
	if !a.ctx.Labels.IsFree() {
		return errors.Wrapf(ErrNotFree, "%s: %s", op, a.ctx.Labels.Name())
	}
	return nil
}

func requireBoolean[L, W comparable](a *Automaton[L, W], op string) error {
	if !isBoolean(a) {
		return errors.Wrapf(ErrNotBoolean, "%s: %s", op, a.ctx.Weights.Name())
	}
	return nil
}
