package wfa

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// QuotientAlgo selects the congruence algorithm of Minimize.
type QuotientAlgo int

const (
	QuotientMoore = QuotientAlgo(iota)
	QuotientHopcroft
)

func (q QuotientAlgo) String() string {
	switch q {
	case QuotientMoore:
		return "moore"
	case QuotientHopcroft:
		return "hopcroft"
	}
	return "unknown"
}

// Minimize Returns the minimal automaton of the sequential automaton a.
func Minimize[L, W comparable](a *Automaton[L, W], algo QuotientAlgo, opts ...Option) (*Automaton[L, W], error) {
	if err := requireFree(a, "minimize"); err != nil {
		return nil, err
	}

	var (
		classes [][]State
		err     error
	)
	switch algo {
	case QuotientMoore:
		classes, err = MooreDet(a)
	case QuotientHopcroft:
		classes, err = HopcroftDet(a)
	default:
		return nil, errors.Errorf("minimize: unknown algorithm %d", algo)
	}
	if err != nil {
		return nil, errors.Wrap(err, "minimize")
	}

	res := Merge(a, classes, newOptions(opts...).history)
	logger.Debug("minimize",
		zap.Stringer("algo", algo),
		zap.Int("input_states", a.NumStates()),
		zap.Int("output_states", res.NumStates()))
	return res, nil
}

// MinQuotient Returns the quotient of a by its coarsest weighted congruence.
func MinQuotient[L, W comparable](a *Automaton[L, W], opts ...Option) *Automaton[L, W] {
	res := Merge(a, MooreQuotient(a), newOptions(opts...).history)
	logger.Debug("min quotient",
		zap.Int("input_states", a.NumStates()),
		zap.Int("output_states", res.NumStates()))
	return res
}
