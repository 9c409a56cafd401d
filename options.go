package wfa

import (
	"os"
)

// Direction of epsilon-removal.
type Direction int

const (
	// Backward epsilon transitions are removed by looking at the incoming ones.
	Backward = Direction(iota)
	// Forward epsilon transitions are removed by looking at the outgoing ones.
	Forward
)

type options struct {
	history   bool      // 默认true
	prune     bool      // 默认true
	direction Direction // 默认Backward
	iterative bool      // 默认读取环境变量
}

func newOptions(opts ...Option) *options {
	o := &options{
		history:   true,
		prune:     true,
		direction: Backward,
		iterative: os.Getenv("WFA_ITERATIVE") != "",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures an algorithm.
type Option func(*options)

// WithHistory keeps the history of the result (default true).
func WithHistory(keep bool) Option {
	return func(o *options) {
		o.history = keep
	}
}

// WithPrune deletes the states left without incoming transitions by epsilon-removal (default true).
func WithPrune(prune bool) Option {
	return func(o *options) {
		o.prune = prune
	}
}

func WithDirection(d Direction) Option {
	return func(o *options) {
		o.direction = d
	}
}

// WithIterative computes powers by repeated products instead of squaring.
// The default is true when the WFA_ITERATIVE environment variable is set.
func WithIterative(iterative bool) Option {
	return func(o *options) {
		o.iterative = iterative
	}
}
