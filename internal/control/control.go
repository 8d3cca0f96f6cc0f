// Package control provides tf.cond, tf.while_loop, tf.function and
// tf.name_scope as pure combinators over an explicit state type.
//
// Branches and loop bodies receive the state and return the next state.
// They must not capture mutable variables or have side effects: an
// execution engine is free to trace, cache or re-run them.
package control

import (
	"fmt"

	"github.com/born-ml/tfnp/internal/tensor"
)

// Cond returns trueFn(operand) when pred holds and falseFn(operand) otherwise.
func Cond[S any](pred bool, operand S, trueFn, falseFn func(S) S) S {
	if pred {
		return trueFn(operand)
	}
	return falseFn(operand)
}

// Pred reads a scalar tensor as a branch predicate.
func Pred(x *tensor.RawTensor) (bool, error) {
	if x.NumElements() != 1 {
		return false, fmt.Errorf("cond: %w: predicate must hold one element, got shape %v", tensor.ErrInvalidRank, x.Shape())
	}
	return x.Float64At(0) != 0, nil
}

type loopOptions struct {
	maxIterations int
}

// LoopOption configures WhileLoop.
type LoopOption func(*loopOptions)

// MaximumIterations stops the loop after n iterations even if cond still
// holds. Negative n means no limit, which is the default.
func MaximumIterations(n int) LoopOption {
	return func(o *loopOptions) { o.maxIterations = n }
}

// WhileLoop applies body to the state while cond holds and returns the
// final state.
//
//	type fib struct{ a, b, i int }
//	out := WhileLoop(
//		func(s fib) bool { return s.i < 10 },
//		func(s fib) fib { return fib{s.b, s.a + s.b, s.i + 1} },
//		fib{0, 1, 0})
func WhileLoop[S any](cond func(S) bool, body func(S) S, init S, opts ...LoopOption) S {
	o := loopOptions{maxIterations: -1}
	for _, opt := range opts {
		opt(&o)
	}
	state := init
	for i := 0; o.maxIterations < 0 || i < o.maxIterations; i++ {
		if !cond(state) {
			break
		}
		state = body(state)
	}
	return state
}

// Function marks f for compilation by a tracing engine. Here it executes
// eagerly, so it returns f unchanged.
func Function[S, R any](f func(S) R) func(S) R {
	return f
}

// NameScope runs body within the named scope and returns its result.
// Scopes only label values; they do not change how body runs.
func NameScope[R any](name string, body func(scope string) R) R {
	return body(name)
}
