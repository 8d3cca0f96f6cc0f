// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tf

import (
	"github.com/born-ml/tfnp/internal/control"
	"github.com/born-ml/tfnp/tensor"
)

// Tensors is the loop and branch state of the control-flow functions.
type Tensors = []*tensor.RawTensor

// LoopOption configures while_loop.
type LoopOption = control.LoopOption

// MaximumIterations caps while_loop. Negative means no cap.
var MaximumIterations = control.MaximumIterations

// Signatures for Func lookups.
type (
	// CondFunc matches cond.
	CondFunc = func(pred *tensor.RawTensor, trueFn, falseFn func(Tensors) Tensors, operands Tensors) (Tensors, error)

	// WhileLoopFunc matches while_loop.
	WhileLoopFunc = func(cond func(Tensors) bool, body func(Tensors) Tensors, loopVars Tensors, opts ...LoopOption) Tensors

	// FunctionFunc matches function.
	FunctionFunc = func(f func(Tensors) Tensors) func(Tensors) Tensors

	// NameScopeFunc matches name_scope.
	NameScopeFunc = func(name string, body func(scope string) Tensors) Tensors
)

func condTensors(pred *tensor.RawTensor, trueFn, falseFn func(Tensors) Tensors, operands Tensors) (Tensors, error) {
	p, err := control.Pred(pred)
	if err != nil {
		return nil, err
	}
	return control.Cond(p, operands, trueFn, falseFn), nil
}

func whileLoop(cond func(Tensors) bool, body func(Tensors) Tensors, loopVars Tensors, opts ...LoopOption) Tensors {
	return control.WhileLoop(cond, body, loopVars, opts...)
}
