// Package arrayops implements TensorFlow's general array operations (the
// shape, indexing and rearrangement family) on top of the CPU array backend.
package arrayops

import (
	"fmt"
	"math"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/internal/tensor"
)

// Library binds the ops to a backend. It is stateless and safe for
// concurrent use.
type Library struct {
	backend  *cpu.CPUBackend
	linalg   *linalg.Library
	symbolic SymbolicBuilder
}

// New creates a Library. A nil symbolic builder means Placeholders.
func New(backend *cpu.CPUBackend, symbolic SymbolicBuilder) *Library {
	if symbolic == nil {
		symbolic = Placeholders{}
	}
	return &Library{
		backend:  backend,
		linalg:   linalg.New(backend),
		symbolic: symbolic,
	}
}

// Zeros returns a zero tensor of shape. DType defaults to float32.
func (l *Library) Zeros(shape []int, opts ...Option) (*tensor.RawTensor, error) {
	x, err := tensor.Zeros(tensor.Shape(shape).Clone(), apply(opts).dtypeOr(tensor.Float32))
	if err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}
	return x, nil
}

// Ones returns a tensor of ones of shape. DType defaults to float32.
func (l *Library) Ones(shape []int, opts ...Option) (*tensor.RawTensor, error) {
	x, err := tensor.Ones(tensor.Shape(shape).Clone(), apply(opts).dtypeOr(tensor.Float32))
	if err != nil {
		return nil, fmt.Errorf("ones: %w", err)
	}
	return x, nil
}

// Fill returns a tensor of dims filled with the scalar value, in its dtype.
func (l *Library) Fill(dims []int, value *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	if value.Rank() != 0 {
		return nil, fmt.Errorf("fill: %w: value must be a scalar, got shape %v", tensor.ErrInvalidRank, value.Shape())
	}
	x, err := tensor.Full(tensor.Shape(dims).Clone(), value.Float64At(0), value.DType())
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	return x, nil
}

// Range returns [start, limit) in steps of Delta. Without Limit it returns
// [0, start). Without DType the result is int32 when every bound is
// integral and float32 otherwise.
func (l *Library) Range(start float64, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	limit := start
	if o.limit != nil {
		limit = *o.limit
	} else {
		start = 0
	}
	dtype := tensor.Float32
	if isIntegral(start) && isIntegral(limit) && isIntegral(o.delta) {
		dtype = tensor.Int32
	}
	x, err := tensor.Arange(start, limit, o.delta, o.dtypeOr(dtype))
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}
	return x, nil
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}

// Linspace returns num evenly spaced values from start to stop inclusive,
// in the dtype of start.
func (l *Library) Linspace(start, stop *tensor.RawTensor, num int, _ ...Option) (*tensor.RawTensor, error) {
	if start.Rank() != 0 || stop.Rank() != 0 {
		return nil, fmt.Errorf("linspace: %w: batched endpoints %v and %v", tensor.ErrUnimplemented, start.Shape(), stop.Shape())
	}
	x, err := tensor.Linspace(start.Float64At(0), stop.Float64At(0), num, start.DType())
	if err != nil {
		return nil, fmt.Errorf("linspace: %w", err)
	}
	return x, nil
}

// Meshgrid broadcasts rank-1 coordinate vectors into N-D grids. With the
// default "xy" indexing the first two output axes are swapped.
func (l *Library) Meshgrid(xs []*tensor.RawTensor, opts ...Option) ([]*tensor.RawTensor, error) {
	o := apply(opts)
	if o.indexing != "xy" && o.indexing != "ij" {
		return nil, fmt.Errorf("meshgrid: %w: indexing must be xy or ij, got %q", tensor.ErrInvalidArgument, o.indexing)
	}
	n := len(xs)
	shape := make(tensor.Shape, n)
	for i, x := range xs {
		if x.Rank() != 1 {
			return nil, fmt.Errorf("meshgrid: %w: input %d has shape %v", tensor.ErrInvalidRank, i, x.Shape())
		}
		shape[i] = x.NumElements()
	}
	// pos[i] is the output axis that input i varies along.
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	if o.indexing == "xy" && n > 1 {
		shape[0], shape[1] = shape[1], shape[0]
		pos[0], pos[1] = 1, 0
	}

	grids := make([]*tensor.RawTensor, n)
	for i, x := range xs {
		view := make(tensor.Shape, n)
		for j := range view {
			view[j] = 1
		}
		view[pos[i]] = x.NumElements()
		r, err := tensor.Reshape(x, view)
		if err != nil {
			return nil, fmt.Errorf("meshgrid: %w", err)
		}
		if grids[i], err = tensor.BroadcastTo(r, shape); err != nil {
			return nil, fmt.Errorf("meshgrid: %w", err)
		}
	}
	return grids, nil
}
