package linalg

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/tensor"
)

// Norm computes a vector or matrix norm.
//
// Without Axis the input is flattened and treated as one vector. One axis
// gives vector norms along it; two axes give matrix norms over them.
// Vector orders: Euclidean, 1, InfNorm and any p > 0. Matrix orders:
// Euclidean, Frobenius, 1, 2 and InfNorm.
func (l *Library) Norm(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	switch len(o.axes) {
	case 0, 1:
		return l.vectorNorm(x, o)
	case 2:
		return l.matrixNorm(x, o)
	default:
		return nil, fmt.Errorf("norm: %w: axis must name one or two axes, got %v", tensor.ErrInvalidArgument, o.axes)
	}
}

func (l *Library) vectorNorm(x *tensor.RawTensor, o options) (*tensor.RawTensor, error) {
	ord := float64(o.ord)
	var (
		result *tensor.RawTensor
		err    error
	)
	switch {
	case o.ord == Euclidean || ord == 2:
		result, err = l.sumThen(l.backend.Square(x), o.axes, o.keepDims, l.backend.Sqrt)
	case ord == 1:
		result, err = l.backend.Reduce(l.backend.Abs(x), o.axes, o.keepDims, cpu.ReduceSum)
	case math.IsInf(ord, 1):
		result, err = l.backend.Reduce(l.backend.Abs(x), o.axes, o.keepDims, cpu.ReduceMax)
	case ord > 0:
		result, err = l.pNorm(x, ord, o.axes, o.keepDims)
	default:
		return nil, fmt.Errorf("norm: %w: ord %s is not a vector norm", tensor.ErrInvalidArgument, o.ord)
	}
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	return result, nil
}

func (l *Library) sumThen(x *tensor.RawTensor, axes []int, keepDims bool, f func(*tensor.RawTensor) *tensor.RawTensor) (*tensor.RawTensor, error) {
	s, err := l.backend.Reduce(x, axes, keepDims, cpu.ReduceSum)
	if err != nil {
		return nil, err
	}
	return f(s), nil
}

// pNorm computes (sum |x|^p)^(1/p).
func (l *Library) pNorm(x *tensor.RawTensor, p float64, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	dt := floatType(x.DType())
	exp, err := tensor.Full(tensor.Shape{}, p, dt)
	if err != nil {
		return nil, err
	}
	inv, err := tensor.Full(tensor.Shape{}, 1/p, dt)
	if err != nil {
		return nil, err
	}
	powered, err := l.backend.Pow(l.backend.Abs(x), exp)
	if err != nil {
		return nil, err
	}
	s, err := l.backend.Reduce(powered, axes, keepDims, cpu.ReduceSum)
	if err != nil {
		return nil, err
	}
	return l.backend.Pow(s, inv)
}

func (l *Library) matrixNorm(x *tensor.RawTensor, o options) (*tensor.RawTensor, error) {
	rows, err := tensor.NormalizeAxis(o.axes[0], x.Rank())
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	cols, err := tensor.NormalizeAxis(o.axes[1], x.Rank())
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	if rows == cols {
		return nil, fmt.Errorf("norm: %w: axes %v name the same axis", tensor.ErrInvalidArgument, o.axes)
	}

	ord := float64(o.ord)
	var result *tensor.RawTensor
	switch {
	case o.ord == Euclidean || o.ord == Frobenius:
		result, err = l.sumThen(l.backend.Square(x), []int{rows, cols}, true, l.backend.Sqrt)
	case ord == 1:
		result, err = l.sumMax(x, rows, cols)
	case math.IsInf(ord, 1):
		result, err = l.sumMax(x, cols, rows)
	case ord == 2:
		result, err = l.spectral(x, rows, cols)
	default:
		return nil, fmt.Errorf("norm: %w: ord %s is not a matrix norm", tensor.ErrInvalidArgument, o.ord)
	}
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	if o.keepDims {
		return result, nil
	}
	if result, err = tensor.Squeeze(result, rows, cols); err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	return result, nil
}

// sumMax sums |x| along sumAxis and takes the max along maxAxis, keeping both.
func (l *Library) sumMax(x *tensor.RawTensor, sumAxis, maxAxis int) (*tensor.RawTensor, error) {
	s, err := l.backend.Reduce(l.backend.Abs(x), []int{sumAxis}, true, cpu.ReduceSum)
	if err != nil {
		return nil, err
	}
	return l.backend.Reduce(s, []int{maxAxis}, true, cpu.ReduceMax)
}

// spectral moves rows and cols to the end, takes the largest singular value
// and restores both axes with size 1.
func (l *Library) spectral(x *tensor.RawTensor, rows, cols int) (*tensor.RawTensor, error) {
	perm := make([]int, 0, x.Rank())
	for i := 0; i < x.Rank(); i++ {
		if i != rows && i != cols {
			perm = append(perm, i)
		}
	}
	perm = append(perm, rows, cols)
	t, err := tensor.Transpose(x, perm...)
	if err != nil {
		return nil, err
	}
	s, err := l.backend.SpectralNorm(t)
	if err != nil {
		return nil, err
	}
	kept := []int{rows, cols}
	sort.Ints(kept)
	for _, ax := range kept {
		if s, err = tensor.ExpandDims(s, ax); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
