// Package tfmath implements the top-level and tf.math helpers: conversion,
// element-wise math and reductions.
package tfmath

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/tensor"
)

// Library binds the helpers to a backend.
type Library struct {
	backend *cpu.CPUBackend
}

// New creates a Library over backend.
func New(backend *cpu.CPUBackend) *Library {
	return &Library{backend: backend}
}

type options struct {
	dtype    tensor.DataType
	dtypeSet bool
	axes     []int
	keepDims bool
}

// Option sets a TensorFlow keyword argument.
type Option func(*options)

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Name is accepted for signature compatibility and ignored.
func Name(string) Option {
	return func(*options) {}
}

// DType sets the target dtype of ConvertToTensor and Constant.
func DType(dt tensor.DataType) Option {
	return func(o *options) { o.dtype, o.dtypeSet = dt, true }
}

// Axis restricts a reduction to the given axes. Without it every axis is reduced.
func Axis(axes ...int) Option {
	return func(o *options) { o.axes = append([]int(nil), axes...) }
}

// KeepDims retains reduced axes with size 1.
func KeepDims(v bool) Option {
	return func(o *options) { o.keepDims = v }
}

// Cast converts x to dtype.
func (l *Library) Cast(x *tensor.RawTensor, dtype tensor.DataType, _ ...Option) (*tensor.RawTensor, error) {
	return tensor.Cast(x, dtype)
}

// ConvertToTensor turns a Go scalar, slice or existing tensor into a tensor,
// cast to DType when given.
func (l *Library) ConvertToTensor(value any, opts ...Option) (*tensor.RawTensor, error) {
	x, err := fromGo(value)
	if err != nil {
		return nil, fmt.Errorf("convert_to_tensor: %w", err)
	}
	if o := apply(opts); o.dtypeSet && o.dtype != x.DType() {
		return tensor.Cast(x, o.dtype)
	}
	return x, nil
}

// Constant is ConvertToTensor under its tf.constant name.
func (l *Library) Constant(value any, opts ...Option) (*tensor.RawTensor, error) {
	x, err := l.ConvertToTensor(value, opts...)
	if err != nil {
		return nil, fmt.Errorf("constant: %w", err)
	}
	return x, nil
}

func fromGo(value any) (*tensor.RawTensor, error) {
	switch v := value.(type) {
	case *tensor.RawTensor:
		return v, nil
	case float16.Float16:
		return tensor.Scalar(v), nil
	case float32:
		return tensor.Scalar(v), nil
	case float64:
		return tensor.Scalar(v), nil
	case int32:
		return tensor.Scalar(v), nil
	case int64:
		return tensor.Scalar(v), nil
	case int:
		return tensor.Scalar(int32(v)), nil
	case bool:
		return tensor.Scalar(v), nil
	case []float16.Float16:
		return tensor.Vector(v...), nil
	case []float32:
		return tensor.Vector(v...), nil
	case []float64:
		return tensor.Vector(v...), nil
	case []int32:
		return tensor.Vector(v...), nil
	case []int64:
		return tensor.Vector(v...), nil
	case []bool:
		return tensor.Vector(v...), nil
	case []int:
		out := make([]int32, len(v))
		for i, x := range v {
			out[i] = int32(x)
		}
		return tensor.Vector(out...), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T to a tensor", tensor.ErrInvalidArgument, value)
	}
}

// AddN sums equally shaped tensors.
func (l *Library) AddN(inputs []*tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.AddN(inputs)
}

// Abs computes |x|.
func (l *Library) Abs(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Abs(x), nil
}

// Square computes x*x.
func (l *Library) Square(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Square(x), nil
}

// Log computes the natural logarithm.
func (l *Library) Log(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Log(x), nil
}

// Sqrt computes the square root.
func (l *Library) Sqrt(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Sqrt(x), nil
}

// Pow computes x**y with broadcasting.
func (l *Library) Pow(x, y *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Pow(x, y)
}

// ReduceSum sums over Axis, or over everything.
func (l *Library) ReduceSum(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return l.reduce(x, opts, cpu.ReduceSum)
}

// ReduceMean averages over Axis, or over everything.
func (l *Library) ReduceMean(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return l.reduce(x, opts, cpu.ReduceMean)
}

// ReduceMax takes the maximum over Axis, or over everything.
func (l *Library) ReduceMax(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return l.reduce(x, opts, cpu.ReduceMax)
}

// ReduceVariance computes the population variance over Axis, or over everything.
func (l *Library) ReduceVariance(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return l.reduce(x, opts, cpu.ReduceVariance)
}

func (l *Library) reduce(x *tensor.RawTensor, opts []Option, kind cpu.Reduction) (*tensor.RawTensor, error) {
	o := apply(opts)
	return l.backend.Reduce(x, o.axes, o.keepDims, kind)
}
