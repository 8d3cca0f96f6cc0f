// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tfnp/internal/tensor"
)

// FromSlice creates a tensor of shape holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is FromSlice that panics on a length mismatch.
// Intended for literals in tests and examples.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	return tensor.MustFromSlice(data, shape)
}

// Vector creates a rank-1 tensor.
func Vector[T DType](data ...T) *RawTensor {
	return tensor.Vector(data...)
}

// Scalar creates a rank-0 tensor.
func Scalar[T DType](v T) *RawTensor {
	return tensor.Scalar(v)
}

// Data returns a typed view of r's elements. T must match r.DType().
func Data[T DType](r *RawTensor) []T {
	return tensor.Data[T](r)
}

// NewSymbol creates a placeholder. Use Unknown for dimensions not yet known.
func NewSymbol(name string, dtype DataType, dims ...int) *Symbol {
	return tensor.NewSymbol(name, dtype, dims...)
}

// ParseDataType maps a TensorFlow dtype name such as "float32" to a DataType.
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
