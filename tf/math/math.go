// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package math holds the keyword options and signatures of the conversion,
// element-wise and reduction functions bound at the tf root and under
// tf.math.
package math

import (
	"github.com/born-ml/tfnp/internal/tfmath"
	"github.com/born-ml/tfnp/tensor"
)

// Option sets a keyword argument.
type Option = tfmath.Option

// Signatures for Func lookups.
type (
	// UnaryFunc matches abs, square, math.log and math.sqrt.
	UnaryFunc = func(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

	// ReduceFunc matches reduce_sum, reduce_mean, reduce_max and
	// math.reduce_variance.
	ReduceFunc = UnaryFunc

	// BinaryFunc matches math.pow.
	BinaryFunc = func(x, y *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

	// CastFunc matches cast.
	CastFunc = func(x *tensor.RawTensor, dtype tensor.DataType, opts ...Option) (*tensor.RawTensor, error)

	// ConvertFunc matches convert_to_tensor and constant.
	ConvertFunc = func(value any, opts ...Option) (*tensor.RawTensor, error)

	// AddNFunc matches add_n.
	AddNFunc = func(inputs []*tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)
)

// Keyword arguments.
var (
	Name     = tfmath.Name
	DType    = tfmath.DType
	Axis     = tfmath.Axis
	KeepDims = tfmath.KeepDims
)
