// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array holds the keyword options and signatures of the array
// functions bound at the tf root.
package array

import (
	"github.com/born-ml/tfnp/internal/arrayops"
	"github.com/born-ml/tfnp/tensor"
)

// Option sets a keyword argument.
type Option = arrayops.Option

// SymbolicBuilder produces results for values with symbolic shapes.
type SymbolicBuilder = arrayops.SymbolicBuilder

// Placeholders is the default SymbolicBuilder. It answers with fresh
// symbols of the right dtype and shape.
type Placeholders = arrayops.Placeholders

// Signatures for Func lookups.
type (
	// UnaryFunc matches squeeze and transpose.
	UnaryFunc = func(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

	// BinaryFunc matches gather, reverse and searchsorted.
	BinaryFunc = func(a, b *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

	// ValueFunc matches shape, size, ones_like and zeros_like.
	ValueFunc = func(x tensor.Value, opts ...Option) (tensor.Value, error)

	// ShapeFunc matches zeros and ones.
	ShapeFunc = func(shape []int, opts ...Option) (*tensor.RawTensor, error)

	// SplitFunc matches split.
	SplitFunc = func(value, numOrSizeSplits *tensor.RawTensor, opts ...Option) ([]*tensor.RawTensor, error)

	// OneHotFunc matches one_hot.
	OneHotFunc = func(indices *tensor.RawTensor, depth int, opts ...Option) (*tensor.RawTensor, error)

	// WhereFunc matches where and compat.v1.where.
	WhereFunc = func(condition, x, y *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)
)

// Keyword arguments.
var (
	Name            = arrayops.Name
	Axis            = arrayops.Axis
	DType           = arrayops.DType
	OutType         = arrayops.OutType
	OnValue         = arrayops.OnValue
	OffValue        = arrayops.OffValue
	Mode            = arrayops.Mode
	ConstantValues  = arrayops.ConstantValues
	Side            = arrayops.Side
	Num             = arrayops.Num
	Perm            = arrayops.Perm
	Conjugate       = arrayops.Conjugate
	ValidateIndices = arrayops.ValidateIndices
	BatchDims       = arrayops.BatchDims
	Limit           = arrayops.Limit
	Delta           = arrayops.Delta
	Indexing        = arrayops.Indexing
)
