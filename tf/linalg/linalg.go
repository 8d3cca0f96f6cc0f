// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg holds the keyword options and signatures of the
// functions bound under tf.linalg.
package linalg

import (
	internallinalg "github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/tensor"
)

// Option sets a keyword argument.
type Option = internallinalg.Option

// NormOrder is the ord argument of norm.
type NormOrder = internallinalg.NormOrder

// Norm orders that are not plain numbers.
const (
	Euclidean = internallinalg.Euclidean
	Frobenius = internallinalg.Frobenius
)

// InfNorm is ord=inf.
var InfNorm = internallinalg.InfNorm

// Signatures for Func lookups.
type (
	// UnaryFunc matches cholesky, det, diag, diag_part, matrix_transpose, norm.
	UnaryFunc = internallinalg.UnaryFunc

	// BinaryFunc matches cholesky_solve, matmul, set_diag, triangular_solve.
	BinaryFunc = internallinalg.BinaryFunc

	// BandPartFunc matches band_part.
	BandPartFunc = func(x *tensor.RawTensor, numLower, numUpper int, opts ...Option) (*tensor.RawTensor, error)

	// EyeFunc matches eye.
	EyeFunc = func(numRows int, opts ...Option) (*tensor.RawTensor, error)

	// SlogdetFunc matches slogdet.
	SlogdetFunc = func(x *tensor.RawTensor, opts ...Option) (sign, logAbsDet *tensor.RawTensor, err error)
)

// Keyword arguments.
var (
	Name       = internallinalg.Name
	Lower      = internallinalg.Lower
	Adjoint    = internallinalg.Adjoint
	TransposeA = internallinalg.TransposeA
	TransposeB = internallinalg.TransposeB
	AdjointA   = internallinalg.AdjointA
	AdjointB   = internallinalg.AdjointB
	AIsSparse  = internallinalg.AIsSparse
	BIsSparse  = internallinalg.BIsSparse
	Conjugate  = internallinalg.Conjugate
	NumColumns = internallinalg.NumColumns
	BatchShape = internallinalg.BatchShape
	DType      = internallinalg.DType
	Ord        = internallinalg.Ord
	Axis       = internallinalg.Axis
	KeepDims   = internallinalg.KeepDims
)
