// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tfnp/internal/tensor"
)

// RawTensor is the array value passed to and returned by every op.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Rank()
//   - Typed data views via AsFloat32(), AsInt64(), AsBool(), ...
//   - Element access as float64 via At() and Float64s()
//   - Deep copies via Clone()
//
// Example:
//
//	raw, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	data := raw.AsFloat64()
//	v := raw.At(1, 2) // 6
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of an array.
type Shape = tensor.Shape

// DataType identifies the element type at runtime.
type DataType = tensor.DataType

// DType is the constraint of the generic constructors.
type DType = tensor.DType

// Value is a concrete RawTensor or a Symbol.
type Value = tensor.Value

// Dims is the tagged shape descriptor of a Value.
type Dims = tensor.Dims

// SymbolicShape is a shape with at least one Unknown dimension.
type SymbolicShape = tensor.SymbolicShape

// Symbol is a placeholder for a value that is not computed yet.
type Symbol = tensor.Symbol

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
	Float16 = tensor.Float16
)

// Unknown marks a dimension whose size is only known at execution time.
const Unknown = tensor.Unknown

// Errors returned by ops, matched with errors.Is.
var (
	ErrIncompatibleShapes  = tensor.ErrIncompatibleShapes
	ErrInvalidRank         = tensor.ErrInvalidRank
	ErrInvalidArgument     = tensor.ErrInvalidArgument
	ErrUnimplemented       = tensor.ErrUnimplemented
	ErrNotSquare           = tensor.ErrNotSquare
	ErrNotPositiveDefinite = tensor.ErrNotPositiveDefinite
)
