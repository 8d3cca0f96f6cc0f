// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array values that the tf namespace operates on.
//
// # Overview
//
// A RawTensor is an immutable, row-major n-dimensional array with a Shape and
// a DataType. Every op returns a new value; none modifies its inputs.
//
//	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := tensor.Vector[int32](0, 2)
//	z := tensor.Scalar(3.5) // float64
//
// # Supported Data Types
//
//   - float16, float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers)
//   - bool (masks and predicates)
//
// # Symbolic Values
//
// A Symbol stands in for a value a tracing engine has not produced yet. It has
// a dtype and a shape in which some dimensions may be Unknown. Ops that derive
// values from shapes (tf.shape, tf.ones_like, ...) accept any Value and
// branch on its Dims: concrete shapes give arrays immediately, symbolic shapes
// are handed to a symbolic builder.
//
//	s := tensor.NewSymbol("batch", tensor.Float32, tensor.Unknown, 3)
//	s.Dims().String() // "(?, 3)"
//
// # Broadcasting
//
// Binary ops follow NumPy broadcasting rules:
//
//	(3, 1) + (3, 4) -> (3, 4)
//	(4,)   + (3, 4) -> (3, 4)
package tensor
