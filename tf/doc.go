// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tf exposes a TensorFlow-shaped function namespace backed by the
// pure Go CPU array library.
//
// # Overview
//
// New builds the namespace once from a static table. Functions are looked up
// by their TensorFlow dotted path and asserted to their Go signature:
//
//	ns := tf.Default()
//	bandPart, err := tf.Func[linalg.BandPartFunc](ns, "linalg.band_part")
//	if err != nil {
//	    return err
//	}
//	y, err := bandPart(x, 0, -1) // upper triangle
//
// Keyword arguments are functional options named after them, with zero
// configuration equal to the TensorFlow defaults:
//
//	solve, _ := tf.Func[linalg.BinaryFunc](ns, "linalg.triangular_solve")
//	x, err := solve(a, b, linalg.Lower(false), linalg.Adjoint(true))
//
// # Modules
//
//   - root: array creation, manipulation, indexing, conversion and reductions
//   - linalg: band_part, cholesky, matmul, norm, triangular_solve, ...
//   - math: log, sqrt, pow, reduce_variance
//   - compat.v1: where
//
// Function types and keyword options for each module live in the tf/linalg,
// tf/array and tf/math packages.
//
// # Control Flow
//
// cond, while_loop, function and name_scope thread an explicit list of
// tensors through pure callbacks. Callbacks must not capture mutable state.
package tf
