// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go numeric backend behind the tf namespace.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Dense linear algebra via gonum (triangular solve, Cholesky, SVD)
//   - Float32, Float64 and integer support
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tfnp/backend/cpu"
//	    "github.com/born-ml/tfnp/tf"
//	)
//
//	func main() {
//	    cfg := tf.DefaultConfig()
//	    cfg.Backend = cpu.ParallelConfig()
//	    ns := tf.New(cfg)
//	    _ = ns
//	}
//
// # Parallelism
//
// Batched linear algebra solves one matrix at a time by default. With
// ParallelConfig the batch is split across goroutines; results are
// identical because every batch element writes to its own output slot.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
