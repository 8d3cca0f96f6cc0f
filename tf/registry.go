// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tf

import (
	"github.com/born-ml/tfnp/internal/arrayops"
	"github.com/born-ml/tfnp/internal/control"
	"github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/internal/namespace"
	"github.com/born-ml/tfnp/internal/tfmath"
	"github.com/born-ml/tfnp/tensor"
)

type libraries struct {
	linalg *linalg.Library
	array  *arrayops.Library
	math   *tfmath.Library
}

var (
	root     []string
	linalgNS = []string{"linalg"}
	mathNS   = []string{"math"}
	compatV1 = []string{"compat", "v1"}
)

func bind(path []string, name string, fn any) namespace.Entry {
	return namespace.Entry{Path: path, Declared: name, Fn: fn}
}

// private binds an implementation whose declared name carries a leading
// underscore; the exported name drops it.
func private(path []string, declared string, fn any) namespace.Entry {
	return namespace.Entry{Path: path, Declared: declared, Private: true, Fn: fn}
}

func alias(path []string, declared, name string, fn any) namespace.Entry {
	return namespace.Entry{Path: path, Declared: declared, Name: name, Fn: fn}
}

func (l libraries) entries() []namespace.Entry {
	la, ar, m := l.linalg, l.array, l.math
	return []namespace.Entry{
		// tf.linalg
		bind(linalgNS, "band_part", la.BandPart),
		bind(linalgNS, "cholesky", la.Cholesky),
		bind(linalgNS, "cholesky_solve", la.CholeskySolve),
		bind(linalgNS, "det", la.Det),
		bind(linalgNS, "diag", la.Diag),
		bind(linalgNS, "diag_part", la.DiagPart),
		bind(linalgNS, "eye", la.Eye),
		bind(linalgNS, "matmul", la.MatMul),
		bind(linalgNS, "matrix_transpose", la.MatrixTranspose),
		bind(linalgNS, "norm", la.Norm),
		bind(linalgNS, "set_diag", la.SetDiag),
		bind(linalgNS, "slogdet", la.Slogdet),
		bind(linalgNS, "triangular_solve", la.TriangularSolve),
		alias(root, "linalg_matmul", "matmul", la.MatMul),
		alias(root, "linalg_eye", "eye", la.Eye),

		// tf
		bind(root, "concat", ar.Concat),
		bind(root, "expand_dims", ar.ExpandDims),
		bind(root, "fill", ar.Fill),
		bind(root, "gather", ar.Gather),
		bind(root, "gather_nd", ar.GatherND),
		bind(root, "linspace", ar.Linspace),
		bind(root, "meshgrid", ar.Meshgrid),
		bind(root, "norm", ar.Norm),
		bind(root, "one_hot", ar.OneHot),
		bind(root, "ones", ar.Ones),
		bind(root, "ones_like", ar.OnesLike),
		bind(root, "pad", ar.Pad),
		bind(root, "range", ar.Range),
		bind(root, "rank", ar.Rank),
		bind(root, "reshape", ar.Reshape),
		bind(root, "reverse", ar.Reverse),
		bind(root, "roll", ar.Roll),
		bind(root, "searchsorted", ar.SearchSorted),
		bind(root, "shape", ar.Shape),
		bind(root, "size", ar.Size),
		bind(root, "slice", ar.Slice),
		bind(root, "split", ar.Split),
		bind(root, "squeeze", ar.Squeeze),
		bind(root, "stack", ar.Stack),
		bind(root, "tile", ar.Tile),
		bind(root, "transpose", ar.Transpose),
		bind(root, "unstack", ar.Unstack),
		bind(root, "where", ar.Where),
		bind(root, "zeros", ar.Zeros),
		bind(root, "zeros_like", ar.ZerosLike),
		bind(compatV1, "where", ar.Where),

		bind(root, "cast", m.Cast),
		bind(root, "convert_to_tensor", m.ConvertToTensor),
		bind(root, "constant", m.Constant),
		bind(root, "add_n", m.AddN),
		bind(root, "abs", m.Abs),
		bind(root, "square", m.Square),
		bind(root, "reduce_sum", m.ReduceSum),
		bind(root, "reduce_mean", m.ReduceMean),
		bind(root, "reduce_max", m.ReduceMax),
		bind(mathNS, "log", m.Log),
		bind(mathNS, "sqrt", m.Sqrt),
		bind(mathNS, "pow", m.Pow),
		bind(mathNS, "reduce_variance", m.ReduceVariance),

		private(root, "_cond", condTensors),
		private(root, "_while_loop", whileLoop),
		private(root, "_function", control.Function[Tensors, Tensors]),
		private(root, "_name_scope", control.NameScope[Tensors]),

		bind(root, "float32", tensor.Float32),
		bind(root, "int32", tensor.Int32),
		bind(root, "float16", tensor.Float16),
	}
}
