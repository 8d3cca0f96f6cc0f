package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tfnp/internal/tensor"
)

// SolveTriangular solves op(a) x = b for a single n x n triangular matrix a
// and an n x k right-hand side b. op is the identity, or the conjugate
// transpose when adjoint is set. Only the triangle selected by lower is read.
//
// It is unbatched, like the dense solvers it wraps; batching and
// broadcasting are the caller's job.
func (cpu *CPUBackend) SolveTriangular(a, b *tensor.RawTensor, lower, adjoint bool) (*tensor.RawTensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("solve_triangular: %w: need matrices, got %v and %v",
			tensor.ErrInvalidRank, a.Shape(), b.Shape())
	}
	n := a.Shape()[0]
	if a.Shape()[1] != n {
		return nil, fmt.Errorf("solve_triangular: %w: %v", tensor.ErrNotSquare, a.Shape())
	}
	if b.Shape()[0] != n {
		return nil, fmt.Errorf("solve_triangular: %w: matrix %v vs rhs %v",
			tensor.ErrIncompatibleShapes, a.Shape(), b.Shape())
	}
	k := b.Shape()[1]
	dtype := tensor.Promote(a.DType(), b.DType())

	x := b.Float64s()
	if n > 0 && k > 0 {
		uplo, trans := blas.Upper, blas.NoTrans
		if lower {
			uplo = blas.Lower
		}
		if adjoint {
			trans = blas.Trans // conjugate transpose of a real matrix
		}
		tri := blas64.Triangular{Uplo: uplo, Diag: blas.NonUnit, N: n, Stride: n, Data: a.Float64s()}
		blas64.Trsm(blas.Left, trans, 1, tri, general(x, n, k))
	}
	return tensor.FromFloat64s(x, b.Shape(), dtype)
}

// batchOfSquares validates x as [..., n, n] and returns batch shape, n and a
// float64 copy of the data.
func batchOfSquares(x *tensor.RawTensor, op string) (tensor.Shape, int, []float64, error) {
	r := x.Rank()
	if r < 2 {
		return nil, 0, nil, fmt.Errorf("%s: %w: need rank >= 2, got %d", op, tensor.ErrInvalidRank, r)
	}
	n := x.Shape()[r-1]
	if x.Shape()[r-2] != n {
		return nil, 0, nil, fmt.Errorf("%s: %w: %v", op, tensor.ErrNotSquare, x.Shape())
	}
	return x.Shape()[:r-2].Clone(), n, x.Float64s(), nil
}

// Cholesky returns the lower-triangular factor L of every [..., n, n] matrix
// in x, with L L^T = x. Only the lower triangle of x is read. Integer input
// yields a float64 factor.
func (cpu *CPUBackend) Cholesky(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, data, err := batchOfSquares(x, "cholesky")
	if err != nil {
		return nil, err
	}

	err = cpu.ForEachBatch(batch.NumElements(), func(i int) error {
		m := data[i*n*n : (i+1)*n*n]
		if n == 0 {
			return nil
		}
		if _, ok := lapack64.Potrf(blas64.Symmetric{Uplo: blas.Lower, N: n, Stride: n, Data: m}); !ok {
			return fmt.Errorf("cholesky: %w: batch element %d", tensor.ErrNotPositiveDefinite, i)
		}
		for r := 0; r < n; r++ {
			for c := r + 1; c < n; c++ {
				m[r*n+c] = 0
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.FromFloat64s(data, x.Shape(), floatType(x.DType()))
}

// Det returns the determinant of every [..., n, n] matrix in x.
func (cpu *CPUBackend) Det(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	batch, n, data, err := batchOfSquares(x, "det")
	if err != nil {
		return nil, err
	}
	out := make([]float64, batch.NumElements())
	cpu.eachBatch(len(out), func(i int) {
		if n == 0 {
			out[i] = 1
			return
		}
		out[i] = mat.Det(mat.NewDense(n, n, data[i*n*n:(i+1)*n*n]))
	})
	return tensor.FromFloat64s(out, batch, floatType(x.DType()))
}

// Slogdet returns sign(det) and log|det| of every [..., n, n] matrix in x.
// Singular matrices yield sign 0 and log|det| = -Inf.
func (cpu *CPUBackend) Slogdet(x *tensor.RawTensor) (sign, logAbsDet *tensor.RawTensor, err error) {
	batch, n, data, err := batchOfSquares(x, "slogdet")
	if err != nil {
		return nil, nil, err
	}
	signs := make([]float64, batch.NumElements())
	logs := make([]float64, batch.NumElements())
	cpu.eachBatch(len(signs), func(i int) {
		if n == 0 {
			signs[i], logs[i] = 1, 0
			return
		}
		l, s := mat.LogDet(mat.NewDense(n, n, data[i*n*n:(i+1)*n*n]))
		if s == 0 || math.IsInf(l, -1) {
			signs[i], logs[i] = 0, math.Inf(-1)
			return
		}
		signs[i], logs[i] = s, l
	})
	dtype := floatType(x.DType())
	if sign, err = tensor.FromFloat64s(signs, batch, dtype); err != nil {
		return nil, nil, err
	}
	if logAbsDet, err = tensor.FromFloat64s(logs, batch, dtype); err != nil {
		return nil, nil, err
	}
	return sign, logAbsDet, nil
}

// SpectralNorm returns the largest singular value of every [..., m, n] matrix in x.
func (cpu *CPUBackend) SpectralNorm(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	r := x.Rank()
	if r < 2 {
		return nil, fmt.Errorf("spectral_norm: %w: need rank >= 2, got %d", tensor.ErrInvalidRank, r)
	}
	rows, cols := x.Shape()[r-2], x.Shape()[r-1]
	batch := x.Shape()[:r-2].Clone()
	data := x.Float64s()
	out := make([]float64, batch.NumElements())

	err := cpu.ForEachBatch(len(out), func(i int) error {
		if rows == 0 || cols == 0 {
			return nil
		}
		var svd mat.SVD
		if !svd.Factorize(mat.NewDense(rows, cols, data[i*rows*cols:(i+1)*rows*cols]), mat.SVDNone) {
			return fmt.Errorf("spectral_norm: %w: SVD did not converge for batch element %d", tensor.ErrInvalidArgument, i)
		}
		out[i] = svd.Values(nil)[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.FromFloat64s(out, batch, floatType(x.DType()))
}

// floatType maps integer inputs of a float-valued op to float64.
func floatType(dt tensor.DataType) tensor.DataType {
	if dt.IsFloat() {
		return dt
	}
	return tensor.Float64
}
