package linalg

import (
	"fmt"

	"github.com/born-ml/tfnp/internal/tensor"
)

// TriangularSolve solves matrix @ x = rhs for x, where matrix is
// [..., n, n] triangular and rhs is [..., n, k]. Batch dimensions of the two
// operands broadcast against each other.
//
// The dense solver is unbatched, so both operands are broadcast to a common
// batch shape, flattened to [batch, n, *] and solved one element at a time.
func (l *Library) TriangularSolve(matrix, rhs *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	if matrix.Rank() < 2 || rhs.Rank() < 2 {
		return nil, fmt.Errorf("triangular_solve: %w: inputs shaped matrix=%v, rhs=%v must have rank at least 2",
			tensor.ErrInvalidRank, matrix.Shape(), rhs.Shape())
	}
	mr := matrix.Rank()
	dim := matrix.Shape()[mr-1]
	if matrix.Shape()[mr-2] != dim {
		return nil, fmt.Errorf("triangular_solve: %w: matrix %v", tensor.ErrNotSquare, matrix.Shape())
	}

	// Broadcasting matrix[..., :1] against rhs yields the output shape.
	column := append(matrix.Shape()[:mr-1].Clone(), 1)
	outShape, err := tensor.BroadcastShapes(column, rhs.Shape())
	if err != nil {
		return nil, fmt.Errorf("triangular_solve: %w: inputs shaped matrix=%v, rhs=%v",
			tensor.ErrIncompatibleShapes, matrix.Shape(), rhs.Shape())
	}
	dtype := floatType(tensor.Promote(matrix.DType(), rhs.DType()))
	if outShape.NumElements() == 0 {
		return tensor.Zeros(outShape, dtype)
	}

	or := len(outShape)
	batchShape := outShape[:or-2]
	k := outShape[or-1]
	mat, err := tensor.BroadcastTo(matrix, append(batchShape.Clone(), dim, dim))
	if err != nil {
		return nil, fmt.Errorf("triangular_solve: %w", err)
	}
	b, err := tensor.BroadcastTo(rhs, outShape)
	if err != nil {
		return nil, fmt.Errorf("triangular_solve: %w", err)
	}

	nbatch := batchShape.NumElements()
	matData, rhsData := mat.Float64s(), b.Float64s()
	out := make([]float64, len(rhsData))
	err = l.backend.ForEachBatch(nbatch, func(i int) error {
		m, err := tensor.FromFloat64s(matData[i*dim*dim:(i+1)*dim*dim], tensor.Shape{dim, dim}, tensor.Float64)
		if err != nil {
			return err
		}
		r, err := tensor.FromFloat64s(rhsData[i*dim*k:(i+1)*dim*k], tensor.Shape{dim, k}, tensor.Float64)
		if err != nil {
			return err
		}
		x, err := l.backend.SolveTriangular(m, r, o.lower, o.adjoint)
		if err != nil {
			return err
		}
		copy(out[i*dim*k:(i+1)*dim*k], x.AsFloat64())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("triangular_solve: %w", err)
	}
	return tensor.FromFloat64s(out, outShape, dtype)
}

// Cholesky returns the lower-triangular Cholesky factor of [..., n, n] input.
func (l *Library) Cholesky(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Cholesky(x)
}

// CholeskySolve solves A x = rhs given chol, the lower Cholesky factor of A.
func (l *Library) CholeskySolve(chol, rhs *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	y, err := l.TriangularSolve(chol, rhs, Lower(true))
	if err != nil {
		return nil, fmt.Errorf("cholesky_solve: %w", err)
	}
	x, err := l.TriangularSolve(chol, y, Lower(true), Adjoint(true))
	if err != nil {
		return nil, fmt.Errorf("cholesky_solve: %w", err)
	}
	return x, nil
}

// Det returns the determinant of each [..., n, n] matrix.
func (l *Library) Det(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return l.backend.Det(x)
}

// Slogdet returns the sign and log absolute determinant of each [..., n, n]
// matrix.
func (l *Library) Slogdet(x *tensor.RawTensor, _ ...Option) (sign, logAbsDet *tensor.RawTensor, err error) {
	return l.backend.Slogdet(x)
}

func floatType(dt tensor.DataType) tensor.DataType {
	if dt.IsFloat() {
		return dt
	}
	return tensor.Float64
}
