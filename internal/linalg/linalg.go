// Package linalg implements tf.linalg on top of the CPU array backend.
//
// Arguments follow TensorFlow: required tensors are positional, keyword
// arguments are Options whose zero configuration equals TensorFlow's
// defaults. Inputs are never modified.
package linalg

import (
	"fmt"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/tensor"
)

// UnaryFunc is the shape of single-tensor ops such as Cholesky and Det.
type UnaryFunc = func(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

// BinaryFunc is the shape of two-tensor ops such as MatMul and TriangularSolve.
type BinaryFunc = func(a, b *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error)

// Library binds the ops to a backend. It is stateless and safe for
// concurrent use.
type Library struct {
	backend *cpu.CPUBackend
}

// New creates a Library over backend.
func New(backend *cpu.CPUBackend) *Library {
	return &Library{backend: backend}
}

// BandPart zeros everything outside the band of numLower sub-diagonals and
// numUpper super-diagonals of the trailing two axes. A negative bandwidth
// leaves that side unconstrained.
func (l *Library) BandPart(x *tensor.RawTensor, numLower, numUpper int, _ ...Option) (*tensor.RawTensor, error) {
	if x.Rank() < 2 {
		return nil, fmt.Errorf("band_part: %w: input must have rank at least 2; found %d", tensor.ErrInvalidRank, x.Rank())
	}
	result := x
	var err error
	if numLower > -1 {
		if result, err = tensor.Triu(result, -numLower); err != nil {
			return nil, fmt.Errorf("band_part: %w", err)
		}
	}
	if numUpper > -1 {
		if result, err = tensor.Tril(result, numUpper); err != nil {
			return nil, fmt.Errorf("band_part: %w", err)
		}
	}
	if result == x {
		return x.Clone(), nil
	}
	return result, nil
}

// MatrixTranspose swaps the last two axes, leaving batch axes in place.
func (l *Library) MatrixTranspose(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	if x.Rank() < 2 {
		return nil, fmt.Errorf("matrix_transpose: %w: input must have rank at least 2; found %d",
			tensor.ErrInvalidRank, x.Rank())
	}
	o := apply(opts)
	t, err := tensor.SwapAxes(x, -2, -1)
	if err != nil {
		return nil, fmt.Errorf("matrix_transpose: %w", err)
	}
	if o.conjugate {
		return l.backend.Conj(t), nil
	}
	return t, nil
}

// MatMul multiplies the trailing matrices of a and b, broadcasting batch axes.
// Transpose and adjoint flags are applied to the operands first.
func (l *Library) MatMul(a, b *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	if o.aIsSparse || o.bIsSparse {
		return nil, fmt.Errorf("matmul: %w: sparse matmul is not supported", tensor.ErrUnimplemented)
	}
	var err error
	if o.transposeA || o.adjointA {
		if a, err = l.MatrixTranspose(a, Conjugate(o.adjointA)); err != nil {
			return nil, fmt.Errorf("matmul: %w", err)
		}
	}
	if o.transposeB || o.adjointB {
		if b, err = l.MatrixTranspose(b, Conjugate(o.adjointB)); err != nil {
			return nil, fmt.Errorf("matmul: %w", err)
		}
	}
	return l.backend.MatMul(a, b)
}

// Diag builds [..., n, n] matrices with diagonal [..., n] and zeros elsewhere.
func (l *Library) Diag(diagonal *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	if diagonal.Rank() < 1 {
		return nil, fmt.Errorf("diag: %w: diagonal must have rank at least 1; found 0", tensor.ErrInvalidRank)
	}
	n := diagonal.Shape()[diagonal.Rank()-1]
	out, err := tensor.Zeros(append(diagonal.Shape().Clone(), n), diagonal.DType())
	if err != nil {
		return nil, fmt.Errorf("diag: %w", err)
	}
	for i := 0; i < diagonal.NumElements(); i++ {
		b, d := i/n, i%n
		out.SetFloat64(b*n*n+d*n+d, diagonal.Float64At(i))
	}
	return out, nil
}

// DiagPart returns the main diagonal of the trailing two axes.
func (l *Library) DiagPart(x *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	d, err := tensor.Diagonal(x)
	if err != nil {
		return nil, fmt.Errorf("diag_part: %w", err)
	}
	return d, nil
}

// SetDiag returns a copy of x with the main diagonal of its trailing two axes
// replaced. A scalar diagonal fills every diagonal entry; otherwise diagonal
// broadcasts to x.shape[:-2] + [min(rows, cols)].
func (l *Library) SetDiag(x, diagonal *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	r := x.Rank()
	if r < 2 {
		return nil, fmt.Errorf("set_diag: %w: input must have rank at least 2; found %d", tensor.ErrInvalidRank, r)
	}
	rows, cols := x.Shape()[r-2], x.Shape()[r-1]
	k := min(rows, cols)
	batch := x.Shape()[:r-2].NumElements()

	values := diagonal
	if diagonal.Rank() > 0 {
		want := append(x.Shape()[:r-2].Clone(), k)
		var err error
		if values, err = tensor.BroadcastTo(diagonal, want); err != nil {
			return nil, fmt.Errorf("set_diag: %w: input %v, diagonal %v", tensor.ErrIncompatibleShapes, x.Shape(), diagonal.Shape())
		}
	}

	out := x.Clone()
	for b := 0; b < batch; b++ {
		for d := 0; d < k; d++ {
			v := values.Float64At(0)
			if values.Rank() > 0 {
				v = values.Float64At(b*k + d)
			}
			out.SetFloat64(b*rows*cols+d*cols+d, v)
		}
	}
	return out, nil
}

// Eye returns an identity matrix of numRows rows, optionally rectangular
// (NumColumns) and repeated over BatchShape.
func (l *Library) Eye(numRows int, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	cols := o.numColumns
	if cols < 0 {
		cols = numRows
	}
	x, err := tensor.Eye(numRows, cols, o.dtype)
	if err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	if len(o.batchShape) == 0 {
		return x, nil
	}
	full := append(o.batchShape.Clone(), numRows, cols)
	if x, err = tensor.BroadcastTo(x, full); err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	return x, nil
}
