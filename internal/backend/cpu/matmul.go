package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/tfnp/internal/tensor"
)

// MatMul performs batched matrix multiplication with broadcasting over the
// leading (batch) dimensions.
//
//	[B..., M, K] @ [B'..., K, N] -> [broadcast(B, B')..., M, N]
//
// Both operands must have rank >= 2. Each batch element is one Gemm call.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.Rank() < 2 || b.Rank() < 2 {
		return nil, fmt.Errorf("matmul: %w: operands must have rank >= 2, got %v and %v",
			tensor.ErrInvalidRank, a.Shape(), b.Shape())
	}
	m, k := a.Shape()[a.Rank()-2], a.Shape()[a.Rank()-1]
	k2, n := b.Shape()[b.Rank()-2], b.Shape()[b.Rank()-1]
	if k != k2 {
		return nil, fmt.Errorf("matmul: %w: inner dimension mismatch, %v vs %v",
			tensor.ErrIncompatibleShapes, a.Shape(), b.Shape())
	}

	batch, err := tensor.BroadcastShapes(a.Shape()[:a.Rank()-2], b.Shape()[:b.Rank()-2])
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}

	aFlat, err := flattenBatch(a, batch)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	bFlat, err := flattenBatch(b, batch)
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}

	nbatch := batch.NumElements()
	out := make([]float64, nbatch*m*n)
	if m > 0 && n > 0 && k > 0 {
		err = cpu.ForEachBatch(nbatch, func(i int) error {
			blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
				general(aFlat[i*m*k:(i+1)*m*k], m, k),
				general(bFlat[i*k*n:(i+1)*k*n], k, n),
				0, general(out[i*m*n:(i+1)*m*n], m, n))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("matmul: %w", err)
		}
	}

	outShape := append(batch.Clone(), m, n)
	return tensor.FromFloat64s(out, outShape, tensor.Promote(a.DType(), b.DType()))
}

// flattenBatch broadcasts x's batch dimensions to batch and returns the
// elements as float64 in [prod(batch), rows, cols] order.
func flattenBatch(x *tensor.RawTensor, batch tensor.Shape) ([]float64, error) {
	r := x.Rank()
	full := append(batch.Clone(), x.Shape()[r-2], x.Shape()[r-1])
	if x.Shape().Equal(full) {
		return x.Float64s(), nil
	}
	bx, err := tensor.BroadcastTo(x, full)
	if err != nil {
		return nil, err
	}
	return bx.Float64s(), nil
}

func general(data []float64, rows, cols int) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: max(cols, 1), Data: data}
}
