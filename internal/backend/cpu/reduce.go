package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/tfnp/internal/tensor"
)

// Reduction selects the combining function of Reduce.
type Reduction int

// Supported reductions.
const (
	ReduceSum Reduction = iota
	ReduceMean
	ReduceMax
	ReduceVariance
)

func (r Reduction) String() string {
	switch r {
	case ReduceSum:
		return "reduce_sum"
	case ReduceMean:
		return "reduce_mean"
	case ReduceMax:
		return "reduce_max"
	case ReduceVariance:
		return "reduce_variance"
	default:
		return "reduce"
	}
}

// Reduce combines x over axes. Nil axes reduce over every dimension.
// With keepDims the reduced axes stay as size 1.
//
// Example:
//
//	x: [2, 3, 4]
//	Reduce(x, []int{-1}, true, ReduceSum)  // [2, 3, 1]
//	Reduce(x, nil, false, ReduceMean)      // []
func (cpu *CPUBackend) Reduce(x *tensor.RawTensor, axes []int, keepDims bool, kind Reduction) (*tensor.RawTensor, error) {
	shape := x.Shape()
	reduced := make([]bool, len(shape))
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	}
	for _, a := range axes {
		ax, err := tensor.NormalizeAxis(a, len(shape))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		reduced[ax] = true
	}

	// keptShape has size-1 reduced axes; it indexes the accumulator.
	keptShape := shape.Clone()
	outShape := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		if reduced[i] {
			keptShape[i] = 1
			if keepDims {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, d)
	}

	n := keptShape.NumElements()
	count := 1
	if n > 0 {
		count = x.NumElements() / n
	}
	acc := make([]float64, n)
	if kind == ReduceMax {
		fill(acc, math.Inf(-1))
	}

	inStrides := shape.ComputeStrides()
	accStrides := tensor.BroadcastStrides(keptShape, shape)
	target := func(i int) int {
		j, rem := 0, i
		for d, st := range inStrides {
			if st == 0 {
				continue
			}
			j += (rem / st) * accStrides[d]
			rem %= st
		}
		return j
	}

	for i := 0; i < x.NumElements(); i++ {
		v, j := x.Float64At(i), target(i)
		switch kind {
		case ReduceSum, ReduceMean, ReduceVariance:
			acc[j] += v
		case ReduceMax:
			acc[j] = math.Max(acc[j], v)
		}
	}

	if kind == ReduceMean || kind == ReduceVariance {
		for j := range acc {
			acc[j] /= float64(count)
		}
	}
	if kind == ReduceVariance {
		mean := acc
		acc = make([]float64, n)
		for i := 0; i < x.NumElements(); i++ {
			j := target(i)
			d := x.Float64At(i) - mean[j]
			acc[j] += d * d
		}
		for j := range acc {
			acc[j] /= float64(count)
		}
	}

	dtype := x.DType()
	if dtype == tensor.Bool {
		dtype = tensor.Int64
	}
	out, err := tensor.FromFloat64s(acc, outShape, dtype)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return out, nil
}

func fill(xs []float64, v float64) {
	for i := range xs {
		xs[i] = v
	}
}
