package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/tfnp/internal/tensor"
)

// binary applies f element-wise with NumPy-style broadcasting.
// The result has dtype out, or the promoted input dtype when out < 0.
func binary(a, b *tensor.RawTensor, op string, out tensor.DataType, f func(x, y float64) float64) (*tensor.RawTensor, error) {
	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out < 0 {
		out = tensor.Promote(a.DType(), b.DType())
	}

	result, err := tensor.NewRaw(outShape, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Fast path: same shape, no index arithmetic.
	if a.Shape().Equal(b.Shape()) {
		for i := 0; i < result.NumElements(); i++ {
			result.SetFloat64(i, f(a.Float64At(i), b.Float64At(i)))
		}
		return result, nil
	}

	aStrides := tensor.BroadcastStrides(a.Shape(), outShape)
	bStrides := tensor.BroadcastStrides(b.Shape(), outShape)
	outStrides := result.Strides()
	for i := 0; i < result.NumElements(); i++ {
		ai, bi, rem := 0, 0, i
		for d, st := range outStrides {
			c := rem / st
			rem %= st
			ai += c * aStrides[d]
			bi += c * bStrides[d]
		}
		result.SetFloat64(i, f(a.Float64At(ai), b.Float64At(bi)))
	}
	return result, nil
}

const promoted tensor.DataType = -1

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary(a, b, "add", promoted, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary(a, b, "sub", promoted, func(x, y float64) float64 { return x - y })
}

// Pow raises a to the power b element-wise.
func (cpu *CPUBackend) Pow(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary(a, b, "pow", promoted, math.Pow)
}

func boolOf(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// Less returns a < b as a Bool tensor.
func (cpu *CPUBackend) Less(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary(a, b, "less", tensor.Bool, func(x, y float64) float64 { return boolOf(x < y) })
}

// unary applies f element-wise. Float inputs keep their dtype; anything else
// is computed and returned as float64 when float is set.
func unary(x *tensor.RawTensor, float bool, f func(v float64) float64) *tensor.RawTensor {
	dtype := x.DType()
	if float && !dtype.IsFloat() {
		dtype = tensor.Float64
	}
	result, err := tensor.NewRaw(x.Shape(), dtype)
	if err != nil {
		panic(err) // shape came from a valid tensor
	}
	for i := 0; i < x.NumElements(); i++ {
		result.SetFloat64(i, f(x.Float64At(i)))
	}
	return result
}

// Abs computes |x|.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, false, math.Abs)
}

// Square computes x*x.
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, false, func(v float64) float64 { return v * v })
}

// Log computes the natural logarithm.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, true, math.Log)
}

// Sqrt computes the square root.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return unary(x, true, math.Sqrt)
}

// Conj is the complex conjugate. All supported dtypes are real, so it copies.
func (cpu *CPUBackend) Conj(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Clone()
}

// AddN sums a list of equally shaped tensors.
func (cpu *CPUBackend) AddN(xs []*tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("add_n: %w: need at least one tensor", tensor.ErrInvalidArgument)
	}
	acc := xs[0].Clone()
	for _, x := range xs[1:] {
		if !x.Shape().Equal(acc.Shape()) {
			return nil, fmt.Errorf("add_n: %w: %v vs %v", tensor.ErrIncompatibleShapes, acc.Shape(), x.Shape())
		}
		next, err := cpu.Add(acc, x)
		if err != nil {
			return nil, fmt.Errorf("add_n: %w", err)
		}
		acc = next
	}
	return acc, nil
}
