package linalg

import (
	"math"

	"github.com/born-ml/tfnp/internal/tensor"
)

// NormOrder selects the norm computed by Norm. Positive values are p-norms.
type NormOrder float64

// Norm orders with a name in TensorFlow.
const (
	// Euclidean is the 2-norm of a vector or the Frobenius norm of a matrix.
	Euclidean NormOrder = 0
	// Frobenius is only valid for matrix norms.
	Frobenius NormOrder = -1
)

// InfNorm is the max-abs vector norm or the max-row-sum matrix norm.
var InfNorm = NormOrder(math.Inf(1))

func (o NormOrder) String() string {
	switch {
	case o == Euclidean:
		return "euclidean"
	case o == Frobenius:
		return "fro"
	case math.IsInf(float64(o), 1):
		return "inf"
	default:
		return formatFloat(float64(o))
	}
}

type options struct {
	lower      bool
	adjoint    bool
	transposeA bool
	transposeB bool
	adjointA   bool
	adjointB   bool
	aIsSparse  bool
	bIsSparse  bool
	conjugate  bool
	numColumns int
	batchShape tensor.Shape
	dtype      tensor.DataType
	ord        NormOrder
	axes       []int
	keepDims   bool
}

// defaults mirror TensorFlow's keyword defaults.
func defaults() options {
	return options{
		lower:      true,
		numColumns: -1,
		dtype:      tensor.Float32,
	}
}

func apply(opts []Option) options {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option sets a TensorFlow keyword argument. Each op reads only the options
// it has a keyword for; others are ignored.
type Option func(*options)

// Name is accepted for signature compatibility and ignored.
func Name(string) Option {
	return func(*options) {}
}

// Lower selects the lower (default) or upper triangle in TriangularSolve.
func Lower(lower bool) Option {
	return func(o *options) { o.lower = lower }
}

// Adjoint solves against the conjugate transpose in TriangularSolve.
func Adjoint(adjoint bool) Option {
	return func(o *options) { o.adjoint = adjoint }
}

// TransposeA transposes the first MatMul operand.
func TransposeA(v bool) Option {
	return func(o *options) { o.transposeA = v }
}

// TransposeB transposes the second MatMul operand.
func TransposeB(v bool) Option {
	return func(o *options) { o.transposeB = v }
}

// AdjointA conjugate-transposes the first MatMul operand.
func AdjointA(v bool) Option {
	return func(o *options) { o.adjointA = v }
}

// AdjointB conjugate-transposes the second MatMul operand.
func AdjointB(v bool) Option {
	return func(o *options) { o.adjointB = v }
}

// AIsSparse marks the first MatMul operand as sparse. Not supported.
func AIsSparse(v bool) Option {
	return func(o *options) { o.aIsSparse = v }
}

// BIsSparse marks the second MatMul operand as sparse. Not supported.
func BIsSparse(v bool) Option {
	return func(o *options) { o.bIsSparse = v }
}

// Conjugate conjugates the result of MatrixTranspose.
func Conjugate(v bool) Option {
	return func(o *options) { o.conjugate = v }
}

// NumColumns sets the column count of Eye. Defaults to the row count.
func NumColumns(n int) Option {
	return func(o *options) { o.numColumns = n }
}

// BatchShape prepends batch dimensions to Eye.
func BatchShape(dims ...int) Option {
	return func(o *options) { o.batchShape = tensor.Shape(dims).Clone() }
}

// DType sets the element type of Eye. Defaults to float32.
func DType(dt tensor.DataType) Option {
	return func(o *options) { o.dtype = dt }
}

// Ord selects the norm. Defaults to Euclidean.
func Ord(ord NormOrder) Option {
	return func(o *options) { o.ord = ord }
}

// Axis restricts Norm to one axis (vector norm) or two axes (matrix norm).
// Without it the whole input is treated as one vector.
func Axis(axes ...int) Option {
	return func(o *options) { o.axes = append([]int(nil), axes...) }
}

// KeepDims retains reduced axes with size 1.
func KeepDims(v bool) Option {
	return func(o *options) { o.keepDims = v }
}
