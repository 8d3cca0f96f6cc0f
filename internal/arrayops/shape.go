package arrayops

import (
	"fmt"

	"github.com/born-ml/tfnp/internal/tensor"
)

// SymbolicBuilder produces values for shapes that are not known yet. It
// stands in for the symbolic machinery of a tracing engine.
type SymbolicBuilder interface {
	// Shape returns a rank-1 value holding the dimensions of x.
	Shape(x tensor.Value, outType tensor.DataType) tensor.Value
	// Size returns a scalar value holding the element count of x.
	Size(x tensor.Value, outType tensor.DataType) tensor.Value
	// Fill returns a value of the given dims filled with value.
	Fill(dims tensor.Dims, value float64, dtype tensor.DataType) tensor.Value
}

// Placeholders is a SymbolicBuilder that answers with tensor.Symbol
// placeholders carrying the right dtype and as much shape as is known.
type Placeholders struct{}

var _ SymbolicBuilder = Placeholders{}

// Shape implements SymbolicBuilder.
func (Placeholders) Shape(x tensor.Value, outType tensor.DataType) tensor.Value {
	return tensor.NewSymbol(fmt.Sprintf("shape%s", x.Dims()), outType, x.Dims().Rank())
}

// Size implements SymbolicBuilder.
func (Placeholders) Size(x tensor.Value, outType tensor.DataType) tensor.Value {
	return tensor.NewSymbol(fmt.Sprintf("size%s", x.Dims()), outType)
}

// Fill implements SymbolicBuilder.
func (Placeholders) Fill(dims tensor.Dims, value float64, dtype tensor.DataType) tensor.Value {
	if s := dims.Symbolic(); s != nil {
		return tensor.NewSymbol(fmt.Sprintf("fill(%g)", value), dtype, s.Dims...)
	}
	shape, _ := dims.Concrete()
	return tensor.NewSymbol(fmt.Sprintf("fill(%g)", value), dtype, shape...)
}

// Shape returns the dimensions of x as a rank-1 integer tensor, or delegates
// to the symbolic builder when they are not all known.
func (l *Library) Shape(x tensor.Value, opts ...Option) (tensor.Value, error) {
	o := apply(opts)
	if err := checkIntType("shape", o.outType); err != nil {
		return nil, err
	}
	shape, ok := x.Dims().Concrete()
	if !ok {
		return l.symbolic.Shape(x, o.outType), nil
	}
	dims := make([]float64, len(shape))
	for i, d := range shape {
		dims[i] = float64(d)
	}
	return value(tensor.FromFloat64s(dims, tensor.Shape{len(shape)}, o.outType))
}

// Size returns the element count of x as an integer scalar, or delegates to
// the symbolic builder when the shape is not known.
func (l *Library) Size(x tensor.Value, opts ...Option) (tensor.Value, error) {
	o := apply(opts)
	if err := checkIntType("size", o.outType); err != nil {
		return nil, err
	}
	shape, ok := x.Dims().Concrete()
	if !ok {
		return l.symbolic.Size(x, o.outType), nil
	}
	return value(tensor.Full(tensor.Shape{}, float64(shape.NumElements()), o.outType))
}

// Rank returns the number of dimensions of x as an int32 scalar. Rank is
// known even for symbolic shapes.
func (l *Library) Rank(x tensor.Value, _ ...Option) (*tensor.RawTensor, error) {
	return tensor.Scalar(int32(x.Dims().Rank())), nil
}

// OnesLike returns ones with the shape of x and its dtype unless DType is given.
func (l *Library) OnesLike(x tensor.Value, opts ...Option) (tensor.Value, error) {
	return l.fillLike(x, 1, opts)
}

// ZerosLike returns zeros with the shape of x and its dtype unless DType is given.
func (l *Library) ZerosLike(x tensor.Value, opts ...Option) (tensor.Value, error) {
	return l.fillLike(x, 0, opts)
}

func (l *Library) fillLike(x tensor.Value, fill float64, opts []Option) (tensor.Value, error) {
	dtype := apply(opts).dtypeOr(x.DType())
	dims := x.Dims()
	shape, ok := dims.Concrete()
	if !ok {
		return l.symbolic.Fill(dims, fill, dtype), nil
	}
	return value(tensor.Full(shape, fill, dtype))
}

func checkIntType(op string, dt tensor.DataType) error {
	if dt != tensor.Int32 && dt != tensor.Int64 {
		return fmt.Errorf("%s: %w: out_type must be int32 or int64, got %s", op, tensor.ErrInvalidArgument, dt)
	}
	return nil
}

// value keeps a failed concrete result from turning into a non-nil Value.
func value(t *tensor.RawTensor, err error) (tensor.Value, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
